package domain

import (
	"fmt"
	"strings"
)

// Criterion selects how a Connection is weighted during planning.
type Criterion string

const (
	CriterionCost     Criterion = "cost"
	CriterionDistance Criterion = "distance"
)

// Criteria lists every supported criterion in display order.
var Criteria = []Criterion{CriterionCost, CriterionDistance}

// ParseCriterion accepts a criterion name case-insensitively.
func ParseCriterion(s string) (Criterion, error) {
	switch Criterion(strings.ToLower(strings.TrimSpace(s))) {
	case CriterionCost:
		return CriterionCost, nil
	case CriterionDistance:
		return CriterionDistance, nil
	default:
		return "", fmt.Errorf("parse criterion: unknown criterion %q", s)
	}
}

// Weight maps a connection to its non-negative edge weight under this criterion.
func (c Criterion) Weight(conn Connection) int {
	switch c {
	case CriterionDistance:
		return conn.Distance
	default:
		return conn.Cost
	}
}

// Unit is the display label of the criterion's weight.
func (c Criterion) Unit() string {
	switch c {
	case CriterionDistance:
		return "meters"
	default:
		return "euros"
	}
}

func (c Criterion) String() string { return string(c) }
