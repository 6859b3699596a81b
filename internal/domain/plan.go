package domain

import (
	"fmt"
	"strings"
	"time"
)

// Represents the committed result of one successful planning call.
//
// PointsOfInterest starts and ends at the map's start node. Connections[i]
// is the connection traversed from PointsOfInterest[i] to PointsOfInterest[i+1].
// MandatoryStops keeps the caller-given order, not the optimized visiting order.
// A Plan is immutable once built; callers must not modify its slices.
type Plan struct {
	ID               string
	Criterion        Criterion
	Navigability     bool
	TotalCost        int
	PointsOfInterest []PointOfInterest
	Connections      []Connection
	MandatoryStops   []PointOfInterest
	CreatedAt        time.Time
}

// Render the plan as a human readable, multi-line summary.
func (p *Plan) String() string {
	if p == nil {
		return "(no plan has been calculated)\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Best (%s) path for the selected points of interest (navigability: %t)\n", p.Criterion, p.Navigability)
	fmt.Fprintf(&b, "Total cost (%s) = %d\n", p.Criterion.Unit(), p.TotalCost)

	b.WriteString("Points of Interest:\n")
	for _, poi := range p.PointsOfInterest {
		fmt.Fprintf(&b, "\t%s\n", poi)
	}

	b.WriteString("Connections:\n")
	for _, c := range p.Connections {
		fmt.Fprintf(&b, "\t%s\n", c)
	}

	return b.String()
}
