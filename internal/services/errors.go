package services

import (
	"errors"
	"fmt"
)

// Planning error kinds. Every failure returned by Session.Plan wraps exactly one of them.
var (
	ErrEmptyStopSet           = errors.New("at least one point of interest must be selected")
	ErrUnknownPointOfInterest = errors.New("point of interest does not exist in the current map")
	ErrNoFeasiblePath         = errors.New("it is not possible to calculate a path for the selected points of interest")
	ErrInvalidCriterion       = errors.New("unknown planning criterion")
)

// ErrNoCurrentPlan is returned when an operation needs a current plan and the session is empty.
var ErrNoCurrentPlan = errors.New("no current plan")

// PlanningError is the single error type surfaced by the planning core.
// Kind is one of the planning error kinds above; errors.Is matches against it.
type PlanningError struct {
	Kind error
	// Point of interest the failure refers to, 0 when not applicable.
	PointOfInterestID int
	// Origin of the failed segment for ErrNoFeasiblePath.
	FromID int
}

func (e *PlanningError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrNoFeasiblePath):
		return fmt.Sprintf("plan course: %v (no path from %d to %d)", e.Kind, e.FromID, e.PointOfInterestID)
	case e.PointOfInterestID != 0:
		return fmt.Sprintf("plan course: %v (id=%d)", e.Kind, e.PointOfInterestID)
	default:
		return fmt.Sprintf("plan course: %v", e.Kind)
	}
}

func (e *PlanningError) Unwrap() error { return e.Kind }
