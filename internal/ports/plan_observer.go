package ports

import "time"

// Optional hook notified after every planning attempt.
type PlanObserver interface {
	ObservePlan(criterion string, stops int, dur time.Duration, err error)
	ObserveUndo(restored bool)
}
