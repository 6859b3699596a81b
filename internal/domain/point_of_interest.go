package domain

import "fmt"

// Represents a point of interest inside the park network.
// A PointOfInterest is owned by the map and never mutated after loading;
// planning results only reference it by value.
type PointOfInterest struct {
	ID       int
	Name     string
	Category string
}

func (p PointOfInterest) String() string {
	if p.Category == "" {
		return fmt.Sprintf("%d - %s", p.ID, p.Name)
	}
	return fmt.Sprintf("%d - %s (%s)", p.ID, p.Name, p.Category)
}
