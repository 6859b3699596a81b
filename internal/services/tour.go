package services

import (
	"fmt"
	"park-course-service/internal/domain"
	"slices"
)

// Tour is a closed walk start -> stops in Order -> start.
type Tour struct {
	Order            []domain.PointOfInterest
	PointsOfInterest []domain.PointOfInterest
	Connections      []domain.Connection
	Cost             int
}

// BestTour returns the minimum-cost closed tour through every stop.
//
// All k! visiting orders are enumerated with Heap's algorithm over a private copy
// of stops. Candidates replace the best tour when their cost is less than or equal
// to it, so among equal-cost tours the last ordering generated wins.
// tables must hold a PathTable for start and for every stop.
func BestTour(
	start domain.PointOfInterest,
	stops []domain.PointOfInterest,
	tables map[int]*PathTable,
) (*Tour, error) {
	if len(stops) == 0 {
		return nil, &PlanningError{Kind: ErrEmptyStopSet}
	}

	if _, ok := tables[start.ID]; !ok {
		return nil, fmt.Errorf("best tour: missing path table for start %d", start.ID)
	}
	for _, s := range stops {
		if _, ok := tables[s.ID]; !ok {
			return nil, fmt.Errorf("best tour: missing path table for stop %d", s.ID)
		}
	}

	order := slices.Clone(stops)
	var best *Tour

	var permute func(n int) error
	permute = func(n int) error {
		if n <= 1 {
			candidate, err := assembleTour(start, order, tables)
			if err != nil {
				return err
			}
			if best == nil || candidate.Cost <= best.Cost {
				best = candidate
			}
			return nil
		}

		for i := 0; i < n-1; i++ {
			if err := permute(n - 1); err != nil {
				return err
			}
			if n%2 == 0 {
				order[i], order[n-1] = order[n-1], order[i]
			} else {
				order[0], order[n-1] = order[n-1], order[0]
			}
		}
		return permute(n - 1)
	}

	if err := permute(len(order)); err != nil {
		return nil, err
	}

	return best, nil
}

// assembleTour concatenates the shortest paths between consecutive stops of one ordering.
func assembleTour(
	start domain.PointOfInterest,
	order []domain.PointOfInterest,
	tables map[int]*PathTable,
) (*Tour, error) {
	tour := &Tour{
		Order:            slices.Clone(order),
		PointsOfInterest: []domain.PointOfInterest{start},
	}

	origin := start
	for _, dest := range append(slices.Clone(order), start) {
		pois, conns, cost, err := tables[origin.ID].PathTo(dest)
		if err != nil {
			return nil, err
		}
		tour.PointsOfInterest = append(tour.PointsOfInterest, pois...)
		tour.Connections = append(tour.Connections, conns...)
		tour.Cost += cost
		origin = dest
	}

	return tour, nil
}
