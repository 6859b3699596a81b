package dto

import (
	"park-course-service/internal/domain"
	"time"
)

type PlanRequest struct {
	Criterion        string `json:"criterion" validate:"required,oneof=cost distance"`
	Navigability     bool   `json:"navigability"`
	PointsOfInterest []int  `json:"points_of_interest" validate:"dive,gt=0"`
}

type ConnectionResponse struct {
	ConnectionID int    `json:"connection_id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Cost         int    `json:"cost"`
	Distance     int    `json:"distance"`
	Navigable    bool   `json:"navigable"`
}

type PlanResponse struct {
	PlanID           string                    `json:"plan_id"`
	Criterion        string                    `json:"criterion"`
	Unit             string                    `json:"unit"`
	Navigability     bool                      `json:"navigability"`
	TotalCost        int                       `json:"total_cost"`
	PointsOfInterest []PointOfInterestResponse `json:"points_of_interest"`
	Connections      []ConnectionResponse      `json:"connections"`
	MandatoryStops   []PointOfInterestResponse `json:"mandatory_stops"`
	CreatedAt        time.Time                 `json:"created_at"`
	HistoryDepth     int                       `json:"history_depth"`
}

func NewPlanResponse(p *domain.Plan, historyDepth int) PlanResponse {
	res := PlanResponse{
		PlanID:           p.ID,
		Criterion:        string(p.Criterion),
		Unit:             p.Criterion.Unit(),
		Navigability:     p.Navigability,
		TotalCost:        p.TotalCost,
		PointsOfInterest: NewPointOfInterestResponses(p.PointsOfInterest),
		Connections:      make([]ConnectionResponse, 0, len(p.Connections)),
		MandatoryStops:   NewPointOfInterestResponses(p.MandatoryStops),
		CreatedAt:        p.CreatedAt,
		HistoryDepth:     historyDepth,
	}
	for _, c := range p.Connections {
		res.Connections = append(res.Connections, ConnectionResponse{
			ConnectionID: c.ID,
			Name:         c.Name,
			Kind:         string(c.Kind),
			Cost:         c.Cost,
			Distance:     c.Distance,
			Navigable:    c.Navigable,
		})
	}
	return res
}
