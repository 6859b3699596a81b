package dto

import "park-course-service/internal/domain"

type PointOfInterestResponse struct {
	PointOfInterestID int    `json:"poi_id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
}

type ListPointsOfInterestResponse struct {
	StartID          int                       `json:"start_poi_id"`
	PointsOfInterest []PointOfInterestResponse `json:"points_of_interest"`
}

func NewPointOfInterestResponses(pois []domain.PointOfInterest) []PointOfInterestResponse {
	out := make([]PointOfInterestResponse, 0, len(pois))
	for _, p := range pois {
		out = append(out, PointOfInterestResponse{
			PointOfInterestID: p.ID,
			Name:              p.Name,
			Category:          p.Category,
		})
	}
	return out
}
