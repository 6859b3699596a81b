package dto

type VisitedPointOfInterestResponse struct {
	PointOfInterestResponse
	Visits int `json:"visits"`
}

type StatisticsResponse struct {
	FootTickets int                              `json:"foot_tickets"`
	BikeTickets int                              `json:"bike_tickets"`
	TopVisited  []VisitedPointOfInterestResponse `json:"top_visited"`
}
