package domain

// Number of accepted plans that required a visit to a point of interest.
type VisitCount struct {
	PointOfInterestID int
	Visits            int
}

// Accepted plans split by travel mode.
type TicketCounts struct {
	Foot int
	Bike int
}
