package ports

import (
	"errors"
	"park-course-service/internal/domain"
)

// ErrNotFound is returned by a MapProvider when a point of interest is absent.
var ErrNotFound = errors.New("not found")

// An outgoing connection and the point of interest it leads to.
type Edge struct {
	Connection domain.Connection
	To         domain.PointOfInterest
}

// Port: read-only access to the park network.
//
// Implementations must not change while a plan is being computed;
// planning results reference nodes and connections by value.
type MapProvider interface {
	// Return every node of the network.
	Vertices() []domain.PointOfInterest
	// Return the outgoing edges of a node, in a stable order.
	IncidentEdges(id int) []Edge
	// Return the canonical start node of every tour.
	StartNode() domain.PointOfInterest
	// Return the node for a point of interest id or ErrNotFound.
	PointOfInterest(id int) (domain.PointOfInterest, error)
}
