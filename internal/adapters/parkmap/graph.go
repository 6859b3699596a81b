package parkmap

import (
	"errors"
	"fmt"
	"park-course-service/internal/domain"
	"park-course-service/internal/ports"
	"slices"
)

// ErrInvalidMap is wrapped by every map construction failure.
var ErrInvalidMap = errors.New("invalid park map")

// A connection together with its endpoints, as stored in seeds and databases.
type ConnectionSpec struct {
	Connection domain.Connection
	From       int
	To         int
}

// Graph is an in-memory directed multigraph implementing ports.MapProvider.
//
// Paths are expanded into two directed edges sharing the same Connection;
// bridges only go From -> To. A Graph is read-only after NewGraph returns
// and is safe for concurrent use.
type Graph struct {
	pois        map[int]domain.PointOfInterest
	ids         []int
	adjacency   map[int][]ports.Edge
	connections []ConnectionSpec
	start       int
}

var _ ports.MapProvider = (*Graph)(nil)

func NewGraph(pois []domain.PointOfInterest, connections []ConnectionSpec, startID int) (*Graph, error) {
	g := &Graph{
		pois:        make(map[int]domain.PointOfInterest, len(pois)),
		ids:         make([]int, 0, len(pois)),
		adjacency:   make(map[int][]ports.Edge, len(pois)),
		connections: make([]ConnectionSpec, 0, len(connections)),
		start:       startID,
	}

	for _, p := range pois {
		if _, ok := g.pois[p.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate point of interest id %d", ErrInvalidMap, p.ID)
		}
		g.pois[p.ID] = p
		g.ids = append(g.ids, p.ID)
	}
	slices.Sort(g.ids)

	if _, ok := g.pois[startID]; !ok {
		return nil, fmt.Errorf("%w: start point of interest %d does not exist", ErrInvalidMap, startID)
	}

	seen := make(map[int]struct{}, len(connections))
	for _, spec := range connections {
		c := spec.Connection
		if _, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate connection id %d", ErrInvalidMap, c.ID)
		}
		seen[c.ID] = struct{}{}

		if c.Cost < 0 || c.Distance < 0 {
			return nil, fmt.Errorf("%w: connection %d has negative cost or distance", ErrInvalidMap, c.ID)
		}

		from, ok := g.pois[spec.From]
		if !ok {
			return nil, fmt.Errorf("%w: connection %d starts at unknown point of interest %d", ErrInvalidMap, c.ID, spec.From)
		}
		to, ok := g.pois[spec.To]
		if !ok {
			return nil, fmt.Errorf("%w: connection %d ends at unknown point of interest %d", ErrInvalidMap, c.ID, spec.To)
		}

		switch c.Kind {
		case "":
			c.Kind = domain.ConnectionPath
		case domain.ConnectionPath, domain.ConnectionBridge:
		default:
			return nil, fmt.Errorf("%w: connection %d has unknown kind %q", ErrInvalidMap, c.ID, c.Kind)
		}
		spec.Connection = c

		g.adjacency[from.ID] = append(g.adjacency[from.ID], ports.Edge{Connection: c, To: to})
		if c.Kind == domain.ConnectionPath && from.ID != to.ID {
			g.adjacency[to.ID] = append(g.adjacency[to.ID], ports.Edge{Connection: c, To: from})
		}
		g.connections = append(g.connections, spec)
	}

	return g, nil
}

func (g *Graph) Vertices() []domain.PointOfInterest {
	out := make([]domain.PointOfInterest, 0, len(g.ids))
	for _, id := range g.ids {
		out = append(out, g.pois[id])
	}
	return out
}

func (g *Graph) IncidentEdges(id int) []ports.Edge {
	return slices.Clone(g.adjacency[id])
}

func (g *Graph) StartNode() domain.PointOfInterest {
	return g.pois[g.start]
}

func (g *Graph) PointOfInterest(id int) (domain.PointOfInterest, error) {
	p, ok := g.pois[id]
	if !ok {
		return domain.PointOfInterest{}, fmt.Errorf("point of interest %d: %w", id, ports.ErrNotFound)
	}
	return p, nil
}

// Connections returns the connection specs in insertion order.
func (g *Graph) Connections() []ConnectionSpec {
	return slices.Clone(g.connections)
}
