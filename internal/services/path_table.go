package services

import (
	"math"
	"park-course-service/internal/domain"
	"park-course-service/internal/ports"
	"slices"
)

// Unreachable is the cost recorded for nodes the origin cannot reach.
const Unreachable = math.MaxInt

type pathEntry struct {
	cost        int
	predecessor *domain.PointOfInterest
	connection  *domain.Connection
}

// PathTable holds the single-source shortest-path result for one origin:
// cumulative cost, predecessor and the connection used, for every node of the map.
// It is built per planning call and never shared between sessions.
type PathTable struct {
	Origin  domain.PointOfInterest
	entries map[int]pathEntry
}

// Cost returns the cumulative cost from the origin, or Unreachable.
func (t *PathTable) Cost(id int) int {
	e, ok := t.entries[id]
	if !ok {
		return Unreachable
	}
	return e.cost
}

func (t *PathTable) Reachable(id int) bool { return t.Cost(id) != Unreachable }

// Predecessor returns the node before id on its shortest path.
// The origin and unreached nodes have none.
func (t *PathTable) Predecessor(id int) (domain.PointOfInterest, bool) {
	e, ok := t.entries[id]
	if !ok || e.predecessor == nil {
		return domain.PointOfInterest{}, false
	}
	return *e.predecessor, true
}

// Connection returns the connection used to reach id.
func (t *PathTable) Connection(id int) (domain.Connection, bool) {
	e, ok := t.entries[id]
	if !ok || e.connection == nil {
		return domain.Connection{}, false
	}
	return *e.connection, true
}

// Len is the number of nodes covered by the table.
func (t *PathTable) Len() int { return len(t.entries) }

// PathTo walks predecessors back from dest to the origin.
//
// The returned points of interest exclude the origin and end with dest;
// connections[i] leads into pois[i]. A dest equal to the origin yields an empty path.
func (t *PathTable) PathTo(dest domain.PointOfInterest) ([]domain.PointOfInterest, []domain.Connection, int, error) {
	var (
		pois  []domain.PointOfInterest
		conns []domain.Connection
	)

	current := dest
	for current.ID != t.Origin.ID {
		e, ok := t.entries[current.ID]
		if !ok || e.connection == nil || e.predecessor == nil {
			return nil, nil, 0, &PlanningError{Kind: ErrNoFeasiblePath, PointOfInterestID: dest.ID, FromID: t.Origin.ID}
		}
		pois = append(pois, current)
		conns = append(conns, *e.connection)
		current = *e.predecessor
	}

	slices.Reverse(pois)
	slices.Reverse(conns)

	return pois, conns, t.Cost(dest.ID), nil
}

// ShortestPaths runs Dijkstra's algorithm from origin over the map.
//
// When navigable is true only connections flagged Navigable are traversed.
// Frontier selection uses the simple O(V) scan; among frontier nodes with equal
// cost the lowest point of interest id is finalized first, so results never depend
// on map iteration order. Relaxation only accepts strictly shorter paths, so the
// first connection found at a given cost is kept.
func ShortestPaths(
	provider ports.MapProvider,
	origin domain.PointOfInterest,
	criterion domain.Criterion,
	navigable bool,
) *PathTable {
	vertices := provider.Vertices()

	table := &PathTable{
		Origin:  origin,
		entries: make(map[int]pathEntry, len(vertices)),
	}
	for _, v := range vertices {
		table.entries[v.ID] = pathEntry{cost: Unreachable}
	}
	table.entries[origin.ID] = pathEntry{cost: 0}

	nodes := make(map[int]domain.PointOfInterest, len(vertices)+1)
	for _, v := range vertices {
		nodes[v.ID] = v
	}
	nodes[origin.ID] = origin

	finalized := make(map[int]bool, len(vertices))
	frontier := map[int]struct{}{origin.ID: {}}

	for len(frontier) > 0 {
		currentID := nextFrontierNode(frontier, table.entries)
		delete(frontier, currentID)
		finalized[currentID] = true

		current := nodes[currentID]
		sourceCost := table.entries[currentID].cost

		for _, edge := range provider.IncidentEdges(currentID) {
			if navigable && !edge.Connection.Navigable {
				continue
			}

			next := edge.To.ID
			if finalized[next] {
				continue
			}
			entry, ok := table.entries[next]
			if !ok {
				// Edge into a node the provider did not list; treat it as absent.
				continue
			}

			candidate := sourceCost + criterion.Weight(edge.Connection)
			if candidate < entry.cost {
				conn := edge.Connection
				pred := current
				table.entries[next] = pathEntry{cost: candidate, predecessor: &pred, connection: &conn}
			}
			frontier[next] = struct{}{}
		}
	}

	return table
}

// nextFrontierNode picks the frontier node with minimum cost, lowest id on ties.
func nextFrontierNode(frontier map[int]struct{}, entries map[int]pathEntry) int {
	best := 0
	bestCost := Unreachable
	found := false

	for id := range frontier {
		c := entries[id].cost
		if !found || c < bestCost || (c == bestCost && id < best) {
			best = id
			bestCost = c
			found = true
		}
	}

	return best
}
