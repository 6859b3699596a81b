package services

import (
	"math/rand"
	"park-course-service/internal/adapters/parkmap"
	"park-course-service/internal/domain"
	"park-course-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	poiStart = 1
	poiA     = 2
	poiB     = 3
	poiC     = 4
)

// scenarioGraph: S<->A is the only navigable connection; S<->B, A<->B and B<->S are not.
// C is isolated.
func scenarioGraph(t *testing.T) *parkmap.Graph {
	t.Helper()

	pois := []domain.PointOfInterest{
		{ID: poiStart, Name: "S"},
		{ID: poiA, Name: "A"},
		{ID: poiB, Name: "B"},
		{ID: poiC, Name: "C"},
	}
	conns := []parkmap.ConnectionSpec{
		{Connection: domain.Connection{ID: 1, Name: "S-A", Cost: 2, Distance: 20, Navigable: true}, From: poiStart, To: poiA},
		{Connection: domain.Connection{ID: 2, Name: "S-B", Cost: 5, Distance: 50}, From: poiStart, To: poiB},
		{Connection: domain.Connection{ID: 3, Name: "A-B", Cost: 1, Distance: 10}, From: poiA, To: poiB},
		{Connection: domain.Connection{ID: 4, Name: "B-S", Cost: 5, Distance: 50}, From: poiB, To: poiStart},
	}

	g, err := parkmap.NewGraph(pois, conns, poiStart)
	require.NoError(t, err)
	return g
}

// completeGraph connects every pair of n nodes (ids 1..n) with a path of random
// cost and adds a few cheaper one-way bridges.
func completeGraph(t *testing.T, rng *rand.Rand, n int) *parkmap.Graph {
	t.Helper()

	pois := make([]domain.PointOfInterest, 0, n)
	for i := 1; i <= n; i++ {
		pois = append(pois, domain.PointOfInterest{ID: i, Name: string(rune('A' + i - 1))})
	}

	var conns []parkmap.ConnectionSpec
	nextID := 1
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			conns = append(conns, parkmap.ConnectionSpec{
				Connection: domain.Connection{ID: nextID, Cost: 1 + rng.Intn(20), Distance: 1 + rng.Intn(200), Navigable: true},
				From:       i,
				To:         j,
			})
			nextID++

			if rng.Intn(4) == 0 {
				conns = append(conns, parkmap.ConnectionSpec{
					Connection: domain.Connection{ID: nextID, Kind: domain.ConnectionBridge, Cost: rng.Intn(5), Distance: rng.Intn(50), Navigable: true},
					From:       j,
					To:         i,
				})
				nextID++
			}
		}
	}

	g, err := parkmap.NewGraph(pois, conns, 1)
	require.NoError(t, err)
	return g
}

// uniformCompleteGraph connects every pair of n nodes with a path of cost 1.
func uniformCompleteGraph(t *testing.T, n int) *parkmap.Graph {
	t.Helper()

	pois := make([]domain.PointOfInterest, 0, n)
	for i := 1; i <= n; i++ {
		pois = append(pois, domain.PointOfInterest{ID: i})
	}

	var conns []parkmap.ConnectionSpec
	nextID := 1
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			conns = append(conns, parkmap.ConnectionSpec{
				Connection: domain.Connection{ID: nextID, Cost: 1, Distance: 1, Navigable: true},
				From:       i,
				To:         j,
			})
			nextID++
		}
	}

	g, err := parkmap.NewGraph(pois, conns, 1)
	require.NoError(t, err)
	return g
}

// randomGraph builds a sparse graph with mixed kinds and navigability.
func randomGraph(t *testing.T, rng *rand.Rand, n int) *parkmap.Graph {
	t.Helper()

	pois := make([]domain.PointOfInterest, 0, n)
	for i := 1; i <= n; i++ {
		pois = append(pois, domain.PointOfInterest{ID: i})
	}

	var conns []parkmap.ConnectionSpec
	nextID := 1
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			if i == j || rng.Float64() > 0.3 {
				continue
			}
			kind := domain.ConnectionPath
			if rng.Intn(2) == 0 {
				kind = domain.ConnectionBridge
			}
			conns = append(conns, parkmap.ConnectionSpec{
				Connection: domain.Connection{
					ID:        nextID,
					Kind:      kind,
					Cost:      rng.Intn(10),
					Distance:  rng.Intn(25),
					Navigable: rng.Intn(3) > 0,
				},
				From: i,
				To:   j,
			})
			nextID++
		}
	}

	g, err := parkmap.NewGraph(pois, conns, 1)
	require.NoError(t, err)
	return g
}

func mustPOI(t *testing.T, provider ports.MapProvider, id int) domain.PointOfInterest {
	t.Helper()
	poi, err := provider.PointOfInterest(id)
	require.NoError(t, err)
	return poi
}

func poiIDs(pois []domain.PointOfInterest) []int {
	out := make([]int, 0, len(pois))
	for _, p := range pois {
		out = append(out, p.ID)
	}
	return out
}

func connectionIDs(conns []domain.Connection) []int {
	out := make([]int, 0, len(conns))
	for _, c := range conns {
		out = append(out, c.ID)
	}
	return out
}

func buildTables(
	provider ports.MapProvider,
	start domain.PointOfInterest,
	stops []domain.PointOfInterest,
	criterion domain.Criterion,
	navigable bool,
) map[int]*PathTable {
	tables := map[int]*PathTable{start.ID: ShortestPaths(provider, start, criterion, navigable)}
	for _, s := range stops {
		tables[s.ID] = ShortestPaths(provider, s, criterion, navigable)
	}
	return tables
}
