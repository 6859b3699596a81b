package parkmap

import (
	"encoding/json"
	"fmt"
	"os"
	"park-course-service/internal/domain"
)

type PointOfInterestSeed struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type ConnectionSeed struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	Cost      int    `json:"cost"`
	Distance  int    `json:"distance"`
	Navigable bool   `json:"navigable"`
}

// MapSeed is the JSON layout of a park map file.
type MapSeed struct {
	Start            int                   `json:"start"`
	PointsOfInterest []PointOfInterestSeed `json:"points_of_interest"`
	Connections      []ConnectionSeed      `json:"connections"`
}

// ReadSeed parses a park map file without building the graph.
func ReadSeed(path string) (*MapSeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read map seed: open %q: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var seed MapSeed
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("read map seed: parse json: %w", err)
	}

	return &seed, nil
}

// Graph builds the in-memory network described by the seed.
func (s *MapSeed) Graph() (*Graph, error) {
	pois := make([]domain.PointOfInterest, 0, len(s.PointsOfInterest))
	for _, p := range s.PointsOfInterest {
		pois = append(pois, domain.PointOfInterest{ID: p.ID, Name: p.Name, Category: p.Category})
	}

	conns := make([]ConnectionSpec, 0, len(s.Connections))
	for _, c := range s.Connections {
		conns = append(conns, ConnectionSpec{
			Connection: domain.Connection{
				ID:        c.ID,
				Name:      c.Name,
				Kind:      domain.ConnectionKind(c.Kind),
				Cost:      c.Cost,
				Distance:  c.Distance,
				Navigable: c.Navigable,
			},
			From: c.From,
			To:   c.To,
		})
	}

	return NewGraph(pois, conns, s.Start)
}

// LoadJSON reads a park map file and builds its graph.
func LoadJSON(path string) (*Graph, error) {
	seed, err := ReadSeed(path)
	if err != nil {
		return nil, err
	}

	g, err := seed.Graph()
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", path, err)
	}
	return g, nil
}
