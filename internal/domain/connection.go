package domain

import "fmt"

// ConnectionKind distinguishes two-way paths from one-way bridges.
type ConnectionKind string

const (
	ConnectionPath   ConnectionKind = "path"
	ConnectionBridge ConnectionKind = "bridge"
)

// Represents a typed, directed link between two points of interest.
//
// Navigable marks connections usable in restricted travel mode (e.g. by bike).
// Connections without the flag are only usable when travel is unrestricted.
type Connection struct {
	ID        int
	Name      string
	Kind      ConnectionKind
	Cost      int
	Distance  int
	Navigable bool
}

func (c Connection) String() string {
	kind := c.Kind
	if kind == "" {
		kind = ConnectionPath
	}
	return fmt.Sprintf("%s {type %s, %d meters, %d euros}", c.Name, kind, c.Distance, c.Cost)
}
