package ports

import "context"

// Port: a data source the park network can be loaded from.
type MapRepository interface {
	LoadMap(ctx context.Context) (MapProvider, error)
}
