package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"park-course-service/internal/adapters/parkmap"
	"park-course-service/internal/domain"
	"park-course-service/internal/ports"
	"strconv"
)

// SQL-backed implementation of the MapRepository port.
type MapRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

var _ ports.MapRepository = (*MapRepository)(nil)

func NewSqliteMapRepository(db *sql.DB) *MapRepository {
	return &MapRepository{DB: db, Dialect: DialectSqlite}
}

func NewSQLMapRepository(db *sql.DB) *MapRepository {
	return &MapRepository{DB: db, Dialect: DialectPostgres}
}

// Load the whole park network. Connections keep connection_id order,
// which fixes the order of incident edges.
func (r *MapRepository) LoadMap(ctx context.Context) (ports.MapProvider, error) {
	if r.DB == nil {
		return nil, errors.New("map repository: DB is nil")
	}

	pois, err := r.listPointsOfInterest(ctx)
	if err != nil {
		return nil, err
	}

	conns, err := r.listConnections(ctx)
	if err != nil {
		return nil, err
	}

	var raw string
	err = r.DB.QueryRowContext(ctx, rebind(r.Dialect, `
	SELECT setting_value FROM park_settings WHERE setting_key = ?;
	`), startSettingKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("load map: start point of interest is not configured")
	}
	if err != nil {
		return nil, fmt.Errorf("load map: query start point of interest: %w", err)
	}

	start, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("load map: parse start point of interest %q: %w", raw, err)
	}

	g, err := parkmap.NewGraph(pois, conns, start)
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	return g, nil
}

func (r *MapRepository) listPointsOfInterest(ctx context.Context) ([]domain.PointOfInterest, error) {
	rows, err := r.DB.QueryContext(ctx, `
	SELECT
		poi_id,
		name,
		category
	FROM points_of_interest
	ORDER BY poi_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("load map: query points_of_interest table: %w", err)
	}
	defer rows.Close()

	pois := make([]domain.PointOfInterest, 0, 32)
	for rows.Next() {
		var p domain.PointOfInterest
		if err := rows.Scan(&p.ID, &p.Name, &p.Category); err != nil {
			return nil, fmt.Errorf("load map: scan point of interest: %w", err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load map: point of interest iteration: %w", err)
	}

	return pois, nil
}

func (r *MapRepository) listConnections(ctx context.Context) ([]parkmap.ConnectionSpec, error) {
	rows, err := r.DB.QueryContext(ctx, `
	SELECT
		connection_id,
		name,
		kind,
		from_poi,
		to_poi,
		cost,
		distance,
		navigable
	FROM connections
	ORDER BY connection_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("load map: query connections table: %w", err)
	}
	defer rows.Close()

	conns := make([]parkmap.ConnectionSpec, 0, 64)
	for rows.Next() {
		var (
			spec parkmap.ConnectionSpec
			kind string
		)
		c := &spec.Connection
		if err := rows.Scan(&c.ID, &c.Name, &kind, &spec.From, &spec.To, &c.Cost, &c.Distance, &c.Navigable); err != nil {
			return nil, fmt.Errorf("load map: scan connection: %w", err)
		}
		c.Kind = domain.ConnectionKind(kind)
		conns = append(conns, spec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load map: connection iteration: %w", err)
	}

	return conns, nil
}
