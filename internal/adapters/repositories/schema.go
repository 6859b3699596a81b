package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"park-course-service/internal/adapters/parkmap"
	"strconv"
	"strings"
)

const startSettingKey = "start_poi_id"

// Initialize the database schema. The DDL is valid for SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPointsOfInterestQuery := `
	CREATE TABLE IF NOT EXISTS points_of_interest (
		poi_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT ''
	);
	`

	createConnectionsQuery := `
	CREATE TABLE IF NOT EXISTS connections (
		connection_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		from_poi INTEGER NOT NULL REFERENCES points_of_interest(poi_id),
		to_poi INTEGER NOT NULL REFERENCES points_of_interest(poi_id),
		cost INTEGER NOT NULL CHECK (cost >= 0),
		distance INTEGER NOT NULL CHECK (distance >= 0),
		navigable BOOLEAN NOT NULL
	);
	`

	createSettingsQuery := `
	CREATE TABLE IF NOT EXISTS park_settings (
		setting_key TEXT PRIMARY KEY,
		setting_value TEXT NOT NULL
	);
	`

	createVisitsQuery := `
	CREATE TABLE IF NOT EXISTS poi_visits (
		poi_id INTEGER PRIMARY KEY,
		visits INTEGER NOT NULL
	);
	`

	createTicketCountsQuery := `
	CREATE TABLE IF NOT EXISTS ticket_counts (
		travel_mode TEXT PRIMARY KEY,
		tickets INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_connections_from_poi
	ON connections(from_poi);
	`

	statements := []string{
		createPointsOfInterestQuery,
		createConnectionsQuery,
		createSettingsQuery,
		createVisitsQuery,
		createTicketCountsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with the park map from a JSON file, replacing any map
// already stored. The seed is validated by building its graph before anything is written.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) error {
	seed, err := parkmap.ReadSeed(jsonPath)
	if err != nil {
		return fmt.Errorf("seed map: %w", err)
	}

	if _, err := seed.Graph(); err != nil {
		return fmt.Errorf("seed map: %w", err)
	}

	for i, p := range seed.PointsOfInterest {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed map: point of interest at index %d: name cannot be empty", i+1)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed map: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// The seed file is the whole map: rows it no longer lists must not survive a reseed.
	for _, table := range []string{"connections", "points_of_interest"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+";"); err != nil {
			return fmt.Errorf("seed map: clear %s: %w", table, err)
		}
	}

	poiStmt, err := tx.PrepareContext(ctx, rebind(dialect, `
	INSERT INTO points_of_interest (poi_id, name, category)
	VALUES (?, ?, ?)
	ON CONFLICT (poi_id) DO UPDATE
	SET name = EXCLUDED.name,
		category = EXCLUDED.category;
	`))
	if err != nil {
		return fmt.Errorf("seed map: prepare points of interest insert: %w", err)
	}
	defer poiStmt.Close()

	for _, p := range seed.PointsOfInterest {
		if _, err := poiStmt.ExecContext(ctx, p.ID, strings.TrimSpace(p.Name), p.Category); err != nil {
			return fmt.Errorf("seed map: insert poi_id=%d: %w", p.ID, err)
		}
	}

	connStmt, err := tx.PrepareContext(ctx, rebind(dialect, `
	INSERT INTO connections (connection_id, name, kind, from_poi, to_poi, cost, distance, navigable)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (connection_id) DO UPDATE
	SET name = EXCLUDED.name,
		kind = EXCLUDED.kind,
		from_poi = EXCLUDED.from_poi,
		to_poi = EXCLUDED.to_poi,
		cost = EXCLUDED.cost,
		distance = EXCLUDED.distance,
		navigable = EXCLUDED.navigable;
	`))
	if err != nil {
		return fmt.Errorf("seed map: prepare connections insert: %w", err)
	}
	defer connStmt.Close()

	for _, c := range seed.Connections {
		kind := c.Kind
		if kind == "" {
			kind = "path"
		}
		if _, err := connStmt.ExecContext(ctx, c.ID, c.Name, kind, c.From, c.To, c.Cost, c.Distance, c.Navigable); err != nil {
			return fmt.Errorf("seed map: insert connection_id=%d: %w", c.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, rebind(dialect, `
	INSERT INTO park_settings (setting_key, setting_value)
	VALUES (?, ?)
	ON CONFLICT (setting_key) DO UPDATE
	SET setting_value = EXCLUDED.setting_value;
	`), startSettingKey, strconv.Itoa(seed.Start)); err != nil {
		return fmt.Errorf("seed map: store start point of interest: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed map: commit tx: %w", err)
	}

	return nil
}
