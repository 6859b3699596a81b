package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"park-course-service/internal/domain"
	"park-course-service/internal/ports"
)

const (
	travelModeFoot = "foot"
	travelModeBike = "bike"
)

// SQL-backed implementation of the StatisticsRepository port.
type StatisticsRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

var _ ports.StatisticsRepository = (*StatisticsRepository)(nil)

func NewSqliteStatisticsRepository(db *sql.DB) *StatisticsRepository {
	return &StatisticsRepository{DB: db, Dialect: DialectSqlite}
}

func NewSQLStatisticsRepository(db *sql.DB) *StatisticsRepository {
	return &StatisticsRepository{DB: db, Dialect: DialectPostgres}
}

// Record one accepted plan in a single transaction.
func (r *StatisticsRepository) RecordPlan(ctx context.Context, plan *domain.Plan) error {
	if r.DB == nil {
		return errors.New("statistics repository: DB is nil")
	}
	if plan == nil {
		return errors.New("record plan: plan must be non-nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record plan: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, rebind(r.Dialect, `
	INSERT INTO poi_visits (poi_id, visits)
	VALUES (?, 1)
	ON CONFLICT (poi_id) DO UPDATE
	SET visits = poi_visits.visits + 1;
	`))
	if err != nil {
		return fmt.Errorf("record plan: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, poi := range plan.MandatoryStops {
		if _, err := stmt.ExecContext(ctx, poi.ID); err != nil {
			return fmt.Errorf("record plan: poi_id=%d: %w", poi.ID, err)
		}
	}

	mode := travelModeFoot
	if plan.Navigability {
		mode = travelModeBike
	}
	if _, err := tx.ExecContext(ctx, rebind(r.Dialect, `
	INSERT INTO ticket_counts (travel_mode, tickets)
	VALUES (?, 1)
	ON CONFLICT (travel_mode) DO UPDATE
	SET tickets = ticket_counts.tickets + 1;
	`), mode); err != nil {
		return fmt.Errorf("record plan: travel_mode=%s: %w", mode, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record plan commit: %w", err)
	}

	return nil
}

func (r *StatisticsRepository) TopVisited(ctx context.Context, limit int) ([]domain.VisitCount, error) {
	if r.DB == nil {
		return nil, errors.New("statistics repository: DB is nil")
	}
	if limit <= 0 {
		return []domain.VisitCount{}, nil
	}

	rows, err := r.DB.QueryContext(ctx, rebind(r.Dialect, `
	SELECT poi_id, visits
	FROM poi_visits
	ORDER BY visits DESC, poi_id ASC
	LIMIT ?;
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("top visited: query poi_visits table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.VisitCount, 0, limit)
	for rows.Next() {
		var v domain.VisitCount
		if err := rows.Scan(&v.PointOfInterestID, &v.Visits); err != nil {
			return nil, fmt.Errorf("top visited: scan rows: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top visited: row iteration: %w", err)
	}

	return out, nil
}

func (r *StatisticsRepository) TicketCounts(ctx context.Context) (domain.TicketCounts, error) {
	if r.DB == nil {
		return domain.TicketCounts{}, errors.New("statistics repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT travel_mode, tickets
	FROM ticket_counts;
	`)
	if err != nil {
		return domain.TicketCounts{}, fmt.Errorf("ticket counts: query ticket_counts table: %w", err)
	}
	defer rows.Close()

	var out domain.TicketCounts
	for rows.Next() {
		var (
			mode    string
			tickets int
		)
		if err := rows.Scan(&mode, &tickets); err != nil {
			return domain.TicketCounts{}, fmt.Errorf("ticket counts: scan rows: %w", err)
		}
		switch mode {
		case travelModeFoot:
			out.Foot = tickets
		case travelModeBike:
			out.Bike = tickets
		}
	}
	if err := rows.Err(); err != nil {
		return domain.TicketCounts{}, fmt.Errorf("ticket counts: row iteration: %w", err)
	}

	return out, nil
}
