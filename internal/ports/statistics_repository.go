package ports

import (
	"context"
	"park-course-service/internal/domain"
)

// Port: persistence of usage statistics for accepted plans.
type StatisticsRepository interface {
	// Record an accepted plan: one visit per mandatory stop and one ticket for its travel mode.
	RecordPlan(ctx context.Context, plan *domain.Plan) error
	// Return the most visited points of interest, most visits first.
	TopVisited(ctx context.Context, limit int) ([]domain.VisitCount, error)
	// Return accepted plan totals by travel mode.
	TicketCounts(ctx context.Context) (domain.TicketCounts, error)
}
