package services

import (
	"context"
	"errors"
	"fmt"
	"park-course-service/internal/domain"
	"park-course-service/internal/ports"

	"go.uber.org/zap"
)

// A visit count resolved against the current map.
type VisitedPointOfInterest struct {
	PointOfInterest domain.PointOfInterest
	Visits          int
}

type StatisticsSummary struct {
	Tickets    domain.TicketCounts
	TopVisited []VisitedPointOfInterest
}

// StatisticsService records accepted plans and reports usage statistics.
type StatisticsService struct {
	Repo   ports.StatisticsRepository
	Logger *zap.Logger
}

func NewStatisticsService(repo ports.StatisticsRepository, logger *zap.Logger) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsService{Repo: repo, Logger: logger}
}

// Accept records the session's current plan and clears the session.
// Nothing is cleared when recording fails.
func (s *StatisticsService) Accept(ctx context.Context, session *Session) (*domain.Plan, error) {
	if session == nil {
		return nil, errors.New("accept plan: session must be non-nil")
	}

	plan, err := session.Accept(func(p *domain.Plan) error {
		return s.Repo.RecordPlan(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("accept plan: %w", err)
	}

	s.Logger.Info("plan accepted",
		zap.String("plan_id", plan.ID),
		zap.Int("mandatory_stops", len(plan.MandatoryStops)),
		zap.Bool("navigability", plan.Navigability),
	)
	return plan, nil
}

// Summary returns ticket totals and the limit most visited points of interest.
// Visit counts for ids missing from the map are skipped.
func (s *StatisticsService) Summary(
	ctx context.Context,
	provider ports.MapProvider,
	limit int,
) (*StatisticsSummary, error) {
	tickets, err := s.Repo.TicketCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("statistics summary: ticket counts: %w", err)
	}

	visits, err := s.Repo.TopVisited(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("statistics summary: top visited: %w", err)
	}

	out := &StatisticsSummary{
		Tickets:    tickets,
		TopVisited: make([]VisitedPointOfInterest, 0, len(visits)),
	}
	for _, v := range visits {
		poi, err := provider.PointOfInterest(v.PointOfInterestID)
		if err != nil {
			s.Logger.Warn("visited point of interest missing from map",
				zap.Int("poi_id", v.PointOfInterestID),
				zap.Error(err),
			)
			continue
		}
		out.TopVisited = append(out.TopVisited, VisitedPointOfInterest{PointOfInterest: poi, Visits: v.Visits})
	}

	return out, nil
}
