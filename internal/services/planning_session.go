package services

import (
	"context"
	"park-course-service/internal/domain"
	"park-course-service/internal/platform/obs"
	"park-course-service/internal/ports"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionOption func(*Session)

func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithObserver(observer ports.PlanObserver) SessionOption {
	return func(s *Session) { s.observer = observer }
}

func withClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// Session coordinates shortest-path search and tour optimization and owns the
// current plan and its history.
//
// The current plan only changes after a planning call has fully succeeded;
// a failed call leaves both the current plan and the history untouched.
// All methods are serialized by one mutex per session.
type Session struct {
	mu       sync.Mutex
	provider ports.MapProvider
	history  *History
	current  *domain.Plan

	logger   *zap.Logger
	observer ports.PlanObserver
	now      func() time.Time
}

func NewSession(provider ports.MapProvider, opts ...SessionOption) *Session {
	s := &Session{
		provider: provider,
		history:  NewHistory(),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot is the session state observed inside one critical section.
type Snapshot struct {
	Plan         *domain.Plan
	HistoryDepth int
}

// Plan computes the minimum-cost round trip from the map's start node through
// every mandatory stop and commits it as the current plan.
//
// Duplicate ids are collapsed, keeping the first occurrence. The previous current
// plan, if any, is pushed into history once the new plan is built.
func (s *Session) Plan(
	ctx context.Context,
	criterion domain.Criterion,
	navigability bool,
	stopIDs []int,
) (*domain.Plan, error) {
	snap, err := s.PlanSnapshot(ctx, criterion, navigability, stopIDs)
	if err != nil {
		return nil, err
	}
	return snap.Plan, nil
}

// PlanSnapshot is Plan, also reporting the history depth right after the commit.
func (s *Session) PlanSnapshot(
	ctx context.Context,
	criterion domain.Criterion,
	navigability bool,
	stopIDs []int,
) (snap Snapshot, err error) {
	defer obs.Time(ctx, s.logger, "course.plan")(&err)

	started := time.Now()
	if s.observer != nil {
		defer func() {
			s.observer.ObservePlan(string(criterion), len(stopIDs), time.Since(started), err)
		}()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.compute(criterion, navigability, stopIDs)
	if err != nil {
		s.logger.Warn("course calculation failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("criterion", string(criterion)),
			zap.Bool("navigability", navigability),
			zap.Ints("stops", stopIDs),
			zap.Error(err),
		)
		return Snapshot{}, err
	}

	if s.current != nil {
		s.history.Push(s.current)
	}
	s.current = plan

	s.logger.Info("course calculated",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("plan_id", plan.ID),
		zap.String("criterion", string(criterion)),
		zap.Bool("navigability", navigability),
		zap.Ints("stops", stopIDs),
		zap.Int("total_cost", plan.TotalCost),
		zap.Int("history_depth", s.history.Depth()),
	)

	return Snapshot{Plan: plan, HistoryDepth: s.history.Depth()}, nil
}

// compute builds a plan without touching session state.
func (s *Session) compute(criterion domain.Criterion, navigability bool, stopIDs []int) (*domain.Plan, error) {
	if len(stopIDs) == 0 {
		return nil, &PlanningError{Kind: ErrEmptyStopSet}
	}

	if criterion != domain.CriterionCost && criterion != domain.CriterionDistance {
		return nil, &PlanningError{Kind: ErrInvalidCriterion}
	}

	stops := make([]domain.PointOfInterest, 0, len(stopIDs))
	seen := make(map[int]struct{}, len(stopIDs))
	for _, id := range stopIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		poi, err := s.provider.PointOfInterest(id)
		if err != nil {
			return nil, &PlanningError{Kind: ErrUnknownPointOfInterest, PointOfInterestID: id}
		}
		stops = append(stops, poi)
	}

	start := s.provider.StartNode()

	// One table per possible segment origin: the start node and every stop.
	tables := make(map[int]*PathTable, len(stops)+1)
	tables[start.ID] = ShortestPaths(s.provider, start, criterion, navigability)
	for _, stop := range stops {
		if _, ok := tables[stop.ID]; ok {
			continue
		}
		tables[stop.ID] = ShortestPaths(s.provider, stop, criterion, navigability)
	}

	tour, err := BestTour(start, stops, tables)
	if err != nil {
		return nil, err
	}

	return &domain.Plan{
		ID:               uuid.NewString(),
		Criterion:        criterion,
		Navigability:     navigability,
		TotalCost:        tour.Cost,
		PointsOfInterest: tour.PointsOfInterest,
		Connections:      tour.Connections,
		MandatoryStops:   slices.Clone(stops),
		CreatedAt:        s.now().UTC(),
	}, nil
}

// Current returns the current plan, nil when the session is empty.
func (s *Session) Current() *domain.Plan {
	return s.Snapshot().Plan
}

// Snapshot returns the current plan and history depth together.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Plan: s.current, HistoryDepth: s.history.Depth()}
}

// Undo restores the most recently displaced plan as current.
// With an empty history it changes nothing and reports false.
func (s *Session) Undo() (*domain.Plan, bool) {
	snap, ok := s.UndoSnapshot()
	return snap.Plan, ok
}

// UndoSnapshot is Undo, also reporting the history depth left after the pop.
func (s *Session) UndoSnapshot() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.Pop()
	if s.observer != nil {
		s.observer.ObserveUndo(ok)
	}
	if !ok {
		return Snapshot{Plan: s.current, HistoryDepth: s.history.Depth()}, false
	}

	s.current = prev
	s.logger.Info("course restored",
		zap.String("plan_id", prev.ID),
		zap.Int("history_depth", s.history.Depth()),
	)
	return Snapshot{Plan: prev, HistoryDepth: s.history.Depth()}, true
}

// Clear drops the history and the current plan.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.Clear()
	s.current = nil
}

// HistoryDepth is the number of displaced plans retained for undo.
func (s *Session) HistoryDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Depth()
}

// Accept hands the current plan to fn and clears the session when fn succeeds.
//
// fn runs without the session lock held. If the session moved on to another
// plan meanwhile, that newer state is kept. The session is left unchanged
// when it is empty or fn fails.
func (s *Session) Accept(fn func(*domain.Plan) error) (*domain.Plan, error) {
	plan := s.Current()
	if plan == nil {
		return nil, ErrNoCurrentPlan
	}

	if err := fn(plan); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == plan {
		s.history.Clear()
		s.current = nil
	}
	return plan, nil
}

// Provider exposes the map the session plans over.
func (s *Session) Provider() ports.MapProvider { return s.provider }
