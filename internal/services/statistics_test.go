package services

import (
	"context"
	"errors"
	"park-course-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatisticsRepo struct {
	recorded  []*domain.Plan
	recordErr error
	visits    []domain.VisitCount
	tickets   domain.TicketCounts
	ticketErr error
	lastLimit int
}

func (f *fakeStatisticsRepo) RecordPlan(_ context.Context, p *domain.Plan) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.recorded = append(f.recorded, p)
	return nil
}

func (f *fakeStatisticsRepo) TopVisited(_ context.Context, limit int) ([]domain.VisitCount, error) {
	f.lastLimit = limit
	return f.visits, nil
}

func (f *fakeStatisticsRepo) TicketCounts(context.Context) (domain.TicketCounts, error) {
	return f.tickets, f.ticketErr
}

func TestStatisticsAcceptRecordsAndClears(t *testing.T) {
	repo := &fakeStatisticsRepo{}
	svc := NewStatisticsService(repo, nil)
	session := NewSession(scenarioGraph(t))
	ctx := context.Background()

	plan, err := session.Plan(ctx, domain.CriterionCost, true, []int{poiA})
	require.NoError(t, err)

	accepted, err := svc.Accept(ctx, session)
	require.NoError(t, err)
	assert.Same(t, plan, accepted)
	require.Len(t, repo.recorded, 1)
	assert.Same(t, plan, repo.recorded[0])
	assert.Nil(t, session.Current())
}

func TestStatisticsAcceptEmptySession(t *testing.T) {
	svc := NewStatisticsService(&fakeStatisticsRepo{}, nil)

	_, err := svc.Accept(context.Background(), NewSession(scenarioGraph(t)))
	require.ErrorIs(t, err, ErrNoCurrentPlan)

	_, err = svc.Accept(context.Background(), nil)
	require.Error(t, err)
}

func TestStatisticsAcceptRecordFailureKeepsPlan(t *testing.T) {
	repo := &fakeStatisticsRepo{recordErr: errors.New("db down")}
	svc := NewStatisticsService(repo, nil)
	session := NewSession(scenarioGraph(t))
	ctx := context.Background()

	plan, err := session.Plan(ctx, domain.CriterionCost, false, []int{poiB})
	require.NoError(t, err)

	_, err = svc.Accept(ctx, session)
	require.ErrorIs(t, err, repo.recordErr)
	assert.Same(t, plan, session.Current())
}

func TestStatisticsSummarySkipsMissingPointsOfInterest(t *testing.T) {
	repo := &fakeStatisticsRepo{
		tickets: domain.TicketCounts{Foot: 4, Bike: 2},
		visits: []domain.VisitCount{
			{PointOfInterestID: poiB, Visits: 5},
			{PointOfInterestID: 42, Visits: 4},
			{PointOfInterestID: poiA, Visits: 1},
		},
	}
	svc := NewStatisticsService(repo, nil)

	summary, err := svc.Summary(context.Background(), scenarioGraph(t), 10)
	require.NoError(t, err)

	assert.Equal(t, 10, repo.lastLimit)
	assert.Equal(t, domain.TicketCounts{Foot: 4, Bike: 2}, summary.Tickets)
	require.Len(t, summary.TopVisited, 2)
	assert.Equal(t, "B", summary.TopVisited[0].PointOfInterest.Name)
	assert.Equal(t, 5, summary.TopVisited[0].Visits)
	assert.Equal(t, poiA, summary.TopVisited[1].PointOfInterest.ID)
}

func TestStatisticsSummaryRepositoryError(t *testing.T) {
	repo := &fakeStatisticsRepo{ticketErr: errors.New("query failed")}
	svc := NewStatisticsService(repo, nil)

	_, err := svc.Summary(context.Background(), scenarioGraph(t), 5)
	require.ErrorIs(t, err, repo.ticketErr)
}
