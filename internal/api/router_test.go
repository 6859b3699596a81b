package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"park-course-service/internal/adapters/parkmap"
	"park-course-service/internal/adapters/repositories"
	"park-course-service/internal/api"
	"park-course-service/internal/api/dto"
	"park-course-service/internal/platform/db"
	"park-course-service/internal/platform/metrics"
	"park-course-service/internal/services"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, maxStops int) http.Handler {
	t.Helper()

	g, err := parkmap.LoadJSON(filepath.Join("..", "..", "data", "seeds", "park.json"))
	require.NoError(t, err)

	database, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, repositories.InitSchema(database))

	collector := metrics.NewCollector("park")
	return api.NewRouter(api.RouterDeps{
		Session:           services.NewSession(g, services.WithObserver(collector)),
		Statistics:        services.NewStatisticsService(repositories.NewSqliteStatisticsRepository(database), nil),
		Metrics:           collector,
		MaxMandatoryStops: maxStops,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodePlan(t *testing.T, rec *httptest.ResponseRecorder) dto.PlanResponse {
	t.Helper()
	var res dto.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res["error"]
}

func ids(pois []dto.PointOfInterestResponse) []int {
	out := make([]int, 0, len(pois))
	for _, p := range pois {
		out = append(out, p.PointOfInterestID)
	}
	return out
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, 8)

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestRouter(t, 8)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestPointsOfInterest(t *testing.T) {
	h := newTestRouter(t, 8)

	rec := do(t, h, http.MethodGet, "/pois", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list dto.ListPointsOfInterestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.StartID)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, ids(list.PointsOfInterest))

	rec = do(t, h, http.MethodGet, "/pois/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"poi_id":3,"name":"Butterfly House","category":"exhibit"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/pois/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/pois/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanCourse(t *testing.T) {
	h := newTestRouter(t, 8)

	rec := do(t, h, http.MethodPost, "/plans", `{"criterion":"cost","navigability":false,"points_of_interest":[3]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	plan := decodePlan(t, rec)
	assert.NotEmpty(t, plan.PlanID)
	assert.Equal(t, "cost", plan.Criterion)
	assert.Equal(t, "euros", plan.Unit)
	assert.Equal(t, 2, plan.TotalCost)
	assert.Equal(t, []int{1, 6, 3, 6, 1}, ids(plan.PointsOfInterest))
	assert.Len(t, plan.Connections, 4)
	assert.Equal(t, []int{3}, ids(plan.MandatoryStops))
	assert.Equal(t, 0, plan.HistoryDepth)

	rec = do(t, h, http.MethodPost, "/plans", `{"criterion":"cost","navigability":true,"points_of_interest":[3]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	plan = decodePlan(t, rec)
	assert.True(t, plan.Navigability)
	assert.Equal(t, 4, plan.TotalCost)
	assert.Equal(t, []int{1, 2, 3, 2, 1}, ids(plan.PointsOfInterest))
	assert.Equal(t, 1, plan.HistoryDepth)
	for _, c := range plan.Connections {
		assert.True(t, c.Navigable)
	}
}

func TestPlanCourseErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{name: "invalid json", body: `{"criterion":`, status: http.StatusBadRequest, msg: "invalid json body"},
		{name: "unknown field", body: `{"criterion":"cost","points_of_interest":[3],"speed":4}`, status: http.StatusBadRequest},
		{name: "two objects", body: `{"criterion":"cost","points_of_interest":[3]}{}`, status: http.StatusBadRequest, msg: "body must contain only one JSON object"},
		{name: "missing criterion", body: `{"points_of_interest":[3]}`, status: http.StatusBadRequest, msg: "criterion failed required"},
		{name: "invalid criterion", body: `{"criterion":"time","points_of_interest":[3]}`, status: http.StatusBadRequest},
		{name: "non-positive id", body: `{"criterion":"cost","points_of_interest":[0]}`, status: http.StatusBadRequest},
		{name: "too many stops", body: `{"criterion":"cost","points_of_interest":[2,3,4]}`, status: http.StatusBadRequest, msg: "at most 2 points of interest can be selected"},
		{name: "empty stop set", body: `{"criterion":"cost","points_of_interest":[]}`, status: http.StatusBadRequest, msg: services.ErrEmptyStopSet.Error()},
		{name: "unknown point of interest", body: `{"criterion":"cost","points_of_interest":[99]}`, status: http.StatusNotFound},
		{name: "no feasible path", body: `{"criterion":"distance","navigability":true,"points_of_interest":[6]}`, status: http.StatusUnprocessableEntity, msg: services.ErrNoFeasiblePath.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t, 2)

			rec := do(t, h, http.MethodPost, "/plans", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			msg := errorMessage(t, rec)
			assert.NotEmpty(t, msg)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, msg)
			}

			// a failed request never creates a plan
			rec = do(t, h, http.MethodGet, "/plans/current", "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestPlanHistoryFlow(t *testing.T) {
	h := newTestRouter(t, 8)

	rec := do(t, h, http.MethodGet, "/plans/current", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no plan has been calculated", errorMessage(t, rec))

	rec = do(t, h, http.MethodPost, "/plans/undo", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/plans", `{"criterion":"cost","points_of_interest":[3]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodePlan(t, rec)

	rec = do(t, h, http.MethodPost, "/plans", `{"criterion":"distance","navigability":true,"points_of_interest":[3,7]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decodePlan(t, rec)
	assert.Equal(t, "meters", second.Unit)

	rec = do(t, h, http.MethodGet, "/plans/current", "")
	require.Equal(t, http.StatusOK, rec.Code)
	current := decodePlan(t, rec)
	assert.Equal(t, second.PlanID, current.PlanID)
	assert.Equal(t, 1, current.HistoryDepth)

	rec = do(t, h, http.MethodPost, "/plans/undo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	restored := decodePlan(t, rec)
	assert.Equal(t, first.PlanID, restored.PlanID)
	assert.Equal(t, 0, restored.HistoryDepth)

	rec = do(t, h, http.MethodPost, "/plans/undo", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/plans/current", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first.PlanID, decodePlan(t, rec).PlanID)

	rec = do(t, h, http.MethodDelete, "/plans", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/plans/current", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAcceptAndStatistics(t *testing.T) {
	h := newTestRouter(t, 8)

	rec := do(t, h, http.MethodPost, "/plans/current/accept", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/plans", `{"criterion":"cost","points_of_interest":[3,4]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	plan := decodePlan(t, rec)

	rec = do(t, h, http.MethodPost, "/plans/current/accept", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, plan.PlanID, decodePlan(t, rec).PlanID)

	rec = do(t, h, http.MethodGet, "/plans/current", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/plans", `{"criterion":"cost","navigability":true,"points_of_interest":[4]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/plans/current/accept", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats dto.StatisticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.FootTickets)
	assert.Equal(t, 1, stats.BikeTickets)
	require.Len(t, stats.TopVisited, 2)
	assert.Equal(t, 4, stats.TopVisited[0].PointOfInterestID)
	assert.Equal(t, "Old Oak", stats.TopVisited[0].Name)
	assert.Equal(t, 2, stats.TopVisited[0].Visits)
	assert.Equal(t, 3, stats.TopVisited[1].PointOfInterestID)
	assert.Equal(t, 1, stats.TopVisited[1].Visits)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, 8)

	do(t, h, http.MethodPost, "/plans", `{"criterion":"cost","points_of_interest":[3]}`)
	do(t, h, http.MethodPost, "/plans", `{"criterion":"cost","navigability":true,"points_of_interest":[6]}`)
	do(t, h, http.MethodPost, "/plans/undo", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `park_plans_total{criterion="cost",outcome="success"} 1`), body)
	assert.True(t, strings.Contains(body, `park_plans_total{criterion="cost",outcome="failure"} 1`), body)
	assert.True(t, strings.Contains(body, `park_undo_total{outcome="empty"} 1`), body)
	assert.True(t, strings.Contains(body, `park_http_requests_total{method="POST",route="/plans`), body)
}

func TestMetricsUnmatchedRoutesShareOneSeries(t *testing.T) {
	h := newTestRouter(t, 8)

	for i := 0; i < 5; i++ {
		rec := do(t, h, http.MethodGet, fmt.Sprintf("/nope-%d", i), "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `park_http_requests_total{method="GET",route="unmatched",status="404"} 5`)
	assert.NotContains(t, body, "/nope-")
}

func TestHistoryDepthInResponses(t *testing.T) {
	h := newTestRouter(t, 8)

	for want, stops := range []string{"[3]", "[4]", "[3,4]"} {
		rec := do(t, h, http.MethodPost, "/plans", `{"criterion":"cost","points_of_interest":`+stops+`}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, decodePlan(t, rec).HistoryDepth)
	}

	rec := do(t, h, http.MethodPost, "/plans/undo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodePlan(t, rec).HistoryDepth)

	rec = do(t, h, http.MethodGet, "/plans/current", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodePlan(t, rec).HistoryDepth)
}
