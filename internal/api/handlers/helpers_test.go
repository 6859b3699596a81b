package handlers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteJSONLogsEncodeFailureToInjectedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	req := httptest.NewRequest(http.MethodGet, "/plans/current", nil)
	rec := httptest.NewRecorder()

	writeJSON(rec, req, zap.New(core), http.StatusOK, map[string]float64{"cost": math.Inf(1)})

	assert.Equal(t, http.StatusOK, rec.Code)
	entries := logs.FilterMessage("encode failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/plans/current", entries[0].ContextMap()["path"])
}

func TestWriteErrorWithoutLogger(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pois/abc", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		writeError(rec, req, nil, http.StatusBadRequest, "id must be a positive integer")
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"id must be a positive integer"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(zap.NewNop())(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
