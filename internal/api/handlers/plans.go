package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"park-course-service/internal/api/dto"
	"park-course-service/internal/domain"
	"park-course-service/internal/services"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type PlanHandler struct {
	Session  *services.Session
	Validate *validator.Validate
	MaxStops int
	Logger   *zap.Logger
}

// Plan computes a new course and makes it the session's current plan.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, validationMessage(err))
		return
	}

	if h.MaxStops > 0 && len(req.PointsOfInterest) > h.MaxStops {
		writeError(w, r, h.Logger, http.StatusBadRequest, fmt.Sprintf("at most %d points of interest can be selected", h.MaxStops))
		return
	}

	criterion, err := domain.ParseCriterion(req.Criterion)
	if err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.Session.PlanSnapshot(r.Context(), criterion, req.Navigability, req.PointsOfInterest)
	if err != nil {
		status, msg := planErrorResponse(err)
		if status == http.StatusInternalServerError {
			h.Logger.Error("plan course failed", zap.Error(err))
		}
		writeError(w, r, h.Logger, status, msg)
		return
	}

	writeJSON(w, r, h.Logger, http.StatusOK, dto.NewPlanResponse(snap.Plan, snap.HistoryDepth))
}

func (h *PlanHandler) Current(w http.ResponseWriter, r *http.Request) {
	snap := h.Session.Snapshot()
	if snap.Plan == nil {
		writeError(w, r, h.Logger, http.StatusNotFound, "no plan has been calculated")
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, dto.NewPlanResponse(snap.Plan, snap.HistoryDepth))
}

// Undo restores the previously displaced plan; 409 when there is none.
func (h *PlanHandler) Undo(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.Session.UndoSnapshot()
	if !ok {
		writeError(w, r, h.Logger, http.StatusConflict, "no previous plan to restore")
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, dto.NewPlanResponse(snap.Plan, snap.HistoryDepth))
}

func (h *PlanHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Session.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// planErrorResponse maps planning failures to a status code and client message.
func planErrorResponse(err error) (int, string) {
	var pe *services.PlanningError
	if !errors.As(err, &pe) {
		return http.StatusInternalServerError, "internal server error"
	}

	switch {
	case errors.Is(pe, services.ErrEmptyStopSet), errors.Is(pe, services.ErrInvalidCriterion):
		return http.StatusBadRequest, pe.Kind.Error()
	case errors.Is(pe, services.ErrUnknownPointOfInterest):
		return http.StatusNotFound, pe.Error()
	case errors.Is(pe, services.ErrNoFeasiblePath):
		return http.StatusUnprocessableEntity, pe.Kind.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
