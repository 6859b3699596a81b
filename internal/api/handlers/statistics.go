package handlers

import (
	"errors"
	"net/http"
	"park-course-service/internal/api/dto"
	"park-course-service/internal/services"

	"go.uber.org/zap"
)

const topVisitedLimit = 10

type StatisticsHandler struct {
	Service *services.StatisticsService
	Session *services.Session
	Logger  *zap.Logger
}

// Accept records the current plan in the usage statistics and clears the session.
func (h *StatisticsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	plan, err := h.Service.Accept(r.Context(), h.Session)
	if errors.Is(err, services.ErrNoCurrentPlan) {
		writeError(w, r, h.Logger, http.StatusConflict, "no plan has been calculated")
		return
	}
	if err != nil {
		h.Logger.Error("accept plan failed", zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, h.Logger, http.StatusCreated, dto.NewPlanResponse(plan, 0))
}

func (h *StatisticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context(), h.Session.Provider(), topVisitedLimit)
	if err != nil {
		h.Logger.Error("statistics summary failed", zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.StatisticsResponse{
		FootTickets: summary.Tickets.Foot,
		BikeTickets: summary.Tickets.Bike,
		TopVisited:  make([]dto.VisitedPointOfInterestResponse, 0, len(summary.TopVisited)),
	}
	for _, v := range summary.TopVisited {
		res.TopVisited = append(res.TopVisited, dto.VisitedPointOfInterestResponse{
			PointOfInterestResponse: dto.PointOfInterestResponse{
				PointOfInterestID: v.PointOfInterest.ID,
				Name:              v.PointOfInterest.Name,
				Category:          v.PointOfInterest.Category,
			},
			Visits: v.Visits,
		})
	}

	writeJSON(w, r, h.Logger, http.StatusOK, res)
}
