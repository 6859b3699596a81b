package handlers

import (
	"errors"
	"net/http"
	"park-course-service/internal/api/dto"
	"park-course-service/internal/ports"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PointOfInterestHandler exposes read-only access to the park map.
type PointOfInterestHandler struct {
	Provider ports.MapProvider
	Logger   *zap.Logger
}

func (h *PointOfInterestHandler) List(w http.ResponseWriter, r *http.Request) {
	res := dto.ListPointsOfInterestResponse{
		StartID:          h.Provider.StartNode().ID,
		PointsOfInterest: dto.NewPointOfInterestResponses(h.Provider.Vertices()),
	}
	writeJSON(w, r, h.Logger, http.StatusOK, res)
}

func (h *PointOfInterestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, h.Logger, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	poi, err := h.Provider.PointOfInterest(id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, h.Logger, http.StatusNotFound, "point of interest not found")
		return
	}
	if err != nil {
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, h.Logger, http.StatusOK, dto.PointOfInterestResponse{
		PointOfInterestID: poi.ID,
		Name:              poi.Name,
		Category:          poi.Category,
	})
}
