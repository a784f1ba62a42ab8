package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pokernight/stats-api/internal/logic"
	"github.com/pokernight/stats-api/internal/models"
	"github.com/pokernight/stats-api/internal/store"
)

// PostForecast calibrates tonight's expected profits for a roster
// @Summary Tonight's Forecast
// @Description Zero-sum expected-profit distribution for the selected roster; pass a seed for a reproducible run
// @Tags Forecast
// @Accept json
// @Produce json
// @Param body body models.ForecastRequest true "Roster"
// @Success 200 {object} models.ForecastResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown player"
// @Router /forecast [post]
func (h *Handler) PostForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	var req models.ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Roster must name at least two players")
		return
	}

	entries, err := h.forecast.ForecastRoster(ctx, req.Players, time.Now(), req.Seed)
	if err != nil {
		switch {
		case errors.Is(err, logic.ErrRosterTooSmall):
			h.errorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrUnknownPlayer):
			h.errorResponse(w, http.StatusNotFound, err.Error())
		default:
			h.logger.Errorw("forecast calibration failed", "roster", req.Players, "error", err)
			h.errorResponse(w, http.StatusInternalServerError, "Failed to calibrate forecast")
		}
		return
	}

	h.jsonResponse(w, http.StatusOK, models.ForecastResponse{Forecast: entries})
}
