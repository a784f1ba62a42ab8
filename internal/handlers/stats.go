package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pokernight/stats-api/internal/models"
	"github.com/pokernight/stats-api/internal/store"
)

// GetPlayerStats returns the full derived stats for one player
// @Summary Player Stats
// @Description Aggregated totals, rates, streak and calendar buckets for a single player
// @Tags Stats
// @Produce json
// @Param playerID path string true "Player ID"
// @Success 200 {object} models.PlayerStatsResponse
// @Failure 404 {object} map[string]string "Unknown player"
// @Router /stats/players/{playerID} [get]
func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing player ID")
		return
	}

	stats, err := h.stats.GetPlayerStats(ctx, playerID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrUnknownPlayer) {
			h.errorResponse(w, http.StatusNotFound, "Unknown player: "+playerID)
			return
		}
		h.logger.Errorw("failed to aggregate player stats", "player", playerID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load player stats")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.PlayerStatsResponse{Player: *stats})
}

// GetLeaderboard returns the all-time standings
// @Summary Group Leaderboard
// @Description All registered players ranked by total profit
// @Tags Stats
// @Produce json
// @Success 200 {object} map[string]interface{} "Leaderboard Data"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /stats/leaderboard [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.stats.GetLeaderboard(ctx, time.Now())
	if err != nil {
		h.logger.Errorw("failed to build leaderboard", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"leaderboard": entries,
		"count":       len(entries),
	})
}
