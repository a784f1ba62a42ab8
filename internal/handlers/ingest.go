package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pokernight/stats-api/internal/models"
)

// IngestGames handles POST /api/v1/ingest/games
// @Summary Ingest Finalized Games
// @Description Accepts one JSON object or newline-separated JSON objects, one per finalized game night
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param body body models.FinalizedGame true "Finalized game"
// @Success 202 {object} map[string]interface{} "Accepted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /ingest/games [post]
func (h *Handler) IngestGames(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	defer r.Body.Close()

	lines := strings.Split(string(body), "\n")
	processed := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var game models.FinalizedGame
		if err := json.Unmarshal([]byte(line), &game); err != nil {
			h.logger.Warnw("failed to unmarshal finalized game", "error", err)
			continue
		}

		if err := h.validator.Struct(&game); err != nil {
			h.logger.Warnw("finalized game failed validation", "error", err, "game", game.GameID)
			continue
		}

		if game.GameID == "" {
			game.GameID = uuid.NewString()
		}

		if !h.pool.Enqueue(&game) {
			h.logger.Warn("ingest queue unavailable, dropping remaining games in batch")
			break
		}
		processed++
	}

	if processed == 0 {
		h.errorResponse(w, http.StatusBadRequest, "No valid games in request body")
		return
	}

	h.jsonResponse(w, http.StatusAccepted, map[string]interface{}{
		"status":    "accepted",
		"processed": processed,
	})
}
