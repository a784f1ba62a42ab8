package handlers

import (
	"net/http"
	"time"
)

// GetMilestones returns the ranked storylines for the upcoming game
// @Summary Upcoming Milestones
// @Description At most ten deduplicated storylines across the whole group, sorted by priority
// @Tags Milestones
// @Produce json
// @Success 200 {object} map[string]interface{} "Milestones"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /milestones [get]
func (h *Handler) GetMilestones(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	milestones, err := h.milestones.GetUpcomingMilestones(ctx, time.Now())
	if err != nil {
		h.logger.Errorw("failed to detect milestones", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to detect milestones")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"milestones": milestones,
		"count":      len(milestones),
	})
}
