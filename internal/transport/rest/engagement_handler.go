package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

type engagementService interface {
	ToggleTopicLike(ctx context.Context, topicID uuid.UUID) (bool, error)
	ToggleReplyLike(ctx context.Context, replyID uuid.UUID) (bool, error)
}

// EngagementHandler serves like toggle endpoints.
type EngagementHandler struct {
	engagement engagementService
	log        *slog.Logger
}

// NewEngagementHandler creates an EngagementHandler.
func NewEngagementHandler(log *slog.Logger, engagement engagementService) *EngagementHandler {
	return &EngagementHandler{engagement: engagement, log: log}
}

type likeResponse struct {
	Liked bool `json:"liked"`
}

func (h *EngagementHandler) ToggleTopicLike(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	liked, err := h.engagement.ToggleTopicLike(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, likeResponse{Liked: liked})
}

func (h *EngagementHandler) ToggleReplyLike(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	liked, err := h.engagement.ToggleReplyLike(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, likeResponse{Liked: liked})
}
