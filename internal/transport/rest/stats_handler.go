package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

type statsService interface {
	ForumStats(ctx context.Context) (*domain.ForumStats, error)
}

type activityService interface {
	RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error)
}

// StatsHandler serves forum statistics and the activity feed.
type StatsHandler struct {
	stats      statsService
	activities activityService
	log        *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(log *slog.Logger, stats statsService, activities activityService) *StatsHandler {
	return &StatsHandler{stats: stats, activities: activities, log: log}
}

func (h *StatsHandler) ForumStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.ForumStats(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toForumStatsDTO(stats))
}

func (h *StatsHandler) RecentActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.RecentActivities(r.Context(), queryInt(r, "limit"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	out := make([]activityDTO, 0, len(activities))
	for _, a := range activities {
		out = append(out, toActivityDTO(a))
	}
	writeJSON(w, http.StatusOK, out)
}
