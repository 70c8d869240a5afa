// Package activity implements the append-only activity log service.
//
// Record is fire-and-forget: append failures are logged and swallowed so
// they never surface to the triggering operation.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

type activityRepo interface {
	Create(ctx context.Context, a domain.Activity) error
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)
}

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// Service provides activity log operations.
type Service struct {
	activities activityRepo
	log        *slog.Logger
}

// NewService creates a new activity service.
func NewService(log *slog.Logger, activities activityRepo) *Service {
	return &Service{
		activities: activities,
		log:        log.With("service", "activity"),
	}
}

// Record appends an activity entry. Failures are logged and swallowed;
// the caller's operation must not depend on the append succeeding.
func (s *Service) Record(ctx context.Context, a domain.Activity) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	if err := s.activities.Create(ctx, a); err != nil {
		s.log.WarnContext(ctx, "activity append failed",
			slog.String("type", a.Type.String()),
			slog.String("actor_id", a.ActorID.String()),
			slog.Any("error", err),
		)
	}
}

// RecentActivities returns the most recent entries, newest first.
func (s *Service) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	activities, err := s.activities.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}

	return activities, nil
}
