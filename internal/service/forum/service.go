// Package forum implements the topic lifecycle: creation, content updates,
// moderation, pin/lock flags, cascade deletion, view counting, and listing.
package forum

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/config"
	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

type topicRepo interface {
	Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error)
	GetByID(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
	Update(ctx context.Context, topicID uuid.UUID, params domain.TopicUpdateParams) (*domain.Topic, error)
	UpdateStatus(ctx context.Context, topicID uuid.UUID, status domain.TopicStatus, moderatorID uuid.UUID) error
	SetPinned(ctx context.Context, topicID uuid.UUID, pinned bool) error
	SetLocked(ctx context.Context, topicID uuid.UUID, locked bool) error
	Delete(ctx context.Context, topicID uuid.UUID) error
	List(ctx context.Context, filter domain.TopicFilter) (*domain.TopicPage, error)
}

type categoryRepo interface {
	GetByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error)
	AdjustTopicCount(ctx context.Context, categoryID uuid.UUID, delta int) error
	SetLastTopic(ctx context.Context, categoryID uuid.UUID, at time.Time, by uuid.UUID) error
}

// replyBulkDeleter is the cascade-delete hook into the reply store.
// The bulk path performs no per-reply counter updates.
type replyBulkDeleter interface {
	DeleteByTopic(ctx context.Context, topicID uuid.UUID) (int, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, n domain.Notification)
}

type activityRecorder interface {
	Record(ctx context.Context, a domain.Activity)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides topic lifecycle operations.
type Service struct {
	topics     topicRepo
	categories categoryRepo
	replies    replyBulkDeleter
	notify     dispatcher
	activity   activityRecorder
	tx         txManager
	cfg        config.ForumConfig
	log        *slog.Logger
}

// NewService creates a new forum service.
func NewService(
	log *slog.Logger,
	topics topicRepo,
	categories categoryRepo,
	replies replyBulkDeleter,
	notify dispatcher,
	activity activityRecorder,
	tx txManager,
	cfg config.ForumConfig,
) *Service {
	return &Service{
		topics:     topics,
		categories: categories,
		replies:    replies,
		notify:     notify,
		activity:   activity,
		tx:         tx,
		cfg:        cfg,
		log:        log.With("service", "forum"),
	}
}

// initialStatus determines a new topic's status from the category's
// moderation policy.
func initialStatus(category *domain.Category) domain.TopicStatus {
	if category.RequiresApproval {
		return domain.TopicStatusPendingApproval
	}
	return domain.TopicStatusPublished
}

// normalizeTags trims, lowercases, and dedupes tags preserving order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
