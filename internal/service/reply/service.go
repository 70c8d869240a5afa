// Package reply implements the reply lifecycle: posting, editing,
// moderation, accepted answers, deletion, and listing.
package reply

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/config"
	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

type replyRepo interface {
	Create(ctx context.Context, reply *domain.Reply) (*domain.Reply, error)
	GetByID(ctx context.Context, replyID uuid.UUID) (*domain.Reply, error)
	ListByTopic(ctx context.Context, topicID uuid.UUID, pageSize int, cursor *string) (*domain.ReplyPage, error)
	UpdateContent(ctx context.Context, replyID uuid.UUID, content string) error
	UpdateStatus(ctx context.Context, replyID uuid.UUID, status domain.ReplyStatus, moderatorID uuid.UUID) error
	SetAcceptedAnswer(ctx context.Context, replyID uuid.UUID, accepted bool) error
	Delete(ctx context.Context, replyID uuid.UUID) error
}

type topicRepo interface {
	GetByID(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
	ApplyReplyCreated(ctx context.Context, topicID uuid.UUID, at time.Time, by uuid.UUID) error
	DecrementReplyCount(ctx context.Context, topicID uuid.UUID) error
}

type categoryRepo interface {
	GetByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error)
	AdjustReplyCount(ctx context.Context, categoryID uuid.UUID, delta int) error
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

// Service provides reply lifecycle operations.
type Service struct {
	replies    replyRepo
	topics     topicRepo
	categories categoryRepo
	notify     dispatcher
	activity   activityRecorder
	tx         txManager
	cfg        config.ForumConfig
	log        *slog.Logger
}

// NewService creates a new reply service.
func NewService(
	log *slog.Logger,
	replies replyRepo,
	topics topicRepo,
	categories categoryRepo,
	notify dispatcher,
	activity activityRecorder,
	tx txManager,
	cfg config.ForumConfig,
) *Service {
	return &Service{
		replies:    replies,
		topics:     topics,
		categories: categories,
		notify:     notify,
		activity:   activity,
		tx:         tx,
		cfg:        cfg,
		log:        log.With("service", "reply"),
	}
}

// initialStatus determines a new reply's status from the category's
// moderation policy.
func initialStatus(category *domain.Category) domain.ReplyStatus {
	if category.RequiresApproval {
		return domain.ReplyStatusPendingApproval
	}
	return domain.ReplyStatusPublished
}
