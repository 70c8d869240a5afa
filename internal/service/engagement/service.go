// Package engagement implements likes and view counting. Likes have set
// semantics per user; views are an unconditional atomic increment.
package engagement

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

type topicRepo interface {
	GetByID(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
	IncrementView(ctx context.Context, topicID uuid.UUID) error
	AddLike(ctx context.Context, topicID, userID uuid.UUID) (bool, error)
	RemoveLike(ctx context.Context, topicID, userID uuid.UUID) (bool, error)
}

type replyRepo interface {
	GetByID(ctx context.Context, replyID uuid.UUID) (*domain.Reply, error)
	AddLike(ctx context.Context, replyID, userID uuid.UUID) (bool, error)
	RemoveLike(ctx context.Context, replyID, userID uuid.UUID) (bool, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, n domain.Notification)
}

// Service provides like toggles and view counting.
type Service struct {
	topics  topicRepo
	replies replyRepo
	notify  dispatcher
	log     *slog.Logger
}

// NewService creates a new engagement service.
func NewService(log *slog.Logger, topics topicRepo, replies replyRepo, notify dispatcher) *Service {
	return &Service{
		topics:  topics,
		replies: replies,
		notify:  notify,
		log:     log.With("service", "engagement"),
	}
}
