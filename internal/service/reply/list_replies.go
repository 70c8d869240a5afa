package reply

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// ListReplies returns one page of a topic's replies in chronological
// order. Ordering is fixed; there is no sort parameter. Page size is
// clamped to the configured bounds.
func (s *Service) ListReplies(ctx context.Context, topicID uuid.UUID, pageSize int, cursor *string) (*domain.ReplyPage, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("topic_id", "required")
	}
	if pageSize <= 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}

	page, err := s.replies.ListByTopic(ctx, topicID, pageSize, cursor)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}

	return page, nil
}

// GetReply returns a reply by ID.
func (s *Service) GetReply(ctx context.Context, replyID uuid.UUID) (*domain.Reply, error) {
	if replyID == uuid.Nil {
		return nil, domain.NewValidationError("reply_id", "required")
	}

	reply, err := s.replies.GetByID(ctx, replyID)
	if err != nil {
		return nil, fmt.Errorf("get reply: %w", err)
	}

	return reply, nil
}
