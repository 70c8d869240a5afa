package reply

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// EditReply replaces a reply's content. Only the reply author may edit.
// The reply's status moves to EDITED and the edit timestamp is recorded.
func (s *Service) EditReply(ctx context.Context, input EditReplyInput) (*domain.Reply, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(s.cfg); err != nil {
		return nil, err
	}

	reply, err := s.replies.GetByID(ctx, input.ReplyID)
	if err != nil {
		return nil, fmt.Errorf("get reply: %w", err)
	}
	if reply.Author.ID != actorID {
		return nil, domain.ErrForbidden
	}

	topic, err := s.topics.GetByID(ctx, reply.TopicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if topic.IsLocked {
		return nil, fmt.Errorf("topic is locked: %w", domain.ErrConflict)
	}

	if err := s.replies.UpdateContent(ctx, reply.ID, input.Content); err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}

	updated, err := s.replies.GetByID(ctx, reply.ID)
	if err != nil {
		return nil, fmt.Errorf("get reply: %w", err)
	}

	s.log.InfoContext(ctx, "reply edited",
		slog.String("reply_id", updated.ID.String()),
	)

	return updated, nil
}
