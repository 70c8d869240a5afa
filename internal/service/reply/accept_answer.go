package reply

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// SetAcceptedAnswer marks or unmarks a reply as the accepted answer.
// Only the topic author may accept. Uniqueness is not enforced; accepting
// a second reply does not clear the first.
func (s *Service) SetAcceptedAnswer(ctx context.Context, replyID uuid.UUID, accepted bool) (*domain.Reply, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}
	if replyID == uuid.Nil {
		return nil, domain.NewValidationError("reply_id", "required")
	}

	reply, err := s.replies.GetByID(ctx, replyID)
	if err != nil {
		return nil, fmt.Errorf("get reply: %w", err)
	}

	topic, err := s.topics.GetByID(ctx, reply.TopicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if topic.Author.ID != actorID {
		return nil, domain.ErrForbidden
	}

	if err := s.replies.SetAcceptedAnswer(ctx, reply.ID, accepted); err != nil {
		return nil, fmt.Errorf("set accepted answer: %w", err)
	}

	updated, err := s.replies.GetByID(ctx, reply.ID)
	if err != nil {
		return nil, fmt.Errorf("get reply: %w", err)
	}

	s.log.InfoContext(ctx, "accepted answer changed",
		slog.String("reply_id", updated.ID.String()),
		slog.Bool("accepted", accepted),
	)

	return updated, nil
}
