package reply

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// DeleteReply removes a single reply and decrements the topic's and
// category's reply counters in one transaction. The counters clamp at
// zero. Author or category moderator only.
func (s *Service) DeleteReply(ctx context.Context, replyID uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrForbidden
	}
	if replyID == uuid.Nil {
		return domain.NewValidationError("reply_id", "required")
	}

	reply, err := s.replies.GetByID(ctx, replyID)
	if err != nil {
		return fmt.Errorf("get reply: %w", err)
	}

	topic, err := s.topics.GetByID(ctx, reply.TopicID)
	if err != nil {
		return fmt.Errorf("get topic: %w", err)
	}

	if reply.Author.ID != actorID {
		category, err := s.categories.GetByID(ctx, topic.CategoryID)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		if !category.IsModerator(actorID) {
			return domain.ErrForbidden
		}
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.replies.Delete(ctx, reply.ID); err != nil {
			return fmt.Errorf("delete reply: %w", err)
		}
		if err := s.topics.DecrementReplyCount(ctx, topic.ID); err != nil {
			return fmt.Errorf("decrement reply count: %w", err)
		}
		if err := s.categories.AdjustReplyCount(ctx, topic.CategoryID, -1); err != nil {
			return fmt.Errorf("adjust reply count: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, domain.Activity{
		Type:        domain.ActivityReplyDeleted,
		ActorID:     actorID,
		ActorName:   ctxutil.UserNameFromCtx(ctx),
		TopicID:     &topic.ID,
		CategoryID:  &topic.CategoryID,
		Description: fmt.Sprintf("deleted a reply on %q", topic.Title),
	})

	s.log.InfoContext(ctx, "reply deleted",
		slog.String("reply_id", reply.ID.String()),
		slog.String("topic_id", topic.ID.String()),
	)

	return nil
}
