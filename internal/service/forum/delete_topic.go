package forum

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// DeleteTopic removes a topic together with all of its replies and
// decrements the owning category's topic counter, all in one transaction.
// Author or category moderator only. The bulk reply removal intentionally
// skips the per-reply counter bookkeeping: the category's reply counter is
// left untouched, matching the cascade's historical behavior.
func (s *Service) DeleteTopic(ctx context.Context, topicID uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrForbidden
	}
	if topicID == uuid.Nil {
		return domain.NewValidationError("topic_id", "required")
	}

	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return fmt.Errorf("get topic: %w", err)
	}

	if topic.Author.ID != actorID {
		category, err := s.categories.GetByID(ctx, topic.CategoryID)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		if !category.IsModerator(actorID) {
			return domain.ErrForbidden
		}
	}

	var removedReplies int
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		removedReplies, err = s.replies.DeleteByTopic(ctx, topic.ID)
		if err != nil {
			return fmt.Errorf("delete replies: %w", err)
		}
		if err := s.topics.Delete(ctx, topic.ID); err != nil {
			return fmt.Errorf("delete topic: %w", err)
		}
		if err := s.categories.AdjustTopicCount(ctx, topic.CategoryID, -1); err != nil {
			return fmt.Errorf("adjust topic count: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, domain.Activity{
		Type:        domain.ActivityTopicDeleted,
		ActorID:     actorID,
		ActorName:   ctxutil.UserNameFromCtx(ctx),
		CategoryID:  &topic.CategoryID,
		Description: fmt.Sprintf("deleted topic %q", topic.Title),
	})

	s.log.InfoContext(ctx, "topic deleted",
		slog.String("topic_id", topic.ID.String()),
		slog.Int("removed_replies", removedReplies),
	)

	return nil
}
