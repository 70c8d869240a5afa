package engagement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// ToggleTopicLike adds the acting user to a topic's likes set, or removes
// them if already present. Returns true when the result is "liked".
// Repeating the same direction is a no-op; the content author is notified
// only on the unliked-to-liked transition.
func (s *Service) ToggleTopicLike(ctx context.Context, topicID uuid.UUID) (bool, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrForbidden
	}
	if topicID == uuid.Nil {
		return false, domain.NewValidationError("topic_id", "required")
	}

	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return false, fmt.Errorf("get topic: %w", err)
	}

	added, err := s.topics.AddLike(ctx, topic.ID, actorID)
	if err != nil {
		return false, fmt.Errorf("add like: %w", err)
	}
	if !added {
		// Already a member: this toggle removes the like.
		if _, err := s.topics.RemoveLike(ctx, topic.ID, actorID); err != nil {
			return false, fmt.Errorf("remove like: %w", err)
		}
		return false, nil
	}

	s.notify.Dispatch(ctx, domain.Notification{
		UserID:        topic.Author.ID,
		Type:          domain.NotificationTopicLiked,
		TopicID:       &topic.ID,
		TriggeredBy:   actorID,
		TriggeredName: ctxutil.UserNameFromCtx(ctx),
		Message:       fmt.Sprintf("Your topic %q was liked", topic.Title),
	})

	s.log.InfoContext(ctx, "topic liked",
		slog.String("topic_id", topic.ID.String()),
	)

	return true, nil
}

// ToggleReplyLike is the reply counterpart of ToggleTopicLike.
func (s *Service) ToggleReplyLike(ctx context.Context, replyID uuid.UUID) (bool, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrForbidden
	}
	if replyID == uuid.Nil {
		return false, domain.NewValidationError("reply_id", "required")
	}

	reply, err := s.replies.GetByID(ctx, replyID)
	if err != nil {
		return false, fmt.Errorf("get reply: %w", err)
	}

	added, err := s.replies.AddLike(ctx, reply.ID, actorID)
	if err != nil {
		return false, fmt.Errorf("add like: %w", err)
	}
	if !added {
		if _, err := s.replies.RemoveLike(ctx, reply.ID, actorID); err != nil {
			return false, fmt.Errorf("remove like: %w", err)
		}
		return false, nil
	}

	s.notify.Dispatch(ctx, domain.Notification{
		UserID:        reply.Author.ID,
		Type:          domain.NotificationReplyLiked,
		TopicID:       &reply.TopicID,
		ReplyID:       &reply.ID,
		TriggeredBy:   actorID,
		TriggeredName: ctxutil.UserNameFromCtx(ctx),
		Message:       "Your reply was liked",
	})

	s.log.InfoContext(ctx, "reply liked",
		slog.String("reply_id", reply.ID.String()),
	)

	return true, nil
}
