package reply

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// ModerateReply sets a reply's moderation status. The acting user must be
// a moderator of the owning topic's category.
func (s *Service) ModerateReply(ctx context.Context, input ModerateReplyInput) (*domain.Reply, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	reply, err := s.replies.GetByID(ctx, input.ReplyID)
	if err != nil {
		return nil, fmt.Errorf("get reply: %w", err)
	}

	topic, err := s.topics.GetByID(ctx, reply.TopicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	category, err := s.categories.GetByID(ctx, topic.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if !category.IsModerator(actorID) {
		return nil, domain.ErrForbidden
	}

	if err := s.replies.UpdateStatus(ctx, reply.ID, input.Status, actorID); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	updated, err := s.replies.GetByID(ctx, reply.ID)
	if err != nil {
		return nil, fmt.Errorf("get reply: %w", err)
	}

	actorName := ctxutil.UserNameFromCtx(ctx)

	s.activity.Record(ctx, domain.Activity{
		Type:        domain.ActivityReplyModerated,
		ActorID:     actorID,
		ActorName:   actorName,
		TopicID:     &topic.ID,
		ReplyID:     &updated.ID,
		CategoryID:  &category.ID,
		Description: fmt.Sprintf("set reply on %q to %s", topic.Title, updated.Status),
	})

	s.notify.Dispatch(ctx, domain.Notification{
		UserID:        updated.Author.ID,
		Type:          moderationNotification(input.Status),
		TopicID:       &topic.ID,
		ReplyID:       &updated.ID,
		TriggeredBy:   actorID,
		TriggeredName: actorName,
		Message:       moderationMessage(topic.Title, input.Status, input.Reason),
	})

	s.log.InfoContext(ctx, "reply moderated",
		slog.String("reply_id", updated.ID.String()),
		slog.String("status", updated.Status.String()),
	)

	return updated, nil
}

func moderationNotification(status domain.ReplyStatus) domain.NotificationType {
	switch status {
	case domain.ReplyStatusApproved, domain.ReplyStatusPublished:
		return domain.NotificationReplyApproved
	case domain.ReplyStatusRejected, domain.ReplyStatusSpam:
		return domain.NotificationReplyRejected
	}
	return domain.NotificationModeratorAction
}

func moderationMessage(topicTitle string, status domain.ReplyStatus, reason *string) string {
	msg := fmt.Sprintf("Your reply on %q was set to %s", topicTitle, status)
	if reason != nil && *reason != "" {
		msg += ": " + *reason
	}
	return msg
}
