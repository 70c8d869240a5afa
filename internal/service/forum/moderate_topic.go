package forum

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// ModerateTopic sets a topic's moderation status. The acting user must be
// a moderator of the topic's category. Status transitions are not guarded;
// moderators may set any valid status, including re-opening rejected topics.
func (s *Service) ModerateTopic(ctx context.Context, input ModerateTopicInput) (*domain.Topic, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	topic, err := s.topics.GetByID(ctx, input.TopicID)
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

	if err := s.topics.UpdateStatus(ctx, topic.ID, input.Status, actorID); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	updated, err := s.topics.GetByID(ctx, topic.ID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	actorName := ctxutil.UserNameFromCtx(ctx)

	s.activity.Record(ctx, domain.Activity{
		Type:        domain.ActivityTopicModerated,
		ActorID:     actorID,
		ActorName:   actorName,
		TopicID:     &updated.ID,
		CategoryID:  &updated.CategoryID,
		Description: fmt.Sprintf("set topic %q to %s", updated.Title, updated.Status),
	})

	s.notify.Dispatch(ctx, domain.Notification{
		UserID:        updated.Author.ID,
		Type:          moderationNotification(input.Status),
		TopicID:       &updated.ID,
		TriggeredBy:   actorID,
		TriggeredName: actorName,
		Message:       moderationMessage(updated.Title, input.Status, input.Reason),
	})

	s.log.InfoContext(ctx, "topic moderated",
		slog.String("topic_id", updated.ID.String()),
		slog.String("status", updated.Status.String()),
	)

	return updated, nil
}

// SetPinned pins or unpins a topic. Moderator-only.
func (s *Service) SetPinned(ctx context.Context, topicID uuid.UUID, pinned bool) error {
	return s.setFlag(ctx, topicID, pinned, s.topics.SetPinned, "pinned")
}

// SetLocked locks or unlocks a topic. Locked topics reject new replies
// and content edits. Moderator-only.
func (s *Service) SetLocked(ctx context.Context, topicID uuid.UUID, locked bool) error {
	return s.setFlag(ctx, topicID, locked, s.topics.SetLocked, "locked")
}

func (s *Service) setFlag(
	ctx context.Context,
	topicID uuid.UUID,
	value bool,
	set func(ctx context.Context, topicID uuid.UUID, value bool) error,
	name string,
) error {
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

	category, err := s.categories.GetByID(ctx, topic.CategoryID)
	if err != nil {
		return fmt.Errorf("get category: %w", err)
	}
	if !category.IsModerator(actorID) {
		return domain.ErrForbidden
	}

	if err := set(ctx, topic.ID, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}

	s.log.InfoContext(ctx, "topic flag changed",
		slog.String("topic_id", topic.ID.String()),
		slog.String("flag", name),
		slog.Bool("value", value),
	)

	return nil
}

func moderationNotification(status domain.TopicStatus) domain.NotificationType {
	switch status {
	case domain.TopicStatusApproved, domain.TopicStatusPublished:
		return domain.NotificationTopicApproved
	case domain.TopicStatusRejected, domain.TopicStatusSpam:
		return domain.NotificationTopicRejected
	}
	return domain.NotificationModeratorAction
}

func moderationMessage(title string, status domain.TopicStatus, reason *string) string {
	msg := fmt.Sprintf("Your topic %q was set to %s", title, status)
	if reason != nil && *reason != "" {
		msg += ": " + *reason
	}
	return msg
}
