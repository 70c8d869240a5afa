package reply

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// CreateReply posts a reply to a topic. The topic's reply counter and
// last-reply marker and the category's reply counter are updated in the
// same transaction. The topic author is notified afterwards.
func (s *Service) CreateReply(ctx context.Context, input CreateReplyInput) (*domain.Reply, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(s.cfg); err != nil {
		return nil, err
	}

	topic, err := s.topics.GetByID(ctx, input.TopicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if topic.IsLocked {
		return nil, fmt.Errorf("topic is locked: %w", domain.ErrConflict)
	}

	if input.ParentReplyID != nil {
		parent, err := s.replies.GetByID(ctx, *input.ParentReplyID)
		if err != nil {
			return nil, fmt.Errorf("get parent reply: %w", err)
		}
		if parent.TopicID != topic.ID {
			return nil, domain.NewValidationError("parent_reply_id", "parent belongs to a different topic")
		}
	}

	category, err := s.categories.GetByID(ctx, topic.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	reply := &domain.Reply{
		ID:            uuid.New(),
		TopicID:       topic.ID,
		ParentReplyID: input.ParentReplyID,
		Author: domain.Author{
			ID:   actorID,
			Name: ctxutil.UserNameFromCtx(ctx),
		},
		Content:     input.Content,
		Status:      initialStatus(category),
		Attachments: input.Attachments,
	}

	var created *domain.Reply
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err = s.replies.Create(ctx, reply)
		if err != nil {
			return fmt.Errorf("create reply: %w", err)
		}
		if err := s.topics.ApplyReplyCreated(ctx, topic.ID, created.CreatedAt, actorID); err != nil {
			return fmt.Errorf("apply reply created: %w", err)
		}
		if err := s.categories.AdjustReplyCount(ctx, category.ID, 1); err != nil {
			return fmt.Errorf("adjust reply count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, domain.Activity{
		Type:        domain.ActivityReplyCreated,
		ActorID:     actorID,
		ActorName:   created.Author.Name,
		TopicID:     &topic.ID,
		ReplyID:     &created.ID,
		CategoryID:  &category.ID,
		Description: fmt.Sprintf("replied to topic %q", topic.Title),
	})

	s.notify.Dispatch(ctx, domain.Notification{
		UserID:        topic.Author.ID,
		Type:          domain.NotificationNewReply,
		TopicID:       &topic.ID,
		ReplyID:       &created.ID,
		TriggeredBy:   actorID,
		TriggeredName: created.Author.Name,
		Message:       fmt.Sprintf("New reply on your topic %q", topic.Title),
	})

	s.log.InfoContext(ctx, "reply created",
		slog.String("reply_id", created.ID.String()),
		slog.String("topic_id", topic.ID.String()),
	)

	return created, nil
}
