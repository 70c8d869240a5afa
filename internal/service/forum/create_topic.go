package forum

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// CreateTopic creates a topic in a category. The author snapshot is taken
// from the request context, the initial status follows the category's
// moderation policy, and the category's topic counter and last-topic
// marker are updated in the same transaction.
func (s *Service) CreateTopic(ctx context.Context, input CreateTopicInput) (*domain.Topic, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(s.cfg); err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if !category.IsActive {
		return nil, domain.NewValidationError("category_id", "category is inactive")
	}
	if !category.CanPost(ctxutil.RolesFromCtx(ctx)) {
		return nil, domain.ErrForbidden
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TopicPriorityNormal
	}

	topic := &domain.Topic{
		ID:           uuid.New(),
		CategoryID:   category.ID,
		CategoryName: category.Name,
		CategorySlug: category.Slug,
		Author: domain.Author{
			ID:   actorID,
			Name: ctxutil.UserNameFromCtx(ctx),
		},
		Title:       input.Title,
		Content:     input.Content,
		Tags:        normalizeTags(input.Tags),
		Status:      initialStatus(category),
		Priority:    priority,
		Attachments: input.Attachments,
	}

	var created *domain.Topic
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err = s.topics.Create(ctx, topic)
		if err != nil {
			return fmt.Errorf("create topic: %w", err)
		}
		if err := s.categories.AdjustTopicCount(ctx, category.ID, 1); err != nil {
			return fmt.Errorf("adjust topic count: %w", err)
		}
		if err := s.categories.SetLastTopic(ctx, category.ID, created.CreatedAt, actorID); err != nil {
			return fmt.Errorf("set last topic: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, domain.Activity{
		Type:        domain.ActivityTopicCreated,
		ActorID:     actorID,
		ActorName:   created.Author.Name,
		TopicID:     &created.ID,
		CategoryID:  &category.ID,
		Description: fmt.Sprintf("created topic %q", created.Title),
	})

	for _, moderatorID := range category.Moderators {
		s.notify.Dispatch(ctx, domain.Notification{
			UserID:        moderatorID,
			Type:          domain.NotificationNewTopic,
			TopicID:       &created.ID,
			TriggeredBy:   actorID,
			TriggeredName: created.Author.Name,
			Message:       fmt.Sprintf("New topic in %s: %s", category.Name, created.Title),
		})
	}

	s.log.InfoContext(ctx, "topic created",
		slog.String("topic_id", created.ID.String()),
		slog.String("category_id", category.ID.String()),
		slog.String("status", created.Status.String()),
	)

	return created, nil
}
