package forum

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// UpdateTopic applies a partial content update. Only the topic author may
// edit; moderation state is changed through ModerateTopic instead.
func (s *Service) UpdateTopic(ctx context.Context, input UpdateTopicInput) (*domain.Topic, error) {
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
	if topic.Author.ID != actorID {
		return nil, domain.ErrForbidden
	}
	if topic.IsLocked {
		return nil, fmt.Errorf("topic is locked: %w", domain.ErrConflict)
	}

	tags := input.Tags
	if tags != nil {
		tags = normalizeTags(tags)
	}

	updated, err := s.topics.Update(ctx, topic.ID, domain.TopicUpdateParams{
		Title:       input.Title,
		Content:     input.Content,
		Tags:        tags,
		Priority:    input.Priority,
		Attachments: input.Attachments,
	})
	if err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}

	s.activity.Record(ctx, domain.Activity{
		Type:        domain.ActivityTopicUpdated,
		ActorID:     actorID,
		ActorName:   ctxutil.UserNameFromCtx(ctx),
		TopicID:     &updated.ID,
		CategoryID:  &updated.CategoryID,
		Description: fmt.Sprintf("updated topic %q", updated.Title),
	})

	s.log.InfoContext(ctx, "topic updated",
		slog.String("topic_id", updated.ID.String()),
	)

	return updated, nil
}
