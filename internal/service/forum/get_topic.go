package forum

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// GetTopic returns a topic by ID. The read does not touch the view
// counter; viewing is reported separately via RecordView.
func (s *Service) GetTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("topic_id", "required")
	}

	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	return topic, nil
}

// ListTopics returns a page of topics matching the filter. Page size is
// clamped to the configured bounds.
func (s *Service) ListTopics(ctx context.Context, filter domain.TopicFilter) (*domain.TopicPage, error) {
	if filter.SortBy != "" && !filter.SortBy.IsValid() {
		return nil, domain.NewValidationError("sort_by", "invalid")
	}
	if filter.PageSize <= 0 {
		filter.PageSize = s.cfg.DefaultPageSize
	}
	if filter.PageSize > s.cfg.MaxPageSize {
		filter.PageSize = s.cfg.MaxPageSize
	}

	page, err := s.topics.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	return page, nil
}
