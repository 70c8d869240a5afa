package engagement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// RecordView bumps a topic's view counter by one. There is no viewer
// dedup: every call counts, including repeat views by the same user.
func (s *Service) RecordView(ctx context.Context, topicID uuid.UUID) error {
	if topicID == uuid.Nil {
		return domain.NewValidationError("topic_id", "required")
	}

	if err := s.topics.IncrementView(ctx, topicID); err != nil {
		return fmt.Errorf("increment view: %w", err)
	}

	return nil
}
