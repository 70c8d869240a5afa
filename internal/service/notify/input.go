package notify

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// MarkReadInput holds the parameters for marking a notification read.
type MarkReadInput struct {
	NotificationID uuid.UUID
}

// Validate checks all fields.
func (i MarkReadInput) Validate() error {
	if i.NotificationID == uuid.Nil {
		return domain.NewValidationError("notification_id", "required")
	}
	return nil
}
