package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a per-user record describing an event relevant to them.
// Delivery (email/push/UI badge) is an external consumer; this subsystem
// only persists the record and its read flag.
type Notification struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Type   NotificationType

	TopicID *uuid.UUID
	ReplyID *uuid.UUID

	// TriggeredBy is the actor whose action produced the notification.
	TriggeredBy   uuid.UUID
	TriggeredName string

	Message string

	IsRead    bool
	CreatedAt time.Time
}
