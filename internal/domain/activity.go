package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is an immutable audit-log entry describing a significant action.
// Entries are append-only and never mutated or deleted by this subsystem.
type Activity struct {
	ID   uuid.UUID
	Type ActivityType

	ActorID   uuid.UUID
	ActorName string

	TopicID    *uuid.UUID
	ReplyID    *uuid.UUID
	CategoryID *uuid.UUID

	Description string
	CreatedAt   time.Time
}
