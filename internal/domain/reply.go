package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reply is a response to a topic, optionally nested under another reply.
type Reply struct {
	ID      uuid.UUID
	TopicID uuid.UUID

	// ParentReplyID is a weak reference to another reply in the same topic
	// (threading). It must not form cycles and carries no ownership.
	ParentReplyID *uuid.UUID

	Author Author

	Content string
	Status  ReplyStatus

	LikeCount int
	LikedBy   []uuid.UUID

	IsAcceptedAnswer bool

	Attachments []Attachment

	CreatedAt time.Time
	UpdatedAt time.Time
	EditedAt  *time.Time

	ModeratedAt *time.Time
	ModeratedBy *uuid.UUID
}

// ReplyModeration describes a moderator's status decision on a reply.
type ReplyModeration struct {
	Status      ReplyStatus
	ModeratorID uuid.UUID
	Reason      *string
}
