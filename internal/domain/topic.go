package domain

import (
	"time"

	"github.com/google/uuid"
)

// Author is a denormalized author snapshot taken at creation time.
// It is not a live reference; profile changes do not propagate.
type Author struct {
	ID    uuid.UUID
	Name  string
	Email *string
}

// Attachment is an opaque file reference carried by topics and replies.
type Attachment struct {
	Name string
	URL  string
	Size int64
}

// Topic is a top-level discussion thread within a category.
type Topic struct {
	ID         uuid.UUID
	CategoryID uuid.UUID

	// CategoryName/CategorySlug snapshot the category at creation time.
	// Read optimization only; may go stale and is never used for
	// authorization decisions.
	CategoryName string
	CategorySlug string

	Author Author

	Title   string
	Content string
	Tags    []string

	Status   TopicStatus
	Priority TopicPriority

	IsPinned bool
	IsLocked bool

	// ViewCount is a monotonic non-negative counter (atomic +1, no viewer
	// dedup). ReplyCount mirrors the live reply count for the topic.
	ViewCount  int
	ReplyCount int

	// LastReplyAt/LastReplyBy denormalize the most recent reply.
	LastReplyAt *time.Time
	LastReplyBy *uuid.UUID

	// LikeCount is derived from the likes set. Likes membership itself
	// lives in a join table with set semantics; LikedBy is populated on
	// reads that request it.
	LikeCount int
	LikedBy   []uuid.UUID

	Attachments []Attachment

	CreatedAt time.Time
	UpdatedAt time.Time

	// Moderation audit, set when a moderator changes status.
	ModeratedAt *time.Time
	ModeratedBy *uuid.UUID
}

// IsTerminal reports whether the topic status admits no regular transitions.
func (t *Topic) IsTerminal() bool {
	switch t.Status {
	case TopicStatusArchived, TopicStatusRejected, TopicStatusSpam:
		return true
	}
	return false
}

// TopicUpdateParams holds optional fields for partial topic updates.
// nil means "don't change".
type TopicUpdateParams struct {
	Title       *string
	Content     *string
	Tags        []string
	Priority    *TopicPriority
	Attachments []Attachment
}

// TopicModeration describes a moderator's status decision on a topic.
type TopicModeration struct {
	Status      TopicStatus
	ModeratorID uuid.UUID
	Reason      *string
}
