package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a named grouping of topics with its own moderation and role policy.
// Categories are never hard-deleted; IsActive=false is the soft-delete path.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Icon        *string
	Color       *string
	Slug        string

	// ParentID is a weak reference to another category (subcategories).
	// No ownership: deleting the parent does not affect children.
	ParentID *uuid.UUID

	IsActive         bool
	RequiresApproval bool

	// AllowedRoles lists role identifiers permitted to post. Empty means
	// no restriction. Enforcement happens at the caller boundary; the
	// service re-checks only when actor roles are supplied.
	AllowedRoles []string

	// Moderators is the set of user identifiers with moderation rights.
	Moderators []uuid.UUID

	// TopicCount and ReplyCount are derived aggregates, mutated only via
	// atomic counter updates and never allowed to go negative.
	TopicCount int
	ReplyCount int

	// LastTopicAt/LastTopicBy denormalize the most recent topic, best-effort.
	LastTopicAt *time.Time
	LastTopicBy *uuid.UUID

	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanPost reports whether an actor holding the given roles may post into
// the category. An empty AllowedRoles list admits everyone.
func (c *Category) CanPost(roles []string) bool {
	if len(c.AllowedRoles) == 0 {
		return true
	}
	for _, allowed := range c.AllowedRoles {
		for _, r := range roles {
			if r == allowed {
				return true
			}
		}
	}
	return false
}

// IsModerator reports whether the given user is in the moderator set.
func (c *Category) IsModerator(userID uuid.UUID) bool {
	for _, m := range c.Moderators {
		if m == userID {
			return true
		}
	}
	return false
}

// CategoryUpdateParams holds optional fields for partial category updates.
// nil means "don't change".
type CategoryUpdateParams struct {
	Name             *string
	Description      *string
	Icon             *string
	Color            *string
	IsActive         *bool
	RequiresApproval *bool
	AllowedRoles     []string
	Moderators       []uuid.UUID
	DisplayOrder     *int
}
