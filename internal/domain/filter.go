package domain

import "github.com/google/uuid"

// TopicFilter contains filtering/pagination parameters for topic listings.
// All set filters are AND-combined with exact match.
type TopicFilter struct {
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID
	Status     *TopicStatus
	IsPinned   *bool

	SortBy   TopicSort
	PageSize int

	// Cursor is an opaque continuation token derived from the last item's
	// sort key. Keyset pagination keeps pages stable under concurrent
	// inserts, unlike offsets.
	Cursor *string
}

// TopicPage is one page of a topic listing.
type TopicPage struct {
	Topics     []*Topic
	HasMore    bool
	NextCursor *string
}

// ReplyPage is one page of a reply listing, always in chronological order.
type ReplyPage struct {
	Replies    []*Reply
	HasMore    bool
	NextCursor *string
}

// ForumStats aggregates forum-wide totals and derived views.
//
// ActiveUsers (last 30 days) and TopContributors are declared in the shape
// but not computed by this subsystem; they stay zero/empty.
type ForumStats struct {
	TotalTopics  int
	TotalReplies int
	TotalViews   int
	TotalUsers   int

	RecentActivities []Activity
	PopularTopics    []*Topic

	ActiveUsers     int
	TopContributors []Author
}
