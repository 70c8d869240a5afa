package domain

// TopicStatus represents the moderation lifecycle state of a topic.
//
// Flow: DRAFT → PENDING_APPROVAL → APPROVED → PUBLISHED; PUBLISHED → ARCHIVED.
// A moderator may move any non-terminal topic to REJECTED or SPAM.
// Transitions are not guarded at the data layer.
type TopicStatus string

const (
	TopicStatusDraft           TopicStatus = "DRAFT"
	TopicStatusPendingApproval TopicStatus = "PENDING_APPROVAL"
	TopicStatusApproved        TopicStatus = "APPROVED"
	TopicStatusPublished       TopicStatus = "PUBLISHED"
	TopicStatusArchived        TopicStatus = "ARCHIVED"
	TopicStatusRejected        TopicStatus = "REJECTED"
	TopicStatusSpam            TopicStatus = "SPAM"
)

func (s TopicStatus) String() string { return string(s) }

func (s TopicStatus) IsValid() bool {
	switch s {
	case TopicStatusDraft, TopicStatusPendingApproval, TopicStatusApproved,
		TopicStatusPublished, TopicStatusArchived, TopicStatusRejected, TopicStatusSpam:
		return true
	}
	return false
}

// ReplyStatus represents the moderation state of a reply.
type ReplyStatus string

const (
	ReplyStatusPublished       ReplyStatus = "PUBLISHED"
	ReplyStatusEdited          ReplyStatus = "EDITED"
	ReplyStatusPendingApproval ReplyStatus = "PENDING_APPROVAL"
	ReplyStatusApproved        ReplyStatus = "APPROVED"
	ReplyStatusRejected        ReplyStatus = "REJECTED"
	ReplyStatusSpam            ReplyStatus = "SPAM"
)

func (s ReplyStatus) String() string { return string(s) }

func (s ReplyStatus) IsValid() bool {
	switch s {
	case ReplyStatusPublished, ReplyStatusEdited, ReplyStatusPendingApproval,
		ReplyStatusApproved, ReplyStatusRejected, ReplyStatusSpam:
		return true
	}
	return false
}

// TopicPriority is informational only and has no workflow effect.
type TopicPriority string

const (
	TopicPriorityLow    TopicPriority = "LOW"
	TopicPriorityNormal TopicPriority = "NORMAL"
	TopicPriorityHigh   TopicPriority = "HIGH"
	TopicPriorityUrgent TopicPriority = "URGENT"
)

func (p TopicPriority) String() string { return string(p) }

func (p TopicPriority) IsValid() bool {
	switch p {
	case TopicPriorityLow, TopicPriorityNormal, TopicPriorityHigh, TopicPriorityUrgent:
		return true
	}
	return false
}

// NotificationType identifies the event a notification describes.
type NotificationType string

const (
	NotificationNewReply        NotificationType = "NEW_REPLY"
	NotificationNewTopic        NotificationType = "NEW_TOPIC"
	NotificationTopicLiked      NotificationType = "TOPIC_LIKED"
	NotificationReplyLiked      NotificationType = "REPLY_LIKED"
	NotificationMention         NotificationType = "MENTION"
	NotificationTopicApproved   NotificationType = "TOPIC_APPROVED"
	NotificationTopicRejected   NotificationType = "TOPIC_REJECTED"
	NotificationReplyApproved   NotificationType = "REPLY_APPROVED"
	NotificationReplyRejected   NotificationType = "REPLY_REJECTED"
	NotificationModeratorAction NotificationType = "MODERATOR_ACTION"
)

func (t NotificationType) String() string { return string(t) }

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationNewReply, NotificationNewTopic, NotificationTopicLiked,
		NotificationReplyLiked, NotificationMention, NotificationTopicApproved,
		NotificationTopicRejected, NotificationReplyApproved,
		NotificationReplyRejected, NotificationModeratorAction:
		return true
	}
	return false
}

// ActivityType identifies the kind of action recorded in the activity log.
type ActivityType string

const (
	ActivityTopicCreated    ActivityType = "TOPIC_CREATED"
	ActivityTopicUpdated    ActivityType = "TOPIC_UPDATED"
	ActivityTopicDeleted    ActivityType = "TOPIC_DELETED"
	ActivityTopicModerated  ActivityType = "TOPIC_MODERATED"
	ActivityReplyCreated    ActivityType = "REPLY_CREATED"
	ActivityReplyDeleted    ActivityType = "REPLY_DELETED"
	ActivityReplyModerated  ActivityType = "REPLY_MODERATED"
	ActivityCategoryCreated ActivityType = "CATEGORY_CREATED"
)

func (t ActivityType) String() string { return string(t) }

func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTopicCreated, ActivityTopicUpdated, ActivityTopicDeleted,
		ActivityTopicModerated, ActivityReplyCreated, ActivityReplyDeleted,
		ActivityReplyModerated, ActivityCategoryCreated:
		return true
	}
	return false
}

// TopicSort selects the ordering for topic listings.
type TopicSort string

const (
	TopicSortLatest      TopicSort = "latest"       // updated_at DESC (default)
	TopicSortPopular     TopicSort = "popular"      // view_count DESC
	TopicSortMostReplies TopicSort = "most_replies" // reply_count DESC
	TopicSortOldest      TopicSort = "oldest"       // created_at ASC
)

func (s TopicSort) String() string { return string(s) }

func (s TopicSort) IsValid() bool {
	switch s {
	case TopicSortLatest, TopicSortPopular, TopicSortMostReplies, TopicSortOldest:
		return true
	}
	return false
}
