package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// Wire representations. Domain entities never cross the HTTP boundary
// directly; these structs fix the JSON shape independently of storage.

type categoryDTO struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Description      *string     `json:"description,omitempty"`
	Icon             *string     `json:"icon,omitempty"`
	Color            *string     `json:"color,omitempty"`
	Slug             string      `json:"slug"`
	ParentID         *uuid.UUID  `json:"parent_id,omitempty"`
	IsActive         bool        `json:"is_active"`
	RequiresApproval bool        `json:"requires_approval"`
	AllowedRoles     []string    `json:"allowed_roles"`
	Moderators       []uuid.UUID `json:"moderators"`
	TopicCount       int         `json:"topic_count"`
	ReplyCount       int         `json:"reply_count"`
	LastTopicAt      *time.Time  `json:"last_topic_at,omitempty"`
	LastTopicBy      *uuid.UUID  `json:"last_topic_by,omitempty"`
	DisplayOrder     int         `json:"display_order"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func toCategoryDTO(c *domain.Category) categoryDTO {
	return categoryDTO{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		Icon:             c.Icon,
		Color:            c.Color,
		Slug:             c.Slug,
		ParentID:         c.ParentID,
		IsActive:         c.IsActive,
		RequiresApproval: c.RequiresApproval,
		AllowedRoles:     c.AllowedRoles,
		Moderators:       c.Moderators,
		TopicCount:       c.TopicCount,
		ReplyCount:       c.ReplyCount,
		LastTopicAt:      c.LastTopicAt,
		LastTopicBy:      c.LastTopicBy,
		DisplayOrder:     c.DisplayOrder,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

type authorDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email *string   `json:"email,omitempty"`
}

type attachmentDTO struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

func toAttachmentDTOs(in []domain.Attachment) []attachmentDTO {
	out := make([]attachmentDTO, 0, len(in))
	for _, a := range in {
		out = append(out, attachmentDTO{Name: a.Name, URL: a.URL, Size: a.Size})
	}
	return out
}

func fromAttachmentDTOs(in []attachmentDTO) []domain.Attachment {
	out := make([]domain.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, domain.Attachment{Name: a.Name, URL: a.URL, Size: a.Size})
	}
	return out
}

type topicDTO struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	CategorySlug string          `json:"category_slug"`
	Author       authorDTO       `json:"author"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	Tags         []string        `json:"tags"`
	Status       string          `json:"status"`
	Priority     string          `json:"priority"`
	IsPinned     bool            `json:"is_pinned"`
	IsLocked     bool            `json:"is_locked"`
	ViewCount    int             `json:"view_count"`
	ReplyCount   int             `json:"reply_count"`
	LastReplyAt  *time.Time      `json:"last_reply_at,omitempty"`
	LastReplyBy  *uuid.UUID      `json:"last_reply_by,omitempty"`
	LikeCount    int             `json:"like_count"`
	Attachments  []attachmentDTO `json:"attachments"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toTopicDTO(t *domain.Topic) topicDTO {
	return topicDTO{
		ID:           t.ID,
		CategoryID:   t.CategoryID,
		CategoryName: t.CategoryName,
		CategorySlug: t.CategorySlug,
		Author:       authorDTO{ID: t.Author.ID, Name: t.Author.Name, Email: t.Author.Email},
		Title:        t.Title,
		Content:      t.Content,
		Tags:         t.Tags,
		Status:       t.Status.String(),
		Priority:     t.Priority.String(),
		IsPinned:     t.IsPinned,
		IsLocked:     t.IsLocked,
		ViewCount:    t.ViewCount,
		ReplyCount:   t.ReplyCount,
		LastReplyAt:  t.LastReplyAt,
		LastReplyBy:  t.LastReplyBy,
		LikeCount:    t.LikeCount,
		Attachments:  toAttachmentDTOs(t.Attachments),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

type topicPageDTO struct {
	Topics     []topicDTO `json:"topics"`
	HasMore    bool       `json:"has_more"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

func toTopicPageDTO(p *domain.TopicPage) topicPageDTO {
	out := topicPageDTO{
		Topics:     make([]topicDTO, 0, len(p.Topics)),
		HasMore:    p.HasMore,
		NextCursor: p.NextCursor,
	}
	for _, t := range p.Topics {
		out.Topics = append(out.Topics, toTopicDTO(t))
	}
	return out
}

type replyDTO struct {
	ID               uuid.UUID       `json:"id"`
	TopicID          uuid.UUID       `json:"topic_id"`
	ParentReplyID    *uuid.UUID      `json:"parent_reply_id,omitempty"`
	Author           authorDTO       `json:"author"`
	Content          string          `json:"content"`
	Status           string          `json:"status"`
	LikeCount        int             `json:"like_count"`
	IsAcceptedAnswer bool            `json:"is_accepted_answer"`
	Attachments      []attachmentDTO `json:"attachments"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	EditedAt         *time.Time      `json:"edited_at,omitempty"`
}

func toReplyDTO(r *domain.Reply) replyDTO {
	return replyDTO{
		ID:               r.ID,
		TopicID:          r.TopicID,
		ParentReplyID:    r.ParentReplyID,
		Author:           authorDTO{ID: r.Author.ID, Name: r.Author.Name, Email: r.Author.Email},
		Content:          r.Content,
		Status:           r.Status.String(),
		LikeCount:        r.LikeCount,
		IsAcceptedAnswer: r.IsAcceptedAnswer,
		Attachments:      toAttachmentDTOs(r.Attachments),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		EditedAt:         r.EditedAt,
	}
}

type replyPageDTO struct {
	Replies    []replyDTO `json:"replies"`
	HasMore    bool       `json:"has_more"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

func toReplyPageDTO(p *domain.ReplyPage) replyPageDTO {
	out := replyPageDTO{
		Replies:    make([]replyDTO, 0, len(p.Replies)),
		HasMore:    p.HasMore,
		NextCursor: p.NextCursor,
	}
	for _, r := range p.Replies {
		out.Replies = append(out.Replies, toReplyDTO(r))
	}
	return out
}

type notificationDTO struct {
	ID            uuid.UUID  `json:"id"`
	Type          string     `json:"type"`
	TopicID       *uuid.UUID `json:"topic_id,omitempty"`
	ReplyID       *uuid.UUID `json:"reply_id,omitempty"`
	TriggeredBy   uuid.UUID  `json:"triggered_by"`
	TriggeredName string     `json:"triggered_name"`
	Message       string     `json:"message"`
	IsRead        bool       `json:"is_read"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toNotificationDTO(n domain.Notification) notificationDTO {
	return notificationDTO{
		ID:            n.ID,
		Type:          n.Type.String(),
		TopicID:       n.TopicID,
		ReplyID:       n.ReplyID,
		TriggeredBy:   n.TriggeredBy,
		TriggeredName: n.TriggeredName,
		Message:       n.Message,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
}

type activityDTO struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	ActorID     uuid.UUID  `json:"actor_id"`
	ActorName   string     `json:"actor_name"`
	TopicID     *uuid.UUID `json:"topic_id,omitempty"`
	ReplyID     *uuid.UUID `json:"reply_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toActivityDTO(a domain.Activity) activityDTO {
	return activityDTO{
		ID:          a.ID,
		Type:        a.Type.String(),
		ActorID:     a.ActorID,
		ActorName:   a.ActorName,
		TopicID:     a.TopicID,
		ReplyID:     a.ReplyID,
		CategoryID:  a.CategoryID,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}

type forumStatsDTO struct {
	TotalTopics      int           `json:"total_topics"`
	TotalReplies     int           `json:"total_replies"`
	TotalViews       int           `json:"total_views"`
	TotalUsers       int           `json:"total_users"`
	RecentActivities []activityDTO `json:"recent_activities"`
	PopularTopics    []topicDTO    `json:"popular_topics"`
}

func toForumStatsDTO(s *domain.ForumStats) forumStatsDTO {
	out := forumStatsDTO{
		TotalTopics:      s.TotalTopics,
		TotalReplies:     s.TotalReplies,
		TotalViews:       s.TotalViews,
		TotalUsers:       s.TotalUsers,
		RecentActivities: make([]activityDTO, 0, len(s.RecentActivities)),
		PopularTopics:    make([]topicDTO, 0, len(s.PopularTopics)),
	}
	for _, a := range s.RecentActivities {
		out.RecentActivities = append(out.RecentActivities, toActivityDTO(a))
	}
	for _, t := range s.PopularTopics {
		out.PopularTopics = append(out.PopularTopics, toTopicDTO(t))
	}
	return out
}
