package forum

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/config"
	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// CreateTopicInput holds the parameters for creating a topic.
type CreateTopicInput struct {
	CategoryID  uuid.UUID
	Title       string
	Content     string
	Tags        []string
	Priority    domain.TopicPriority
	Attachments []domain.Attachment
}

// Validate checks all fields against the configured limits and collects
// all errors.
func (i CreateTopicInput) Validate(limits config.ForumConfig) error {
	var errs []domain.FieldError

	if i.CategoryID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "category_id", Message: "required"})
	}

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > limits.MaxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > limits.MaxContentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}

	if len(i.Tags) > limits.MaxTags {
		errs = append(errs, domain.FieldError{Field: "tags", Message: "too many"})
	}
	if len(i.Attachments) > limits.MaxAttachments {
		errs = append(errs, domain.FieldError{Field: "attachments", Message: "too many"})
	}
	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateTopicInput holds the parameters for updating topic content.
// nil means "don't change".
type UpdateTopicInput struct {
	TopicID     uuid.UUID
	Title       *string
	Content     *string
	Tags        []string
	Priority    *domain.TopicPriority
	Attachments []domain.Attachment
}

// Validate checks all fields against the configured limits and collects
// all errors.
func (i UpdateTopicInput) Validate(limits config.ForumConfig) error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	if i.Title != nil {
		title := strings.TrimSpace(*i.Title)
		if title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
		}
		if len(title) > limits.MaxTitleLength {
			errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
		}
	}
	if i.Content != nil {
		content := strings.TrimSpace(*i.Content)
		if content == "" {
			errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
		}
		if len(content) > limits.MaxContentLength {
			errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
		}
	}
	if len(i.Tags) > limits.MaxTags {
		errs = append(errs, domain.FieldError{Field: "tags", Message: "too many"})
	}
	if len(i.Attachments) > limits.MaxAttachments {
		errs = append(errs, domain.FieldError{Field: "attachments", Message: "too many"})
	}
	if i.Priority != nil && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ModerateTopicInput holds a moderator's status decision.
type ModerateTopicInput struct {
	TopicID uuid.UUID
	Status  domain.TopicStatus
	Reason  *string
}

// Validate checks all fields and collects all errors.
func (i ModerateTopicInput) Validate() error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
