package reply

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/config"
	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// CreateReplyInput holds the parameters for posting a reply.
type CreateReplyInput struct {
	TopicID       uuid.UUID
	ParentReplyID *uuid.UUID
	Content       string
	Attachments   []domain.Attachment
}

// Validate checks all fields against the configured limits and collects
// all errors.
func (i CreateReplyInput) Validate(limits config.ForumConfig) error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > limits.MaxContentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}
	if len(i.Attachments) > limits.MaxAttachments {
		errs = append(errs, domain.FieldError{Field: "attachments", Message: "too many"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// EditReplyInput holds the parameters for editing reply content.
type EditReplyInput struct {
	ReplyID uuid.UUID
	Content string
}

// Validate checks all fields against the configured limits and collects
// all errors.
func (i EditReplyInput) Validate(limits config.ForumConfig) error {
	var errs []domain.FieldError

	if i.ReplyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "reply_id", Message: "required"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > limits.MaxContentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ModerateReplyInput holds a moderator's status decision.
type ModerateReplyInput struct {
	ReplyID uuid.UUID
	Status  domain.ReplyStatus
	Reason  *string
}

// Validate checks all fields and collects all errors.
func (i ModerateReplyInput) Validate() error {
	var errs []domain.FieldError

	if i.ReplyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "reply_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
