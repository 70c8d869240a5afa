package category

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// CreateCategoryInput holds the parameters for creating a category.
type CreateCategoryInput struct {
	Name             string
	Description      *string
	Icon             *string
	Color            *string
	Slug             string // optional; derived from Name when empty
	ParentID         *uuid.UUID
	RequiresApproval bool
	AllowedRoles     []string
	Moderators       []uuid.UUID
	DisplayOrder     int
}

// Validate checks all fields and collects all errors.
func (i CreateCategoryInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}
	if i.Description != nil && len(*i.Description) > 500 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateCategoryInput holds the parameters for updating a category.
// nil means "don't change".
type UpdateCategoryInput struct {
	CategoryID       uuid.UUID
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

// Validate checks all fields and collects all errors.
func (i UpdateCategoryInput) Validate() error {
	var errs []domain.FieldError

	if i.CategoryID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "category_id", Message: "required"})
	}
	if i.Name != nil && strings.TrimSpace(*i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.Description != nil && len(*i.Description) > 500 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
