package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// CreateCategory creates a new category. Callers are expected to have
// verified the actor is an administrator.
func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	slug := input.Slug
	if slug == "" {
		slug = slugify(input.Name)
	}

	category, err := s.categories.Create(ctx, &domain.Category{
		ID:               uuid.New(),
		Name:             input.Name,
		Description:      trimOrNil(input.Description),
		Icon:             input.Icon,
		Color:            input.Color,
		Slug:             slug,
		ParentID:         input.ParentID,
		IsActive:         true,
		RequiresApproval: input.RequiresApproval,
		AllowedRoles:     input.AllowedRoles,
		Moderators:       input.Moderators,
		DisplayOrder:     input.DisplayOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.activity.Record(ctx, domain.Activity{
		Type:        domain.ActivityCategoryCreated,
		ActorID:     actorID,
		ActorName:   ctxutil.UserNameFromCtx(ctx),
		CategoryID:  &category.ID,
		Description: fmt.Sprintf("created category %q", category.Name),
	})

	s.log.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID.String()),
		slog.String("slug", category.Slug),
	)

	return category, nil
}

// GetCategory returns a category by ID.
func (s *Service) GetCategory(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	if categoryID == uuid.Nil {
		return nil, domain.NewValidationError("category_id", "required")
	}

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return category, nil
}

// GetCategoryBySlug returns a category by its URL slug.
func (s *Service) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	if slug == "" {
		return nil, domain.NewValidationError("slug", "required")
	}

	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get category by slug: %w", err)
	}

	return category, nil
}

// ListCategories returns categories ordered for display.
func (s *Service) ListCategories(ctx context.Context, includeInactive bool) ([]*domain.Category, error) {
	categories, err := s.categories.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

// UpdateCategory modifies category metadata and policy fields.
func (s *Service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*domain.Category, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	category, err := s.categories.Update(ctx, input.CategoryID, domain.CategoryUpdateParams{
		Name:             input.Name,
		Description:      input.Description,
		Icon:             input.Icon,
		Color:            input.Color,
		IsActive:         input.IsActive,
		RequiresApproval: input.RequiresApproval,
		AllowedRoles:     input.AllowedRoles,
		Moderators:       input.Moderators,
		DisplayOrder:     input.DisplayOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.log.InfoContext(ctx, "category updated",
		slog.String("category_id", category.ID.String()),
	)

	return category, nil
}

// DeactivateCategory is the soft-delete path: categories are never
// hard-deleted, only flagged inactive.
func (s *Service) DeactivateCategory(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	inactive := false
	return s.UpdateCategory(ctx, UpdateCategoryInput{
		CategoryID: categoryID,
		IsActive:   &inactive,
	})
}
