// Package category implements category administration: creation, metadata
// updates, and soft-deletion via deactivation. Category counters are owned
// by the topic and reply services and never mutated here.
package category

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

type categoryRepo interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Update(ctx context.Context, categoryID uuid.UUID, params domain.CategoryUpdateParams) (*domain.Category, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Category, error)
}

type activityRecorder interface {
	Record(ctx context.Context, a domain.Activity)
}

// Service provides category management operations.
type Service struct {
	categories categoryRepo
	activity   activityRecorder
	log        *slog.Logger
}

// NewService creates a new category service.
func NewService(log *slog.Logger, categories categoryRepo, activity activityRecorder) *Service {
	return &Service{
		categories: categories,
		activity:   activity,
		log:        log.With("service", "category"),
	}
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL slug from a category name.
func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugUnsafe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
