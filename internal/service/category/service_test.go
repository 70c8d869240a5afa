package category

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockCategoryRepo struct {
	CreateFunc    func(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByIDFunc   func(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error)
	GetBySlugFunc func(ctx context.Context, slug string) (*domain.Category, error)
	UpdateFunc    func(ctx context.Context, categoryID uuid.UUID, params domain.CategoryUpdateParams) (*domain.Category, error)
	ListFunc      func(ctx context.Context, includeInactive bool) ([]*domain.Category, error)
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	return category, nil
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, categoryID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCategoryRepo) Update(ctx context.Context, categoryID uuid.UUID, params domain.CategoryUpdateParams) (*domain.Category, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, categoryID, params)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCategoryRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, includeInactive)
	}
	return nil, nil
}

type mockActivityRecorder struct {
	activities []domain.Activity
}

func (m *mockActivityRecorder) Record(_ context.Context, a domain.Activity) {
	m.activities = append(m.activities, a)
}

func newTestService() (*Service, *mockCategoryRepo, *mockActivityRecorder) {
	repo := &mockCategoryRepo{}
	activity := &mockActivityRecorder{}
	return NewService(slog.Default(), repo, activity), repo, activity
}

func authCtx() context.Context {
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	return ctxutil.WithUserName(ctx, "admin")
}

// ===========================================================================
// Tests
// ===========================================================================

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"General Discussion":  "general-discussion",
		"  Q&A / Help!  ":     "q-a-help",
		"Announcements":       "announcements",
		"--Weird--Input--":    "weird-input",
		"Русский / English":   "english",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}

func TestService_CreateCategory_DerivesSlug(t *testing.T) {
	t.Parallel()
	svc, _, activity := newTestService()

	created, err := svc.CreateCategory(authCtx(), CreateCategoryInput{Name: "General Discussion"})
	require.NoError(t, err)

	assert.Equal(t, "general-discussion", created.Slug)
	assert.True(t, created.IsActive)

	require.Len(t, activity.activities, 1)
	assert.Equal(t, domain.ActivityCategoryCreated, activity.activities[0].Type)
}

func TestService_CreateCategory_ExplicitSlugWins(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()

	created, err := svc.CreateCategory(authCtx(), CreateCategoryInput{Name: "General", Slug: "misc"})
	require.NoError(t, err)
	assert.Equal(t, "misc", created.Slug)
}

func TestService_CreateCategory_NoActor(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "General"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_CreateCategory_Validation(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()

	_, err := svc.CreateCategory(authCtx(), CreateCategoryInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_DeactivateCategory_SoftDelete(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService()

	categoryID := uuid.New()
	repo.UpdateFunc = func(_ context.Context, id uuid.UUID, params domain.CategoryUpdateParams) (*domain.Category, error) {
		require.NotNil(t, params.IsActive)
		assert.False(t, *params.IsActive)
		return &domain.Category{ID: id, IsActive: *params.IsActive}, nil
	}

	deactivated, err := svc.DeactivateCategory(authCtx(), categoryID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}

func TestService_GetCategory_NilID(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()

	_, err := svc.GetCategory(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
