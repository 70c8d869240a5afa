package category_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/category"
	"github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// newRepo is a test helper that sets up the DB and returns a ready Repo.
func newRepo(t *testing.T) (*category.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return category.New(pool), pool
}

func newCategory(name string) *domain.Category {
	id := uuid.New()
	return &domain.Category{
		ID:       id,
		Name:     name,
		Slug:     name + "-" + id.String()[:8],
		IsActive: true,
	}
}

// ---------------------------------------------------------------------------
// CRUD
// ---------------------------------------------------------------------------

func TestRepo_CreateAndGet(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	moderatorID := uuid.New()
	c := newCategory("general")
	c.AllowedRoles = []string{"member"}
	c.Moderators = []uuid.UUID{moderatorID}

	created, err := repo.Create(ctx, c)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("Create: timestamps not set")
	}
	if created.TopicCount != 0 || created.ReplyCount != 0 {
		t.Fatalf("Create: counters not zero: %+v", created)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Name != "general" || !got.IsActive {
		t.Fatalf("GetByID: wrong row: %+v", got)
	}
	if len(got.Moderators) != 1 || got.Moderators[0] != moderatorID {
		t.Fatalf("Moderators = %v, want [%s]", got.Moderators, moderatorID)
	}
	if len(got.AllowedRoles) != 1 || got.AllowedRoles[0] != "member" {
		t.Fatalf("AllowedRoles = %v", got.AllowedRoles)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_GetBySlug(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newCategory("by-slug"))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.GetBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("GetBySlug: got %s, want %s", got.ID, created.ID)
	}

	if _, err := repo.GetBySlug(ctx, "no-such-slug-"+uuid.NewString()[:8]); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Create_DuplicateSlug(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	first := newCategory("dup-slug")
	if _, err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	second := newCategory("dup-slug")
	second.Slug = first.Slug

	_, err := repo.Create(ctx, second)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_Update_Partial(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newCategory("update-me"))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	name := "renamed"
	requiresApproval := true
	updated, err := repo.Update(ctx, created.ID, domain.CategoryUpdateParams{
		Name:             &name,
		RequiresApproval: &requiresApproval,
	})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if updated.Name != "renamed" || !updated.RequiresApproval {
		t.Fatalf("Update: wrong row: %+v", updated)
	}

	// untouched fields keep their values
	if updated.Slug != created.Slug || updated.IsActive != created.IsActive {
		t.Fatalf("Update: clobbered untouched fields: %+v", updated)
	}
}

func TestRepo_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	name := "ghost"
	_, err := repo.Update(context.Background(), uuid.New(), domain.CategoryUpdateParams{Name: &name})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

func TestRepo_List_FiltersInactive(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	active, err := repo.Create(ctx, newCategory("list-active"))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	inactive := newCategory("list-inactive")
	inactive.IsActive = false
	if inactive, err = repo.Create(ctx, inactive); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	// the DB is shared between parallel tests, so check membership
	// rather than exact counts
	contains := func(list []*domain.Category, id uuid.UUID) bool {
		for _, c := range list {
			if c.ID == id {
				return true
			}
		}
		return false
	}

	onlyActive, err := repo.List(ctx, false)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if !contains(onlyActive, active.ID) {
		t.Fatal("List(false): active category missing")
	}
	if contains(onlyActive, inactive.ID) {
		t.Fatal("List(false): inactive category present")
	}

	all, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("List(true): unexpected error: %v", err)
	}
	if !contains(all, active.ID) || !contains(all, inactive.ID) {
		t.Fatal("List(true): expected both categories")
	}
}

// ---------------------------------------------------------------------------
// Counters
// ---------------------------------------------------------------------------

func TestRepo_AdjustTopicCount_ClampsAtZero(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newCategory("topic-counter"))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if err := repo.AdjustTopicCount(ctx, created.ID, 2); err != nil {
		t.Fatalf("AdjustTopicCount(+2): unexpected error: %v", err)
	}
	if err := repo.AdjustTopicCount(ctx, created.ID, -5); err != nil {
		t.Fatalf("AdjustTopicCount(-5): unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.TopicCount != 0 {
		t.Fatalf("topic_count = %d, want 0 (clamped)", got.TopicCount)
	}
}

func TestRepo_AdjustReplyCount(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newCategory("reply-counter"))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if err := repo.AdjustReplyCount(ctx, created.ID, 3); err != nil {
		t.Fatalf("AdjustReplyCount(+3): unexpected error: %v", err)
	}
	if err := repo.AdjustReplyCount(ctx, created.ID, -1); err != nil {
		t.Fatalf("AdjustReplyCount(-1): unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.ReplyCount != 2 {
		t.Fatalf("reply_count = %d, want 2", got.ReplyCount)
	}
}

func TestRepo_AdjustTopicCount_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.AdjustTopicCount(context.Background(), uuid.New(), 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_SetLastTopic(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newCategory("last-topic"))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	at := time.Now().UTC().Truncate(time.Microsecond)
	by := uuid.New()
	if err := repo.SetLastTopic(ctx, created.ID, at, by); err != nil {
		t.Fatalf("SetLastTopic: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.LastTopicAt == nil || !got.LastTopicAt.Equal(at) {
		t.Fatalf("last_topic_at = %v, want %v", got.LastTopicAt, at)
	}
	if got.LastTopicBy == nil || *got.LastTopicBy != by {
		t.Fatalf("last_topic_by = %v, want %s", got.LastTopicBy, by)
	}
}
