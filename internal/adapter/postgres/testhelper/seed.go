package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCategory inserts a category row with sensible defaults and returns
// its ID. Moderators may be empty.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string, moderators ...uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()
	mods := moderators
	if mods == nil {
		mods = []uuid.UUID{}
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO categories (id, name, slug, moderators)
		VALUES ($1, $2, $3, $4)`,
		id, name, "seed-"+id.String()[:8], mods,
	)
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}

	return id
}

// SeedTopic inserts a published topic into the given category and returns
// its ID. The category counters are not touched; tests that assert on
// counters should create topics through the service instead.
func SeedTopic(t *testing.T, pool *pgxpool.Pool, categoryID, authorID uuid.UUID, title string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO topics (id, category_id, author_id, author_name, title, content, status)
		VALUES ($1, $2, $3, 'seed author', $4, 'seed content', 'PUBLISHED')`,
		id, categoryID, authorID, title,
	)
	if err != nil {
		t.Fatalf("seed topic: %v", err)
	}

	return id
}

// SeedTopicAt is SeedTopic with explicit created_at/updated_at, for
// pagination tests that need deterministic ordering.
func SeedTopicAt(t *testing.T, pool *pgxpool.Pool, categoryID, authorID uuid.UUID, title string, at time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO topics (id, category_id, author_id, author_name, title, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'seed author', $4, 'seed content', 'PUBLISHED', $5, $5)`,
		id, categoryID, authorID, title, at,
	)
	if err != nil {
		t.Fatalf("seed topic: %v", err)
	}

	return id
}

// SeedReply inserts a published reply and returns its ID. Topic and
// category reply counters are not touched.
func SeedReply(t *testing.T, pool *pgxpool.Pool, topicID, authorID uuid.UUID, content string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO replies (id, topic_id, author_id, author_name, content, status)
		VALUES ($1, $2, $3, 'seed author', $4, 'PUBLISHED')`,
		id, topicID, authorID, content,
	)
	if err != nil {
		t.Fatalf("seed reply: %v", err)
	}

	return id
}

// SeedReplyAt is SeedReply with explicit created_at/updated_at, for
// pagination tests that need deterministic ordering.
func SeedReplyAt(t *testing.T, pool *pgxpool.Pool, topicID, authorID uuid.UUID, content string, at time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO replies (id, topic_id, author_id, author_name, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'seed author', $4, 'PUBLISHED', $5, $5)`,
		id, topicID, authorID, content, at,
	)
	if err != nil {
		t.Fatalf("seed reply: %v", err)
	}

	return id
}
