// Package activity implements the Activity repository using PostgreSQL.
// The activity log is append-only; entries are never mutated or deleted.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// Repo provides activity log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createActivitySQL = `
INSERT INTO activities (
    id, type, actor_id, actor_name, topic_id, reply_id, category_id,
    description, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Create appends an activity entry.
func (r *Repo) Create(ctx context.Context, a domain.Activity) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := querier.Exec(ctx, createActivitySQL,
		a.ID, string(a.Type), a.ActorID, a.ActorName,
		a.TopicID, a.ReplyID, a.CategoryID,
		a.Description, createdAt,
	)
	if err != nil {
		return postgres.MapError(err, "activity", a.ID)
	}

	return nil
}

const recentActivitiesSQL = `
SELECT id, type, actor_id, actor_name, topic_id, reply_id, category_id,
       description, created_at
FROM activities
ORDER BY created_at DESC
LIMIT $1`

// Recent returns the most recent entries ordered by created_at DESC.
// Returns an empty slice (not nil) when the log is empty.
func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, recentActivitiesSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}
	defer rows.Close()

	result := []domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("recent activities: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}

	return result, nil
}

func scanActivity(row pgx.Row) (domain.Activity, error) {
	var (
		a     domain.Activity
		atype string
	)

	err := row.Scan(
		&a.ID, &atype, &a.ActorID, &a.ActorName,
		&a.TopicID, &a.ReplyID, &a.CategoryID,
		&a.Description, &a.CreatedAt,
	)
	if err != nil {
		return domain.Activity{}, err
	}

	a.Type = domain.ActivityType(atype)
	return a, nil
}
