// Package notification implements the Notification repository using PostgreSQL.
// Records are created by the dispatcher and mutated only via read-state toggles.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const notificationColumns = `
    id, user_id, type, topic_id, reply_id,
    triggered_by, triggered_name, message, is_read, created_at`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createNotificationSQL = `
INSERT INTO notifications (
    id, user_id, type, topic_id, reply_id,
    triggered_by, triggered_name, message, is_read, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, $9)`

// Create persists a notification with is_read=false.
func (r *Repo) Create(ctx context.Context, n domain.Notification) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := querier.Exec(ctx, createNotificationSQL,
		n.ID, n.UserID, string(n.Type), n.TopicID, n.ReplyID,
		n.TriggeredBy, n.TriggeredName, n.Message, createdAt,
	)
	if err != nil {
		return postgres.MapError(err, "notification", n.ID)
	}

	return nil
}

const markReadSQL = `
UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`

// MarkRead flags a notification as read. Scoped to the owning user.
// Returns domain.ErrNotFound if it does not exist or belongs to someone else.
func (r *Repo) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markReadSQL, notificationID, userID)
	if err != nil {
		return postgres.MapError(err, "notification", notificationID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
	}

	return nil
}

const markAllReadSQL = `
UPDATE notifications SET is_read = true WHERE user_id = $1 AND NOT is_read`

// MarkAllRead flags every unread notification of a user as read and
// returns how many were affected.
func (r *Repo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markAllReadSQL, userID)
	if err != nil {
		return 0, postgres.MapError(err, "notification", userID)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const listForUserSQL = `SELECT` + notificationColumns + `
FROM notifications
WHERE user_id = $1 AND (NOT $2 OR NOT is_read)
ORDER BY created_at DESC
LIMIT $3`

// ListForUser returns a user's notifications ordered newest first,
// optionally restricted to unread ones.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listForUserSQL, userID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	result := []domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("list notifications: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return result, nil
}

const countUnreadSQL = `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT is_read`

// CountUnread returns the number of unread notifications for a user.
func (r *Repo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countUnreadSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanNotification(row pgx.Row) (domain.Notification, error) {
	var (
		n     domain.Notification
		ntype string
	)

	err := row.Scan(
		&n.ID, &n.UserID, &ntype, &n.TopicID, &n.ReplyID,
		&n.TriggeredBy, &n.TriggeredName, &n.Message, &n.IsRead, &n.CreatedAt,
	)
	if err != nil {
		return domain.Notification{}, err
	}

	n.Type = domain.NotificationType(ntype)
	return n, nil
}
