// Package reply implements the Reply repository using PostgreSQL.
// It provides reply CRUD, the likes set via the reply_likes join table,
// bulk delete for topic cascades, and chronological keyset pagination.
package reply

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Repo provides reply persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reply repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const replyColumns = `
    r.id, r.topic_id, r.parent_reply_id,
    r.author_id, r.author_name, r.author_email,
    r.content, r.status,
    (SELECT count(*) FROM reply_likes l WHERE l.reply_id = r.id) AS like_count,
    r.is_accepted_answer, r.attachments,
    r.created_at, r.updated_at, r.edited_at, r.moderated_at, r.moderated_by`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getReplyByIDSQL = `SELECT` + replyColumns + `
FROM replies r WHERE r.id = $1`

// GetByID returns a reply by primary key.
// Returns domain.ErrNotFound if the reply does not exist.
func (r *Repo) GetByID(ctx context.Context, replyID uuid.UUID) (*domain.Reply, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getReplyByIDSQL, replyID)
	reply, err := scanReply(row)
	if err != nil {
		return nil, postgres.MapError(err, "reply", replyID)
	}

	return reply, nil
}

const listRepliesSQL = `SELECT` + replyColumns + `
FROM replies r
WHERE r.topic_id = $1 AND (($2::timestamptz IS NULL) OR (r.created_at, r.id) > ($2, $3))
ORDER BY r.created_at, r.id
LIMIT $4`

// ListByTopic returns one page of a topic's replies in chronological order
// (created_at ASC). HasMore is computed by over-fetching one extra row.
func (r *Repo) ListByTopic(ctx context.Context, topicID uuid.UUID, pageSize int, cursor *string) (*domain.ReplyPage, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var (
		afterAt *time.Time
		afterID uuid.UUID
	)
	if cursor != nil && *cursor != "" {
		at, id, err := decodeCursor(*cursor)
		if err != nil {
			return nil, err
		}
		afterAt, afterID = &at, id
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, listRepliesSQL, topicID, afterAt, afterID, pageSize+1)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	replies := []*domain.Reply{}
	for rows.Next() {
		reply, err := scanReply(rows)
		if err != nil {
			return nil, fmt.Errorf("list replies: %w", err)
		}
		replies = append(replies, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}

	page := &domain.ReplyPage{Replies: replies}
	if len(replies) > pageSize {
		page.Replies = replies[:pageSize]
		page.HasMore = true
		last := page.Replies[pageSize-1]
		cursor := encodeCursor(last.CreatedAt, last.ID)
		page.NextCursor = &cursor
	}

	return page, nil
}

const countRepliesByTopicSQL = `SELECT count(*) FROM replies WHERE topic_id = $1`

// CountByTopic returns the number of replies in a topic.
func (r *Repo) CountByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countRepliesByTopicSQL, topicID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count replies: %w", err)
	}

	return count, nil
}

const countAllRepliesSQL = `SELECT count(*) FROM replies`

// CountAll returns the total number of replies.
func (r *Repo) CountAll(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countAllRepliesSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count replies: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createReplySQL = `
INSERT INTO replies (
    id, topic_id, parent_reply_id,
    author_id, author_name, author_email,
    content, status, is_accepted_answer, attachments,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, $9, $10, $10)`

// Create inserts a new reply and returns the persisted domain.Reply.
// New replies start with an empty likes set and is_accepted_answer=false.
func (r *Repo) Create(ctx context.Context, reply *domain.Reply) (*domain.Reply, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	attachments, err := json.Marshal(reply.Attachments)
	if err != nil {
		return nil, fmt.Errorf("reply %s: marshal attachments: %w", reply.ID, err)
	}

	now := time.Now().UTC()
	_, err = querier.Exec(ctx, createReplySQL,
		reply.ID, reply.TopicID, reply.ParentReplyID,
		reply.Author.ID, reply.Author.Name, reply.Author.Email,
		reply.Content, string(reply.Status), attachments, now,
	)
	if err != nil {
		return nil, postgres.MapError(err, "reply", reply.ID)
	}

	return r.GetByID(ctx, reply.ID)
}

const updateReplyContentSQL = `
UPDATE replies
SET content = $2, status = $3, edited_at = now(), updated_at = now()
WHERE id = $1`

// UpdateContent replaces the reply body and marks it edited. Repeated edits
// keep status=EDITED (the transition is idempotent).
func (r *Repo) UpdateContent(ctx context.Context, replyID uuid.UUID, content string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateReplyContentSQL, replyID, content, string(domain.ReplyStatusEdited))
	if err != nil {
		return postgres.MapError(err, "reply", replyID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reply %s: %w", replyID, domain.ErrNotFound)
	}

	return nil
}

const updateReplyStatusSQL = `
UPDATE replies
SET status = $2, moderated_at = now(), moderated_by = $3, updated_at = now()
WHERE id = $1`

// UpdateStatus applies a moderator's status decision and records the
// moderation audit fields. Transitions are not guarded.
func (r *Repo) UpdateStatus(ctx context.Context, replyID uuid.UUID, status domain.ReplyStatus, moderatorID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateReplyStatusSQL, replyID, string(status), moderatorID)
	if err != nil {
		return postgres.MapError(err, "reply", replyID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reply %s: %w", replyID, domain.ErrNotFound)
	}

	return nil
}

const setAcceptedAnswerSQL = `
UPDATE replies SET is_accepted_answer = $2, updated_at = now() WHERE id = $1`

// SetAcceptedAnswer flips the accepted-answer flag. No at-most-one-per-topic
// guard exists at the data layer.
func (r *Repo) SetAcceptedAnswer(ctx context.Context, replyID uuid.UUID, accepted bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setAcceptedAnswerSQL, replyID, accepted)
	if err != nil {
		return postgres.MapError(err, "reply", replyID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reply %s: %w", replyID, domain.ErrNotFound)
	}

	return nil
}

const deleteReplySQL = `DELETE FROM replies WHERE id = $1`

// Delete removes a single reply.
// Returns domain.ErrNotFound if the reply does not exist.
func (r *Repo) Delete(ctx context.Context, replyID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteReplySQL, replyID)
	if err != nil {
		return postgres.MapError(err, "reply", replyID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reply %s: %w", replyID, domain.ErrNotFound)
	}

	return nil
}

const deleteRepliesByTopicSQL = `DELETE FROM replies WHERE topic_id = $1`

// DeleteByTopic bulk-deletes all replies of a topic (cascade path) and
// returns the number removed. It performs no per-reply counter updates;
// counter bookkeeping for the cascade is the caller's decision.
func (r *Repo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteRepliesByTopicSQL, topicID)
	if err != nil {
		return 0, postgres.MapError(err, "reply", topicID)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Likes set
// ---------------------------------------------------------------------------

const addReplyLikeSQL = `
INSERT INTO reply_likes (reply_id, user_id, created_at)
VALUES ($1, $2, now())
ON CONFLICT DO NOTHING`

// AddLike adds userID to the reply's likes set (set-union primitive).
// Returns true if the user was not already a member.
func (r *Repo) AddLike(ctx context.Context, replyID, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, addReplyLikeSQL, replyID, userID)
	if err != nil {
		return false, postgres.MapError(err, "reply_like", replyID)
	}

	return tag.RowsAffected() == 1, nil
}

const removeReplyLikeSQL = `DELETE FROM reply_likes WHERE reply_id = $1 AND user_id = $2`

// RemoveLike removes userID from the reply's likes set (set-removal).
// Returns true if the user was a member.
func (r *Repo) RemoveLike(ctx context.Context, replyID, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, removeReplyLikeSQL, replyID, userID)
	if err != nil {
		return false, postgres.MapError(err, "reply_like", replyID)
	}

	return tag.RowsAffected() == 1, nil
}

// ---------------------------------------------------------------------------
// Cursor helpers
// ---------------------------------------------------------------------------

// encodeCursor builds the continuation token for chronological pagination.
// Format: base64(created_at RFC3339Nano + "|" + reply_id).
func encodeCursor(createdAt time.Time, id uuid.UUID) string {
	raw := createdAt.UTC().Format(time.RFC3339Nano) + "|" + id.String()
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, uuid.UUID, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, domain.NewValidationError("cursor", "malformed")
	}

	tsStr, idStr, ok := strings.Cut(string(raw), "|")
	if !ok {
		return time.Time{}, uuid.Nil, domain.NewValidationError("cursor", "malformed")
	}

	ts, err := time.Parse(time.RFC3339Nano, tsStr)
	if err != nil {
		return time.Time{}, uuid.Nil, domain.NewValidationError("cursor", "malformed")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return time.Time{}, uuid.Nil, domain.NewValidationError("cursor", "malformed")
	}

	return ts, id, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanReply(row pgx.Row) (*domain.Reply, error) {
	var (
		reply       domain.Reply
		authorEmail pgtype.Text
		status      string
		attachments []byte
		editedAt    pgtype.Timestamptz
		moderatedAt pgtype.Timestamptz
		moderatedBy *uuid.UUID
	)

	err := row.Scan(
		&reply.ID, &reply.TopicID, &reply.ParentReplyID,
		&reply.Author.ID, &reply.Author.Name, &authorEmail,
		&reply.Content, &status,
		&reply.LikeCount,
		&reply.IsAcceptedAnswer, &attachments,
		&reply.CreatedAt, &reply.UpdatedAt, &editedAt, &moderatedAt, &moderatedBy,
	)
	if err != nil {
		return nil, err
	}

	if authorEmail.Valid {
		reply.Author.Email = &authorEmail.String
	}
	reply.Status = domain.ReplyStatus(status)
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &reply.Attachments); err != nil {
			return nil, fmt.Errorf("unmarshal attachments: %w", err)
		}
	}
	if editedAt.Valid {
		reply.EditedAt = &editedAt.Time
	}
	if moderatedAt.Valid {
		reply.ModeratedAt = &moderatedAt.Time
	}
	reply.ModeratedBy = moderatedBy

	return &reply, nil
}
