// Package topic implements the Topic repository using PostgreSQL.
// It provides topic CRUD, atomic engagement counters, the likes set via
// the topic_likes join table, and filtered keyset-paginated listing.
package topic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// Repo provides topic persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new topic repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const topicColumns = `
    t.id, t.category_id, t.category_name, t.category_slug,
    t.author_id, t.author_name, t.author_email,
    t.title, t.content, t.tags,
    t.status, t.priority, t.is_pinned, t.is_locked,
    t.view_count, t.reply_count, t.last_reply_at, t.last_reply_by,
    (SELECT count(*) FROM topic_likes l WHERE l.topic_id = t.id) AS like_count,
    t.attachments, t.created_at, t.updated_at, t.moderated_at, t.moderated_by`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getTopicByIDSQL = `SELECT` + topicColumns + `
FROM topics t WHERE t.id = $1`

// GetByID returns a topic by primary key.
// Returns domain.ErrNotFound if the topic does not exist.
func (r *Repo) GetByID(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getTopicByIDSQL, topicID)
	t, err := scanTopic(row)
	if err != nil {
		return nil, postgres.MapError(err, "topic", topicID)
	}

	return t, nil
}

// List returns one page of topics matching the filter, plus a HasMore flag
// computed by over-fetching one extra row beyond the page size.
func (r *Repo) List(ctx context.Context, filter domain.TopicFilter) (*domain.TopicPage, error) {
	sql, args, err := buildListQuery(filter)
	if err != nil {
		return nil, err
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := []*domain.Topic{}
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("list topics: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	page := &domain.TopicPage{Topics: topics}
	if len(topics) > pageSize {
		page.Topics = topics[:pageSize]
		page.HasMore = true
		cursor := encodeCursor(page.Topics[pageSize-1], filter.SortBy)
		page.NextCursor = &cursor
	}

	return page, nil
}

const popularPublishedSQL = `SELECT` + topicColumns + `
FROM topics t
WHERE t.status = $1
ORDER BY t.view_count DESC, t.id
LIMIT $2`

// PopularPublished returns the top published topics by view count.
func (r *Repo) PopularPublished(ctx context.Context, limit int) ([]*domain.Topic, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, popularPublishedSQL, string(domain.TopicStatusPublished), limit)
	if err != nil {
		return nil, fmt.Errorf("popular topics: %w", err)
	}
	defer rows.Close()

	topics := []*domain.Topic{}
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("popular topics: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("popular topics: %w", err)
	}

	return topics, nil
}

const topicTotalsSQL = `SELECT count(*), COALESCE(sum(view_count), 0) FROM topics`

// Totals returns the total number of topics and the sum of their view counts.
func (r *Repo) Totals(ctx context.Context) (topics, views int, err error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if err := querier.QueryRow(ctx, topicTotalsSQL).Scan(&topics, &views); err != nil {
		return 0, 0, fmt.Errorf("topic totals: %w", err)
	}

	return topics, views, nil
}

const distinctAuthorsSQL = `
SELECT count(*) FROM (
    SELECT author_id FROM topics
    UNION
    SELECT author_id FROM replies
) authors`

// CountDistinctAuthors returns the number of distinct users who have
// authored a topic or a reply.
func (r *Repo) CountDistinctAuthors(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, distinctAuthorsSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count authors: %w", err)
	}

	return count, nil
}

const topicLikesSQL = `SELECT user_id FROM topic_likes WHERE topic_id = $1 ORDER BY created_at`

// Likes returns the set of users who liked the topic.
// Returns an empty slice (not nil) when nobody has.
func (r *Repo) Likes(ctx context.Context, topicID uuid.UUID) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, topicLikesSQL, topicID)
	if err != nil {
		return nil, fmt.Errorf("topic likes: %w", err)
	}
	defer rows.Close()

	users := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("topic likes: %w", err)
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("topic likes: %w", err)
	}

	return users, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createTopicSQL = `
INSERT INTO topics (
    id, category_id, category_name, category_slug,
    author_id, author_name, author_email,
    title, content, tags, status, priority,
    is_pinned, is_locked, attachments, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)`

// Create inserts a new topic and returns the persisted domain.Topic.
// New topics start with view_count=0, reply_count=0, and an empty likes set.
func (r *Repo) Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	attachments, err := json.Marshal(topic.Attachments)
	if err != nil {
		return nil, fmt.Errorf("topic %s: marshal attachments: %w", topic.ID, err)
	}

	tags := topic.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	_, err = querier.Exec(ctx, createTopicSQL,
		topic.ID, topic.CategoryID, topic.CategoryName, topic.CategorySlug,
		topic.Author.ID, topic.Author.Name, topic.Author.Email,
		topic.Title, topic.Content, tags,
		string(topic.Status), string(topic.Priority),
		topic.IsPinned, topic.IsLocked, attachments, now,
	)
	if err != nil {
		return nil, postgres.MapError(err, "topic", topic.ID)
	}

	return r.GetByID(ctx, topic.ID)
}

const updateTopicSQL = `
UPDATE topics SET
    title = $2, content = $3, tags = $4, priority = $5,
    attachments = $6, updated_at = now()
WHERE id = $1`

// Update modifies topic content fields using partial update params and
// returns the updated record. Returns domain.ErrNotFound if absent.
func (r *Repo) Update(ctx context.Context, topicID uuid.UUID, params domain.TopicUpdateParams) (*domain.Topic, error) {
	current, err := r.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if params.Title != nil {
		title = *params.Title
	}
	content := current.Content
	if params.Content != nil {
		content = *params.Content
	}
	tags := current.Tags
	if params.Tags != nil {
		tags = params.Tags
	}
	if tags == nil {
		tags = []string{}
	}
	priority := current.Priority
	if params.Priority != nil {
		priority = *params.Priority
	}
	attachmentsList := current.Attachments
	if params.Attachments != nil {
		attachmentsList = params.Attachments
	}

	attachments, err := json.Marshal(attachmentsList)
	if err != nil {
		return nil, fmt.Errorf("topic %s: marshal attachments: %w", topicID, err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := querier.Exec(ctx, updateTopicSQL,
		topicID, title, content, tags, string(priority), attachments,
	)
	if err != nil {
		return nil, postgres.MapError(err, "topic", topicID)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}

	return r.GetByID(ctx, topicID)
}

const updateTopicStatusSQL = `
UPDATE topics SET
    status = $2, moderated_at = now(), moderated_by = $3, updated_at = now()
WHERE id = $1`

// UpdateStatus applies a moderator's status decision and records the
// moderation audit fields. Transitions are not guarded.
func (r *Repo) UpdateStatus(ctx context.Context, topicID uuid.UUID, status domain.TopicStatus, moderatorID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateTopicStatusSQL, topicID, string(status), moderatorID)
	if err != nil {
		return postgres.MapError(err, "topic", topicID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}

	return nil
}

const setPinnedSQL = `UPDATE topics SET is_pinned = $2, updated_at = now() WHERE id = $1`
const setLockedSQL = `UPDATE topics SET is_locked = $2, updated_at = now() WHERE id = $1`

// SetPinned toggles the pinned flag, orthogonal to status.
func (r *Repo) SetPinned(ctx context.Context, topicID uuid.UUID, pinned bool) error {
	return r.setFlag(ctx, setPinnedSQL, topicID, pinned)
}

// SetLocked toggles the locked flag, orthogonal to status.
func (r *Repo) SetLocked(ctx context.Context, topicID uuid.UUID, locked bool) error {
	return r.setFlag(ctx, setLockedSQL, topicID, locked)
}

func (r *Repo) setFlag(ctx context.Context, sql string, topicID uuid.UUID, value bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, sql, topicID, value)
	if err != nil {
		return postgres.MapError(err, "topic", topicID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}

	return nil
}

const deleteTopicSQL = `DELETE FROM topics WHERE id = $1`

// Delete removes a topic record. Replies cascade at the schema level, but
// the service layer deletes them explicitly first so counter bookkeeping
// stays in one place.
func (r *Repo) Delete(ctx context.Context, topicID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteTopicSQL, topicID)
	if err != nil {
		return postgres.MapError(err, "topic", topicID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Engagement counters
// ---------------------------------------------------------------------------

const incrementViewSQL = `UPDATE topics SET view_count = view_count + 1 WHERE id = $1`

// IncrementView applies an atomic +1 to view_count. No viewer dedup;
// idempotency is the caller's responsibility.
func (r *Repo) IncrementView(ctx context.Context, topicID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, incrementViewSQL, topicID)
	if err != nil {
		return postgres.MapError(err, "topic", topicID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}

	return nil
}

const applyReplyCreatedSQL = `
UPDATE topics
SET reply_count = reply_count + 1, last_reply_at = $2, last_reply_by = $3, updated_at = now()
WHERE id = $1`

// ApplyReplyCreated atomically increments reply_count and refreshes the
// denormalized last-reply pointer in one statement.
func (r *Repo) ApplyReplyCreated(ctx context.Context, topicID uuid.UUID, at time.Time, by uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, applyReplyCreatedSQL, topicID, at, by)
	if err != nil {
		return postgres.MapError(err, "topic", topicID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}

	return nil
}

const decrementReplyCountSQL = `
UPDATE topics
SET reply_count = GREATEST(reply_count - 1, 0), updated_at = now()
WHERE id = $1`

// DecrementReplyCount applies an atomic -1 to reply_count, clamped at zero.
func (r *Repo) DecrementReplyCount(ctx context.Context, topicID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, decrementReplyCountSQL, topicID); err != nil {
		return postgres.MapError(err, "topic", topicID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Likes set
// ---------------------------------------------------------------------------

const addTopicLikeSQL = `
INSERT INTO topic_likes (topic_id, user_id, created_at)
VALUES ($1, $2, now())
ON CONFLICT DO NOTHING`

// AddLike adds userID to the topic's likes set. The join-table insert is
// the set-union primitive: concurrent togglers never overwrite each other.
// Returns true if the user was not already a member.
func (r *Repo) AddLike(ctx context.Context, topicID, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, addTopicLikeSQL, topicID, userID)
	if err != nil {
		return false, postgres.MapError(err, "topic_like", topicID)
	}

	return tag.RowsAffected() == 1, nil
}

const removeTopicLikeSQL = `DELETE FROM topic_likes WHERE topic_id = $1 AND user_id = $2`

// RemoveLike removes userID from the topic's likes set (set-removal).
// Returns true if the user was a member.
func (r *Repo) RemoveLike(ctx context.Context, topicID, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, removeTopicLikeSQL, topicID, userID)
	if err != nil {
		return false, postgres.MapError(err, "topic_like", topicID)
	}

	return tag.RowsAffected() == 1, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanTopic(row pgx.Row) (*domain.Topic, error) {
	var (
		t           domain.Topic
		authorEmail pgtype.Text
		tags        []string
		status      string
		priority    string
		lastReplyAt pgtype.Timestamptz
		lastReplyBy *uuid.UUID
		attachments []byte
		moderatedAt pgtype.Timestamptz
		moderatedBy *uuid.UUID
	)

	err := row.Scan(
		&t.ID, &t.CategoryID, &t.CategoryName, &t.CategorySlug,
		&t.Author.ID, &t.Author.Name, &authorEmail,
		&t.Title, &t.Content, &tags,
		&status, &priority, &t.IsPinned, &t.IsLocked,
		&t.ViewCount, &t.ReplyCount, &lastReplyAt, &lastReplyBy,
		&t.LikeCount,
		&attachments, &t.CreatedAt, &t.UpdatedAt, &moderatedAt, &moderatedBy,
	)
	if err != nil {
		return nil, err
	}

	if authorEmail.Valid {
		t.Author.Email = &authorEmail.String
	}
	t.Tags = tags
	t.Status = domain.TopicStatus(status)
	t.Priority = domain.TopicPriority(priority)
	if lastReplyAt.Valid {
		t.LastReplyAt = &lastReplyAt.Time
	}
	t.LastReplyBy = lastReplyBy
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &t.Attachments); err != nil {
			return nil, fmt.Errorf("unmarshal attachments: %w", err)
		}
	}
	if moderatedAt.Valid {
		t.ModeratedAt = &moderatedAt.Time
	}
	t.ModeratedBy = moderatedBy

	return &t, nil
}
