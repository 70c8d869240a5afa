// Package category implements the Category repository using PostgreSQL.
// It owns category records and their aggregate counters (topic/reply totals,
// last-activity pointers). Counter updates are single-statement atomic
// deltas; decrements clamp at zero inside the UPDATE.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres"
	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const categoryColumns = `
    id, name, description, icon, color, slug, parent_id,
    is_active, requires_approval, allowed_roles, moderators,
    topic_count, reply_count, last_topic_at, last_topic_by,
    display_order, created_at, updated_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getCategoryByIDSQL = `SELECT` + categoryColumns + `
FROM categories WHERE id = $1`

// GetByID returns a category by primary key.
// Returns domain.ErrNotFound if the category does not exist.
func (r *Repo) GetByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getCategoryByIDSQL, categoryID)
	c, err := scanCategory(row)
	if err != nil {
		return nil, postgres.MapError(err, "category", categoryID)
	}

	return c, nil
}

const getCategoryBySlugSQL = `SELECT` + categoryColumns + `
FROM categories WHERE slug = $1`

// GetBySlug returns a category by its URL slug.
// Returns domain.ErrNotFound if no category has the slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getCategoryBySlugSQL, slug)
	c, err := scanCategory(row)
	if err != nil {
		return nil, postgres.MapError(err, "category", uuid.Nil)
	}

	return c, nil
}

const listCategoriesSQL = `SELECT` + categoryColumns + `
FROM categories
WHERE ($1 OR is_active)
ORDER BY display_order, name`

// List returns categories ordered by display_order then name.
// Inactive categories are included only when includeInactive is true.
// Returns an empty slice (not nil) when there are no categories.
func (r *Repo) List(ctx context.Context, includeInactive bool) ([]*domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listCategoriesSQL, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	result := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createCategorySQL = `
INSERT INTO categories (
    id, name, description, icon, color, slug, parent_id,
    is_active, requires_approval, allowed_roles, moderators,
    display_order, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
RETURNING` + categoryColumns

// Create inserts a new category and returns the persisted domain.Category.
// Returns domain.ErrAlreadyExists if the slug is taken.
func (r *Repo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC()
	row := querier.QueryRow(ctx, createCategorySQL,
		category.ID, category.Name, category.Description, category.Icon,
		category.Color, category.Slug, category.ParentID,
		category.IsActive, category.RequiresApproval,
		textArray(category.AllowedRoles), uuidArray(category.Moderators),
		category.DisplayOrder, now,
	)

	c, err := scanCategory(row)
	if err != nil {
		return nil, postgres.MapError(err, "category", category.ID)
	}

	return c, nil
}

const updateCategorySQL = `
UPDATE categories SET
    name = $2, description = $3, icon = $4, color = $5,
    is_active = $6, requires_approval = $7,
    allowed_roles = $8, moderators = $9, display_order = $10,
    updated_at = now()
WHERE id = $1
RETURNING` + categoryColumns

// Update modifies a category using partial update params and returns the
// updated record. Returns domain.ErrNotFound if the category does not exist.
func (r *Repo) Update(ctx context.Context, categoryID uuid.UUID, params domain.CategoryUpdateParams) (*domain.Category, error) {
	current, err := r.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	name := current.Name
	if params.Name != nil {
		name = *params.Name
	}
	description := current.Description
	if params.Description != nil {
		description = params.Description
	}
	icon := current.Icon
	if params.Icon != nil {
		icon = params.Icon
	}
	color := current.Color
	if params.Color != nil {
		color = params.Color
	}
	isActive := current.IsActive
	if params.IsActive != nil {
		isActive = *params.IsActive
	}
	requiresApproval := current.RequiresApproval
	if params.RequiresApproval != nil {
		requiresApproval = *params.RequiresApproval
	}
	allowedRoles := current.AllowedRoles
	if params.AllowedRoles != nil {
		allowedRoles = params.AllowedRoles
	}
	moderators := current.Moderators
	if params.Moderators != nil {
		moderators = params.Moderators
	}
	displayOrder := current.DisplayOrder
	if params.DisplayOrder != nil {
		displayOrder = *params.DisplayOrder
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	row := querier.QueryRow(ctx, updateCategorySQL,
		categoryID, name, description, icon, color,
		isActive, requiresApproval,
		textArray(allowedRoles), uuidArray(moderators), displayOrder,
	)

	c, err := scanCategory(row)
	if err != nil {
		return nil, postgres.MapError(err, "category", categoryID)
	}

	return c, nil
}

// ---------------------------------------------------------------------------
// Counter operations
// ---------------------------------------------------------------------------

const adjustTopicCountSQL = `
UPDATE categories
SET topic_count = GREATEST(topic_count + $2, 0), updated_at = now()
WHERE id = $1`

const adjustReplyCountSQL = `
UPDATE categories
SET reply_count = GREATEST(reply_count + $2, 0), updated_at = now()
WHERE id = $1`

// AdjustTopicCount applies an atomic delta to topic_count.
// Negative deltas clamp at zero inside the statement; the counter can
// never go negative, even under concurrent deletes.
func (r *Repo) AdjustTopicCount(ctx context.Context, categoryID uuid.UUID, delta int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, adjustTopicCountSQL, categoryID, delta)
	if err != nil {
		return postgres.MapError(err, "category", categoryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", categoryID, domain.ErrNotFound)
	}

	return nil
}

// AdjustReplyCount applies an atomic delta to reply_count with the same
// clamp semantics as AdjustTopicCount.
func (r *Repo) AdjustReplyCount(ctx context.Context, categoryID uuid.UUID, delta int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, adjustReplyCountSQL, categoryID, delta)
	if err != nil {
		return postgres.MapError(err, "category", categoryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", categoryID, domain.ErrNotFound)
	}

	return nil
}

const setLastTopicSQL = `
UPDATE categories
SET last_topic_at = $2, last_topic_by = $3, updated_at = now()
WHERE id = $1`

// SetLastTopic updates the denormalized most-recent-topic pointer.
// Best-effort: a stale pointer is acceptable, so no read is performed.
func (r *Repo) SetLastTopic(ctx context.Context, categoryID uuid.UUID, at time.Time, by uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, setLastTopicSQL, categoryID, at, by); err != nil {
		return postgres.MapError(err, "category", categoryID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		c            domain.Category
		description  pgtype.Text
		icon         pgtype.Text
		color        pgtype.Text
		parentID     *uuid.UUID
		allowedRoles []string
		moderators   []uuid.UUID
		lastTopicAt  pgtype.Timestamptz
		lastTopicBy  *uuid.UUID
	)

	err := row.Scan(
		&c.ID, &c.Name, &description, &icon, &color, &c.Slug, &parentID,
		&c.IsActive, &c.RequiresApproval, &allowedRoles, &moderators,
		&c.TopicCount, &c.ReplyCount, &lastTopicAt, &lastTopicBy,
		&c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		c.Description = &description.String
	}
	if icon.Valid {
		c.Icon = &icon.String
	}
	if color.Valid {
		c.Color = &color.String
	}
	c.ParentID = parentID
	c.AllowedRoles = allowedRoles
	c.Moderators = moderators
	if lastTopicAt.Valid {
		c.LastTopicAt = &lastTopicAt.Time
	}
	c.LastTopicBy = lastTopicBy

	return &c, nil
}

// textArray normalizes a nil slice to an empty one so the column never
// stores NULL.
func textArray(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func uuidArray(s []uuid.UUID) []uuid.UUID {
	if s == nil {
		return []uuid.UUID{}
	}
	return s
}
