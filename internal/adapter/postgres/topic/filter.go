package topic

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// sortSpec describes how a domain.TopicSort maps onto SQL.
type sortSpec struct {
	column string
	desc   bool
}

func sortSpecFor(s domain.TopicSort) sortSpec {
	switch s {
	case domain.TopicSortPopular:
		return sortSpec{column: "view_count", desc: true}
	case domain.TopicSortMostReplies:
		return sortSpec{column: "reply_count", desc: true}
	case domain.TopicSortOldest:
		return sortSpec{column: "created_at", desc: false}
	default: // latest
		return sortSpec{column: "updated_at", desc: true}
	}
}

// buildListQuery turns a domain.TopicFilter into a squirrel SELECT with
// AND-combined equality filters and keyset pagination. The query fetches
// pageSize+1 rows; the caller checks for the extra row to compute HasMore.
func buildListQuery(filter domain.TopicFilter) (string, []any, error) {
	spec := sortSpecFor(filter.SortBy)

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	q := sq.Select(
		"t.id", "t.category_id", "t.category_name", "t.category_slug",
		"t.author_id", "t.author_name", "t.author_email",
		"t.title", "t.content", "t.tags",
		"t.status", "t.priority", "t.is_pinned", "t.is_locked",
		"t.view_count", "t.reply_count", "t.last_reply_at", "t.last_reply_by",
		"(SELECT count(*) FROM topic_likes l WHERE l.topic_id = t.id) AS like_count",
		"t.attachments", "t.created_at", "t.updated_at", "t.moderated_at", "t.moderated_by",
	).
		From("topics t").
		PlaceholderFormat(sq.Dollar)

	if filter.CategoryID != nil {
		q = q.Where(sq.Eq{"t.category_id": *filter.CategoryID})
	}
	if filter.AuthorID != nil {
		q = q.Where(sq.Eq{"t.author_id": *filter.AuthorID})
	}
	if filter.Status != nil {
		q = q.Where(sq.Eq{"t.status": string(*filter.Status)})
	}
	if filter.IsPinned != nil {
		q = q.Where(sq.Eq{"t.is_pinned": *filter.IsPinned})
	}

	if filter.Cursor != nil && *filter.Cursor != "" {
		sortVal, lastID, err := decodeCursor(*filter.Cursor, spec)
		if err != nil {
			return "", nil, err
		}
		// Keyset condition over (sort column, id) keeps the page boundary
		// stable under concurrent inserts.
		op := ">"
		if spec.desc {
			op = "<"
		}
		q = q.Where(sq.Expr(
			fmt.Sprintf("(t.%s, t.id) %s (?, ?)", spec.column, op),
			sortVal, lastID,
		))
	}

	dir := "ASC"
	if spec.desc {
		dir = "DESC"
	}
	q = q.
		OrderBy(fmt.Sprintf("t.%s %s, t.id %s", spec.column, dir, dir)).
		Limit(uint64(pageSize + 1))

	return q.ToSql()
}

// encodeCursor builds the opaque continuation token for a page ending at t.
// Format: base64(sort_value + "|" + topic_id).
func encodeCursor(t *domain.Topic, sortBy domain.TopicSort) string {
	spec := sortSpecFor(sortBy)

	var sortVal string
	switch spec.column {
	case "view_count":
		sortVal = strconv.Itoa(t.ViewCount)
	case "reply_count":
		sortVal = strconv.Itoa(t.ReplyCount)
	case "created_at":
		sortVal = t.CreatedAt.UTC().Format(time.RFC3339Nano)
	default:
		sortVal = t.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}

	raw := sortVal + "|" + t.ID.String()
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// decodeCursor parses a continuation token back into its sort value and
// topic id. The sort value type depends on the active sort column.
func decodeCursor(cursor string, spec sortSpec) (any, uuid.UUID, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, uuid.Nil, domain.NewValidationError("cursor", "malformed")
	}

	sortVal, idStr, ok := strings.Cut(string(raw), "|")
	if !ok {
		return nil, uuid.Nil, domain.NewValidationError("cursor", "malformed")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, uuid.Nil, domain.NewValidationError("cursor", "malformed")
	}

	switch spec.column {
	case "view_count", "reply_count":
		n, err := strconv.Atoi(sortVal)
		if err != nil {
			return nil, uuid.Nil, domain.NewValidationError("cursor", "malformed")
		}
		return n, id, nil
	default:
		ts, err := time.Parse(time.RFC3339Nano, sortVal)
		if err != nil {
			return nil, uuid.Nil, domain.NewValidationError("cursor", "malformed")
		}
		return ts, id, nil
	}
}
