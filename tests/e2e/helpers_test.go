//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/community-forum-backend/internal/adapter/postgres"
	activityrepo "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/activity"
	categoryrepo "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/category"
	notificationrepo "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/notification"
	replyrepo "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/reply"
	"github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/testhelper"
	topicrepo "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/topic"
	"github.com/heartmarshall/community-forum-backend/internal/config"
	"github.com/heartmarshall/community-forum-backend/internal/service/activity"
	"github.com/heartmarshall/community-forum-backend/internal/service/category"
	"github.com/heartmarshall/community-forum-backend/internal/service/engagement"
	"github.com/heartmarshall/community-forum-backend/internal/service/forum"
	"github.com/heartmarshall/community-forum-backend/internal/service/notify"
	"github.com/heartmarshall/community-forum-backend/internal/service/reply"
	"github.com/heartmarshall/community-forum-backend/internal/service/stats"
	"github.com/heartmarshall/community-forum-backend/internal/transport/middleware"
	"github.com/heartmarshall/community-forum-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// actor identifies the requesting user via the trusted gateway headers.
type actor struct {
	ID    uuid.UUID
	Name  string
	Roles []string
}

func newActor(name string, roles ...string) actor {
	return actor{ID: uuid.New(), Name: name, Roles: roles}
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	categories := categoryrepo.New(pool)
	topics := topicrepo.New(pool)
	replies := replyrepo.New(pool)
	notifications := notificationrepo.New(pool)
	activities := activityrepo.New(pool)

	forumCfg := config.ForumConfig{
		MaxTitleLength:   200,
		MaxContentLength: 20000,
		MaxTags:          10,
		MaxAttachments:   5,
		DefaultPageSize:  20,
		MaxPageSize:      100,
	}

	activitySvc := activity.NewService(logger, activities)
	notifySvc := notify.NewDispatcher(logger, notifications, nil)
	categorySvc := category.NewService(logger, categories, activitySvc)
	forumSvc := forum.NewService(logger, topics, categories, replies, notifySvc, activitySvc, txm, forumCfg)
	replySvc := reply.NewService(logger, replies, topics, categories, notifySvc, activitySvc, txm, forumCfg)
	engagementSvc := engagement.NewService(logger, topics, replies, notifySvc)
	statsSvc := stats.NewService(logger, topics, replies, activities)

	router := rest.NewRouter(rest.Handlers{
		Health:        rest.NewHealthHandler(pool, "test-version"),
		Categories:    rest.NewCategoryHandler(logger, categorySvc),
		Topics:        rest.NewTopicHandler(logger, forumSvc, engagementSvc),
		Replies:       rest.NewReplyHandler(logger, replySvc),
		Engagement:    rest.NewEngagementHandler(logger, engagementSvc),
		Notifications: rest.NewNotificationHandler(logger, notifySvc),
		Stats:         rest.NewStatsHandler(logger, statsSvc, activitySvc),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Identity,
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// restRequest sends a JSON request as the given actor and returns the
// status code plus the decoded body (nil for empty responses).
func restRequest(t *testing.T, ts *testServer, method, path string, body any, as *actor) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("X-User-Id", as.ID.String())
		req.Header.Set("X-User-Name", as.Name)
		if len(as.Roles) > 0 {
			req.Header.Set("X-User-Roles", strings.Join(as.Roles, ","))
		}
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// restRequestList is restRequest for endpoints that return a JSON array.
func restRequestList(t *testing.T, ts *testServer, method, path string, as *actor) (int, []any) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	if as != nil {
		req.Header.Set("X-User-Id", as.ID.String())
		req.Header.Set("X-User-Name", as.Name)
		if len(as.Roles) > 0 {
			req.Header.Set("X-User-Roles", strings.Join(as.Roles, ","))
		}
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// fieldString extracts a string field from a decoded body.
func fieldString(t *testing.T, body map[string]any, field string) string {
	t.Helper()
	v, ok := body[field].(string)
	require.True(t, ok, "expected string field %q in %v", field, body)
	return v
}

// fieldInt extracts a numeric field from a decoded body.
func fieldInt(t *testing.T, body map[string]any, field string) int {
	t.Helper()
	v, ok := body[field].(float64)
	require.True(t, ok, "expected numeric field %q in %v", field, body)
	return int(v)
}

// createCategory creates a category as the given actor and returns its ID.
func createCategory(t *testing.T, ts *testServer, as actor, req map[string]any) (uuid.UUID, map[string]any) {
	t.Helper()

	status, body := restRequest(t, ts, "POST", "/api/v1/categories", req, &as)
	require.Equal(t, http.StatusCreated, status, "create category: %v", body)

	id, err := uuid.Parse(fieldString(t, body, "id"))
	require.NoError(t, err)
	return id, body
}

// createTopic creates a topic as the given actor and returns its ID.
func createTopic(t *testing.T, ts *testServer, as actor, categoryID uuid.UUID, title string) (uuid.UUID, map[string]any) {
	t.Helper()

	status, body := restRequest(t, ts, "POST", "/api/v1/topics", map[string]any{
		"category_id": categoryID,
		"title":       title,
		"content":     "some content for " + title,
	}, &as)
	require.Equal(t, http.StatusCreated, status, "create topic: %v", body)

	id, err := uuid.Parse(fieldString(t, body, "id"))
	require.NoError(t, err)
	return id, body
}
