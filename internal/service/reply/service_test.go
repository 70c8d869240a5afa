package reply

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/community-forum-backend/internal/config"
	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockReplyRepo struct {
	CreateFunc            func(ctx context.Context, reply *domain.Reply) (*domain.Reply, error)
	GetByIDFunc           func(ctx context.Context, replyID uuid.UUID) (*domain.Reply, error)
	ListByTopicFunc       func(ctx context.Context, topicID uuid.UUID, pageSize int, cursor *string) (*domain.ReplyPage, error)
	UpdateContentFunc     func(ctx context.Context, replyID uuid.UUID, content string) error
	UpdateStatusFunc      func(ctx context.Context, replyID uuid.UUID, status domain.ReplyStatus, moderatorID uuid.UUID) error
	SetAcceptedAnswerFunc func(ctx context.Context, replyID uuid.UUID, accepted bool) error
	DeleteFunc            func(ctx context.Context, replyID uuid.UUID) error
}

func (m *mockReplyRepo) Create(ctx context.Context, reply *domain.Reply) (*domain.Reply, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reply)
	}
	reply.CreatedAt = time.Now()
	reply.UpdatedAt = reply.CreatedAt
	return reply, nil
}

func (m *mockReplyRepo) GetByID(ctx context.Context, replyID uuid.UUID) (*domain.Reply, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, replyID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockReplyRepo) ListByTopic(ctx context.Context, topicID uuid.UUID, pageSize int, cursor *string) (*domain.ReplyPage, error) {
	if m.ListByTopicFunc != nil {
		return m.ListByTopicFunc(ctx, topicID, pageSize, cursor)
	}
	return &domain.ReplyPage{}, nil
}

func (m *mockReplyRepo) UpdateContent(ctx context.Context, replyID uuid.UUID, content string) error {
	if m.UpdateContentFunc != nil {
		return m.UpdateContentFunc(ctx, replyID, content)
	}
	return nil
}

func (m *mockReplyRepo) UpdateStatus(ctx context.Context, replyID uuid.UUID, status domain.ReplyStatus, moderatorID uuid.UUID) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, replyID, status, moderatorID)
	}
	return nil
}

func (m *mockReplyRepo) SetAcceptedAnswer(ctx context.Context, replyID uuid.UUID, accepted bool) error {
	if m.SetAcceptedAnswerFunc != nil {
		return m.SetAcceptedAnswerFunc(ctx, replyID, accepted)
	}
	return nil
}

func (m *mockReplyRepo) Delete(ctx context.Context, replyID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, replyID)
	}
	return nil
}

type mockTopicRepo struct {
	GetByIDFunc             func(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
	ApplyReplyCreatedFunc   func(ctx context.Context, topicID uuid.UUID, at time.Time, by uuid.UUID) error
	DecrementReplyCountFunc func(ctx context.Context, topicID uuid.UUID) error
}

func (m *mockTopicRepo) GetByID(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, topicID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockTopicRepo) ApplyReplyCreated(ctx context.Context, topicID uuid.UUID, at time.Time, by uuid.UUID) error {
	if m.ApplyReplyCreatedFunc != nil {
		return m.ApplyReplyCreatedFunc(ctx, topicID, at, by)
	}
	return nil
}

func (m *mockTopicRepo) DecrementReplyCount(ctx context.Context, topicID uuid.UUID) error {
	if m.DecrementReplyCountFunc != nil {
		return m.DecrementReplyCountFunc(ctx, topicID)
	}
	return nil
}

type mockCategoryRepo struct {
	GetByIDFunc          func(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error)
	AdjustReplyCountFunc func(ctx context.Context, categoryID uuid.UUID, delta int) error
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, categoryID)
	}
	return &domain.Category{ID: categoryID, IsActive: true}, nil
}

func (m *mockCategoryRepo) AdjustReplyCount(ctx context.Context, categoryID uuid.UUID, delta int) error {
	if m.AdjustReplyCountFunc != nil {
		return m.AdjustReplyCountFunc(ctx, categoryID, delta)
	}
	return nil
}

type mockDispatcher struct {
	notifications []domain.Notification
}

func (m *mockDispatcher) Dispatch(_ context.Context, n domain.Notification) {
	m.notifications = append(m.notifications, n)
}

type mockActivityRecorder struct {
	activities []domain.Activity
}

func (m *mockActivityRecorder) Record(_ context.Context, a domain.Activity) {
	m.activities = append(m.activities, a)
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ===========================================================================
// Helpers
// ===========================================================================

type testDeps struct {
	replies    *mockReplyRepo
	topics     *mockTopicRepo
	categories *mockCategoryRepo
	notify     *mockDispatcher
	activity   *mockActivityRecorder
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		replies:    &mockReplyRepo{},
		topics:     &mockTopicRepo{},
		categories: &mockCategoryRepo{},
		notify:     &mockDispatcher{},
		activity:   &mockActivityRecorder{},
	}
	limits := config.ForumConfig{
		MaxTitleLength:   200,
		MaxContentLength: 20000,
		MaxTags:          10,
		MaxAttachments:   5,
		DefaultPageSize:  20,
		MaxPageSize:      100,
	}
	svc := NewService(slog.Default(), deps.replies, deps.topics, deps.categories, deps.notify, deps.activity, &mockTxManager{}, limits)
	return svc, deps
}

func authCtx() (context.Context, uuid.UUID) {
	userID := uuid.New()
	ctx := ctxutil.WithUserID(context.Background(), userID)
	ctx = ctxutil.WithUserName(ctx, "tester")
	return ctx, userID
}

func openTopic(authorID uuid.UUID) *domain.Topic {
	return &domain.Topic{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		Author:     domain.Author{ID: authorID},
		Title:      "A topic",
		Status:     domain.TopicStatusPublished,
	}
}

// ===========================================================================
// CreateReply
// ===========================================================================

func TestService_CreateReply_LockedTopic(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := authCtx()

	topic := openTopic(uuid.New())
	topic.IsLocked = true
	deps.topics.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Topic, error) {
		return topic, nil
	}

	_, err := svc.CreateReply(ctx, CreateReplyInput{TopicID: topic.ID, Content: "hi"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_CreateReply_ParentFromOtherTopic(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := authCtx()

	topic := openTopic(uuid.New())
	deps.topics.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Topic, error) {
		return topic, nil
	}

	parentID := uuid.New()
	deps.replies.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{ID: id, TopicID: uuid.New()}, nil // different topic
	}

	_, err := svc.CreateReply(ctx, CreateReplyInput{
		TopicID:       topic.ID,
		ParentReplyID: &parentID,
		Content:       "hi",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_CreateReply_UpdatesCountersAndNotifies(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, actorID := authCtx()

	topicAuthor := uuid.New()
	topic := openTopic(topicAuthor)
	deps.topics.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Topic, error) {
		return topic, nil
	}

	var applied bool
	deps.topics.ApplyReplyCreatedFunc = func(_ context.Context, id uuid.UUID, _ time.Time, by uuid.UUID) error {
		assert.Equal(t, topic.ID, id)
		assert.Equal(t, actorID, by)
		applied = true
		return nil
	}

	var replyDelta int
	deps.categories.AdjustReplyCountFunc = func(_ context.Context, id uuid.UUID, delta int) error {
		assert.Equal(t, topic.CategoryID, id)
		replyDelta = delta
		return nil
	}

	created, err := svc.CreateReply(ctx, CreateReplyInput{TopicID: topic.ID, Content: "hi"})
	require.NoError(t, err)

	assert.Equal(t, domain.ReplyStatusPublished, created.Status)
	assert.True(t, applied)
	assert.Equal(t, 1, replyDelta)

	require.Len(t, deps.notify.notifications, 1)
	assert.Equal(t, topicAuthor, deps.notify.notifications[0].UserID)
	assert.Equal(t, domain.NotificationNewReply, deps.notify.notifications[0].Type)

	require.Len(t, deps.activity.activities, 1)
	assert.Equal(t, domain.ActivityReplyCreated, deps.activity.activities[0].Type)
}

func TestService_CreateReply_RequiresApproval(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := authCtx()

	topic := openTopic(uuid.New())
	deps.topics.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Topic, error) {
		return topic, nil
	}
	deps.categories.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Category, error) {
		return &domain.Category{ID: id, IsActive: true, RequiresApproval: true}, nil
	}

	created, err := svc.CreateReply(ctx, CreateReplyInput{TopicID: topic.ID, Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReplyStatusPendingApproval, created.Status)
}

// ===========================================================================
// EditReply
// ===========================================================================

func TestService_EditReply_AuthorOnly(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := authCtx()

	deps.replies.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{ID: id, Author: domain.Author{ID: uuid.New()}}, nil
	}

	_, err := svc.EditReply(ctx, EditReplyInput{ReplyID: uuid.New(), Content: "edit"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_EditReply_Success(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, actorID := authCtx()

	topic := openTopic(uuid.New())
	deps.topics.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Topic, error) {
		return topic, nil
	}

	content := "original"
	deps.replies.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{ID: id, TopicID: topic.ID, Author: domain.Author{ID: actorID}, Content: content}, nil
	}
	deps.replies.UpdateContentFunc = func(_ context.Context, _ uuid.UUID, c string) error {
		content = c
		return nil
	}

	updated, err := svc.EditReply(ctx, EditReplyInput{ReplyID: uuid.New(), Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

// ===========================================================================
// SetAcceptedAnswer
// ===========================================================================

func TestService_SetAcceptedAnswer_TopicAuthorOnly(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := authCtx()

	topic := openTopic(uuid.New()) // someone else's topic
	deps.topics.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Topic, error) {
		return topic, nil
	}
	deps.replies.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{ID: id, TopicID: topic.ID}, nil
	}

	_, err := svc.SetAcceptedAnswer(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_SetAcceptedAnswer_Success(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, actorID := authCtx()

	topic := openTopic(actorID)
	deps.topics.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Topic, error) {
		return topic, nil
	}

	accepted := false
	deps.replies.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{ID: id, TopicID: topic.ID, IsAcceptedAnswer: accepted}, nil
	}
	deps.replies.SetAcceptedAnswerFunc = func(_ context.Context, _ uuid.UUID, v bool) error {
		accepted = v
		return nil
	}

	updated, err := svc.SetAcceptedAnswer(ctx, uuid.New(), true)
	require.NoError(t, err)
	assert.True(t, updated.IsAcceptedAnswer)
}

// ===========================================================================
// DeleteReply
// ===========================================================================

func TestService_DeleteReply_ByAuthor(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, actorID := authCtx()

	topic := openTopic(uuid.New())
	deps.topics.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Topic, error) {
		return topic, nil
	}
	deps.replies.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{ID: id, TopicID: topic.ID, Author: domain.Author{ID: actorID}}, nil
	}

	var deleted, decremented bool
	var replyDelta int
	deps.replies.DeleteFunc = func(_ context.Context, _ uuid.UUID) error {
		deleted = true
		return nil
	}
	deps.topics.DecrementReplyCountFunc = func(_ context.Context, _ uuid.UUID) error {
		decremented = true
		return nil
	}
	deps.categories.AdjustReplyCountFunc = func(_ context.Context, _ uuid.UUID, delta int) error {
		replyDelta = delta
		return nil
	}

	require.NoError(t, svc.DeleteReply(ctx, uuid.New()))
	assert.True(t, deleted)
	assert.True(t, decremented)
	assert.Equal(t, -1, replyDelta)
}

func TestService_DeleteReply_ByModerator(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, actorID := authCtx()

	topic := openTopic(uuid.New())
	deps.topics.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Topic, error) {
		return topic, nil
	}
	deps.replies.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{ID: id, TopicID: topic.ID, Author: domain.Author{ID: uuid.New()}}, nil
	}
	deps.categories.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Category, error) {
		return &domain.Category{ID: id, IsActive: true, Moderators: []uuid.UUID{actorID}}, nil
	}

	require.NoError(t, svc.DeleteReply(ctx, uuid.New()))
}

func TestService_DeleteReply_StrangerForbidden(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := authCtx()

	topic := openTopic(uuid.New())
	deps.topics.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Topic, error) {
		return topic, nil
	}
	deps.replies.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{ID: id, TopicID: topic.ID, Author: domain.Author{ID: uuid.New()}}, nil
	}

	err := svc.DeleteReply(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ===========================================================================
// ModerateReply
// ===========================================================================

func TestService_ModerateReply_NotifiesAuthor(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, actorID := authCtx()

	replyAuthor := uuid.New()
	topic := openTopic(uuid.New())
	deps.topics.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Topic, error) {
		return topic, nil
	}
	deps.categories.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Category, error) {
		return &domain.Category{ID: id, IsActive: true, Moderators: []uuid.UUID{actorID}}, nil
	}

	status := domain.ReplyStatusPendingApproval
	deps.replies.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{ID: id, TopicID: topic.ID, Author: domain.Author{ID: replyAuthor}, Status: status}, nil
	}
	deps.replies.UpdateStatusFunc = func(_ context.Context, _ uuid.UUID, s domain.ReplyStatus, _ uuid.UUID) error {
		status = s
		return nil
	}

	moderated, err := svc.ModerateReply(ctx, ModerateReplyInput{
		ReplyID: uuid.New(),
		Status:  domain.ReplyStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReplyStatusApproved, moderated.Status)

	require.Len(t, deps.notify.notifications, 1)
	assert.Equal(t, replyAuthor, deps.notify.notifications[0].UserID)
	assert.Equal(t, domain.NotificationReplyApproved, deps.notify.notifications[0].Type)
}
