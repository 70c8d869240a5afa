package engagement

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

// likeSet emulates the join table's set semantics in memory.
type likeSet struct {
	members map[uuid.UUID]map[uuid.UUID]struct{}
}

func newLikeSet() *likeSet {
	return &likeSet{members: make(map[uuid.UUID]map[uuid.UUID]struct{})}
}

func (s *likeSet) add(entityID, userID uuid.UUID) bool {
	if s.members[entityID] == nil {
		s.members[entityID] = make(map[uuid.UUID]struct{})
	}
	if _, ok := s.members[entityID][userID]; ok {
		return false
	}
	s.members[entityID][userID] = struct{}{}
	return true
}

func (s *likeSet) remove(entityID, userID uuid.UUID) bool {
	if _, ok := s.members[entityID][userID]; !ok {
		return false
	}
	delete(s.members[entityID], userID)
	return true
}

func (s *likeSet) count(entityID uuid.UUID) int {
	return len(s.members[entityID])
}

type mockTopicRepo struct {
	topic *domain.Topic
	likes *likeSet

	IncrementViewFunc func(ctx context.Context, topicID uuid.UUID) error
	viewCount         int
}

func (m *mockTopicRepo) GetByID(_ context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	if m.topic == nil || m.topic.ID != topicID {
		return nil, domain.ErrNotFound
	}
	return m.topic, nil
}

func (m *mockTopicRepo) IncrementView(ctx context.Context, topicID uuid.UUID) error {
	if m.IncrementViewFunc != nil {
		return m.IncrementViewFunc(ctx, topicID)
	}
	m.viewCount++
	return nil
}

func (m *mockTopicRepo) AddLike(_ context.Context, topicID, userID uuid.UUID) (bool, error) {
	return m.likes.add(topicID, userID), nil
}

func (m *mockTopicRepo) RemoveLike(_ context.Context, topicID, userID uuid.UUID) (bool, error) {
	return m.likes.remove(topicID, userID), nil
}

type mockReplyRepo struct {
	reply *domain.Reply
	likes *likeSet
}

func (m *mockReplyRepo) GetByID(_ context.Context, replyID uuid.UUID) (*domain.Reply, error) {
	if m.reply == nil || m.reply.ID != replyID {
		return nil, domain.ErrNotFound
	}
	return m.reply, nil
}

func (m *mockReplyRepo) AddLike(_ context.Context, replyID, userID uuid.UUID) (bool, error) {
	return m.likes.add(replyID, userID), nil
}

func (m *mockReplyRepo) RemoveLike(_ context.Context, replyID, userID uuid.UUID) (bool, error) {
	return m.likes.remove(replyID, userID), nil
}

type mockDispatcher struct {
	notifications []domain.Notification
}

func (m *mockDispatcher) Dispatch(_ context.Context, n domain.Notification) {
	m.notifications = append(m.notifications, n)
}

// ===========================================================================
// Helpers
// ===========================================================================

func newTestService() (*Service, *mockTopicRepo, *mockReplyRepo, *mockDispatcher) {
	topics := &mockTopicRepo{likes: newLikeSet()}
	replies := &mockReplyRepo{likes: newLikeSet()}
	notify := &mockDispatcher{}
	svc := NewService(slog.Default(), topics, replies, notify)
	return svc, topics, replies, notify
}

func authCtx() (context.Context, uuid.UUID) {
	userID := uuid.New()
	return ctxutil.WithUserID(context.Background(), userID), userID
}

// ===========================================================================
// ToggleTopicLike
// ===========================================================================

func TestService_ToggleTopicLike_Toggle(t *testing.T) {
	t.Parallel()
	svc, topics, _, notify := newTestService()
	ctx, _ := authCtx()

	topics.topic = &domain.Topic{ID: uuid.New(), Author: domain.Author{ID: uuid.New()}, Title: "t"}

	liked, err := svc.ToggleTopicLike(ctx, topics.topic.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, topics.likes.count(topics.topic.ID))

	// Second toggle by the same user removes the like.
	liked, err = svc.ToggleTopicLike(ctx, topics.topic.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, topics.likes.count(topics.topic.ID))

	// Only the liked transition notified.
	assert.Len(t, notify.notifications, 1)
	assert.Equal(t, domain.NotificationTopicLiked, notify.notifications[0].Type)
}

func TestService_ToggleTopicLike_DistinctUsers(t *testing.T) {
	t.Parallel()
	svc, topics, _, _ := newTestService()

	topics.topic = &domain.Topic{ID: uuid.New(), Author: domain.Author{ID: uuid.New()}}

	ctx1, _ := authCtx()
	ctx2, _ := authCtx()

	liked, err := svc.ToggleTopicLike(ctx1, topics.topic.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleTopicLike(ctx2, topics.topic.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	assert.Equal(t, 2, topics.likes.count(topics.topic.ID))
}

func TestService_ToggleTopicLike_NoActor(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()

	_, err := svc.ToggleTopicLike(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_ToggleTopicLike_NotFound(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx, _ := authCtx()

	_, err := svc.ToggleTopicLike(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ===========================================================================
// ToggleReplyLike
// ===========================================================================

func TestService_ToggleReplyLike_Toggle(t *testing.T) {
	t.Parallel()
	svc, _, replies, notify := newTestService()
	ctx, _ := authCtx()

	replies.reply = &domain.Reply{ID: uuid.New(), TopicID: uuid.New(), Author: domain.Author{ID: uuid.New()}}

	liked, err := svc.ToggleReplyLike(ctx, replies.reply.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleReplyLike(ctx, replies.reply.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	assert.Len(t, notify.notifications, 1)
	assert.Equal(t, domain.NotificationReplyLiked, notify.notifications[0].Type)
}

// ===========================================================================
// RecordView
// ===========================================================================

func TestService_RecordView_CountsEveryCall(t *testing.T) {
	t.Parallel()
	svc, topics, _, _ := newTestService()

	topicID := uuid.New()
	for range 3 {
		require.NoError(t, svc.RecordView(context.Background(), topicID))
	}
	assert.Equal(t, 3, topics.viewCount)
}

func TestService_RecordView_NilID(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()

	err := svc.RecordView(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
