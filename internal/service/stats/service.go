// Package stats assembles forum-wide aggregate statistics.
package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

const (
	recentActivityLimit = 10
	popularTopicLimit   = 5
)

type topicStats interface {
	Totals(ctx context.Context) (topics, views int, err error)
	CountDistinctAuthors(ctx context.Context) (int, error)
	PopularPublished(ctx context.Context, limit int) ([]*domain.Topic, error)
}

type replyStats interface {
	CountAll(ctx context.Context) (int, error)
}

type activityReader interface {
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)
}

// Service computes forum-wide statistics on demand. Nothing is cached;
// every call reads live counters.
type Service struct {
	topics     topicStats
	replies    replyStats
	activities activityReader
	log        *slog.Logger
}

// NewService creates a new stats service.
func NewService(log *slog.Logger, topics topicStats, replies replyStats, activities activityReader) *Service {
	return &Service{
		topics:     topics,
		replies:    replies,
		activities: activities,
		log:        log.With("service", "stats"),
	}
}

// ForumStats returns current forum totals, the most recent activity
// entries, and the most viewed published topics. ActiveUsers and
// TopContributors are left at their zero values; their computation
// belongs to an analytics pipeline outside this subsystem.
func (s *Service) ForumStats(ctx context.Context) (*domain.ForumStats, error) {
	topics, views, err := s.topics.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("topic totals: %w", err)
	}

	replies, err := s.replies.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count replies: %w", err)
	}

	users, err := s.topics.CountDistinctAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("count authors: %w", err)
	}

	recent, err := s.activities.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}

	popular, err := s.topics.PopularPublished(ctx, popularTopicLimit)
	if err != nil {
		return nil, fmt.Errorf("popular topics: %w", err)
	}

	return &domain.ForumStats{
		TotalTopics:      topics,
		TotalReplies:     replies,
		TotalViews:       views,
		TotalUsers:       users,
		RecentActivities: recent,
		PopularTopics:    popular,
	}, nil
}
