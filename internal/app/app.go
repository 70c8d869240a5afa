// Package app wires configuration, storage, services, and the HTTP server
// into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/community-forum-backend/internal/adapter/postgres"
	activityrepo "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/activity"
	categoryrepo "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/category"
	notificationrepo "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/notification"
	replyrepo "github.com/heartmarshall/community-forum-backend/internal/adapter/postgres/reply"
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

// Run starts the application and blocks until SIGINT/SIGTERM, then shuts
// down gracefully within the configured timeout.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := NewLogger(cfg.Log)
	log.Info("starting", slog.String("version", BuildVersion()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	categories := categoryrepo.New(pool)
	topics := topicrepo.New(pool)
	replies := replyrepo.New(pool)
	notifications := notificationrepo.New(pool)
	activities := activityrepo.New(pool)

	activitySvc := activity.NewService(log, activities)
	notifySvc := notify.NewDispatcher(log, notifications, nil)
	categorySvc := category.NewService(log, categories, activitySvc)
	forumSvc := forum.NewService(log, topics, categories, replies, notifySvc, activitySvc, txManager, cfg.Forum)
	replySvc := reply.NewService(log, replies, topics, categories, notifySvc, activitySvc, txManager, cfg.Forum)
	engagementSvc := engagement.NewService(log, topics, replies, notifySvc)
	statsSvc := stats.NewService(log, topics, replies, activities)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Health:        rest.NewHealthHandler(pool, BuildVersion()),
		Categories:    rest.NewCategoryHandler(log, categorySvc),
		Topics:        rest.NewTopicHandler(log, forumSvc, engagementSvc),
		Replies:       rest.NewReplyHandler(log, replySvc),
		Engagement:    rest.NewEngagementHandler(log, engagementSvc),
		Notifications: rest.NewNotificationHandler(log, notifySvc),
		Stats:         rest.NewStatsHandler(log, statsSvc, activitySvc),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.CORS(cfg.CORS),
		middleware.Identity,
		rateLimiter.Limit(cfg.Server.RateLimitPerMin),
	)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("stopped")
	return nil
}
