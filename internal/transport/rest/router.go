package rest

import "net/http"

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health        *HealthHandler
	Categories    *CategoryHandler
	Topics        *TopicHandler
	Replies       *ReplyHandler
	Engagement    *EngagementHandler
	Notifications *NotificationHandler
	Stats         *StatsHandler
}

// NewRouter builds the HTTP route table. Middleware is applied by the
// caller around the returned mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("GET /api/v1/categories", h.Categories.List)
	mux.HandleFunc("POST /api/v1/categories", h.Categories.Create)
	mux.HandleFunc("GET /api/v1/categories/{id}", h.Categories.Get)
	mux.HandleFunc("PATCH /api/v1/categories/{id}", h.Categories.Update)
	mux.HandleFunc("DELETE /api/v1/categories/{id}", h.Categories.Deactivate)
	mux.HandleFunc("GET /api/v1/categories/slug/{slug}", h.Categories.GetBySlug)

	mux.HandleFunc("GET /api/v1/topics", h.Topics.List)
	mux.HandleFunc("POST /api/v1/topics", h.Topics.Create)
	mux.HandleFunc("GET /api/v1/topics/{id}", h.Topics.Get)
	mux.HandleFunc("PATCH /api/v1/topics/{id}", h.Topics.Update)
	mux.HandleFunc("DELETE /api/v1/topics/{id}", h.Topics.Delete)
	mux.HandleFunc("POST /api/v1/topics/{id}/moderate", h.Topics.Moderate)
	mux.HandleFunc("POST /api/v1/topics/{id}/pin", h.Topics.Pin)
	mux.HandleFunc("POST /api/v1/topics/{id}/lock", h.Topics.Lock)
	mux.HandleFunc("POST /api/v1/topics/{id}/like", h.Engagement.ToggleTopicLike)

	mux.HandleFunc("GET /api/v1/topics/{id}/replies", h.Replies.ListByTopic)
	mux.HandleFunc("POST /api/v1/topics/{id}/replies", h.Replies.Create)
	mux.HandleFunc("GET /api/v1/replies/{id}", h.Replies.Get)
	mux.HandleFunc("PATCH /api/v1/replies/{id}", h.Replies.Edit)
	mux.HandleFunc("DELETE /api/v1/replies/{id}", h.Replies.Delete)
	mux.HandleFunc("POST /api/v1/replies/{id}/moderate", h.Replies.Moderate)
	mux.HandleFunc("POST /api/v1/replies/{id}/accept", h.Replies.AcceptAnswer)
	mux.HandleFunc("POST /api/v1/replies/{id}/like", h.Engagement.ToggleReplyLike)

	mux.HandleFunc("GET /api/v1/notifications", h.Notifications.List)
	mux.HandleFunc("POST /api/v1/notifications/{id}/read", h.Notifications.MarkRead)
	mux.HandleFunc("POST /api/v1/notifications/read-all", h.Notifications.MarkAllRead)
	mux.HandleFunc("GET /api/v1/notifications/unread-count", h.Notifications.UnreadCount)

	mux.HandleFunc("GET /api/v1/stats", h.Stats.ForumStats)
	mux.HandleFunc("GET /api/v1/activities", h.Stats.RecentActivities)

	return mux
}
