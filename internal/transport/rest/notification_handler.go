package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/internal/service/notify"
)

type notificationService interface {
	ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, input notify.MarkReadInput) error
	MarkAllRead(ctx context.Context) (int, error)
	CountUnread(ctx context.Context) (int, error)
}

// NotificationHandler serves the acting user's notification inbox.
type NotificationHandler struct {
	notifications notificationService
	log           *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(log *slog.Logger, notifications notificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, log: log}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.ListNotifications(r.Context(), queryBool(r, "unread_only"), queryInt(r, "limit"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	out := make([]notificationDTO, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationDTO(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), notify.MarkReadInput{NotificationID: id}); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type markAllReadResponse struct {
	Updated int `json:"updated"`
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.notifications.MarkAllRead(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, markAllReadResponse{Updated: n})
}

type unreadCountResponse struct {
	Count int `json:"count"`
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notifications.CountUnread(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, unreadCountResponse{Count: count})
}
