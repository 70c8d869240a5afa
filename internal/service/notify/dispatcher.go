// Package notify implements the notification dispatcher.
//
// Dispatch is invoked synchronously from the code path of the triggering
// operation, but it is best-effort: failures are logged and swallowed so a
// successful primary mutation is never reported as failed. There is no
// retry queue; delivery is at-most-once.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

type notificationRepo interface {
	Create(ctx context.Context, n domain.Notification) error
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// Event is the cross-module form of a dispatched notification, handed to
// an optional pub/sub transport.
type Event struct {
	Type        domain.NotificationType
	UserID      uuid.UUID
	TopicID     *uuid.UUID
	ReplyID     *uuid.UUID
	TriggeredBy uuid.UUID
}

// EventPublisher decouples the dispatcher from any concrete event bus.
// Publish must not block on delivery.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

// NopPublisher discards events. Used when no bus is wired.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}

// Dispatcher persists notifications and fans them out to the bus.
type Dispatcher struct {
	notifications notificationRepo
	bus           EventPublisher
	log           *slog.Logger
}

// NewDispatcher creates a notification dispatcher. A nil bus defaults to
// NopPublisher.
func NewDispatcher(log *slog.Logger, notifications notificationRepo, bus EventPublisher) *Dispatcher {
	if bus == nil {
		bus = NopPublisher{}
	}
	return &Dispatcher{
		notifications: notifications,
		bus:           bus,
		log:           log.With("service", "notify"),
	}
}

// Dispatch persists a notification with is_read=false and publishes the
// matching event. Self-notifications (target == actor) are suppressed.
// Failures are logged and swallowed, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, n domain.Notification) {
	if n.UserID == n.TriggeredBy {
		return
	}

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	if err := d.notifications.Create(ctx, n); err != nil {
		d.log.WarnContext(ctx, "notification dispatch failed",
			slog.String("type", n.Type.String()),
			slog.String("user_id", n.UserID.String()),
			slog.Any("error", err),
		)
		return
	}

	d.bus.Publish(ctx, Event{
		Type:        n.Type,
		UserID:      n.UserID,
		TopicID:     n.TopicID,
		ReplyID:     n.ReplyID,
		TriggeredBy: n.TriggeredBy,
	})
}
