package notify

import (
	"context"
	"fmt"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

const defaultListLimit = 50

// ListNotifications returns the acting user's notifications, newest first.
// unreadOnly restricts the result to unread ones.
func (d *Dispatcher) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]domain.Notification, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	if limit <= 0 {
		limit = defaultListLimit
	}

	notifications, err := d.notifications.ListForUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead flags one of the acting user's notifications as read.
func (d *Dispatcher) MarkRead(ctx context.Context, input MarkReadInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := d.notifications.MarkRead(ctx, input.NotificationID, userID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	return nil
}

// MarkAllRead flags all of the acting user's unread notifications as read
// and returns how many were affected.
func (d *Dispatcher) MarkAllRead(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrForbidden
	}

	n, err := d.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}

	return n, nil
}

// CountUnread returns the acting user's unread notification count.
func (d *Dispatcher) CountUnread(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrForbidden
	}

	count, err := d.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	return count, nil
}
