package notification

import (
	"context"
)

// Dispatcher fans transition events out to the affected parties. Dispatch is
// best-effort and asynchronous: it runs after the transition commits and its
// failures are logged, never surfaced to the caller of the transition.
type Dispatcher interface {
	// Dispatch enqueues a committed transition event for fan-out.
	Dispatch(event TransitionEvent)

	// Read model for delivered notifications.
	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error

	// SSE subscription
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
