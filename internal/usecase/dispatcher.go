package usecase

import (
	"context"

	"nextcareer-backend/internal/domain"
	"nextcareer-backend/pkg/logger"
)

// notificationDispatcher persists a notification and then attempts
// best-effort realtime delivery. The triggering mutation is
// authoritative: failures here are logged and never propagated, and the
// stored row remains the system of record when the recipient is offline.
type notificationDispatcher struct {
	notificationRepo domain.NotificationRepository
	presence         domain.Presence
}

func newNotificationDispatcher(repo domain.NotificationRepository, presence domain.Presence) *notificationDispatcher {
	return &notificationDispatcher{
		notificationRepo: repo,
		presence:         presence,
	}
}

// Dispatch writes the notification, then pushes the event to the
// recipient's live connection if they hold one.
func (d *notificationDispatcher) Dispatch(ctx context.Context, n *domain.Notification, event string, payload any) {
	if err := d.notificationRepo.Create(ctx, n); err != nil {
		logger.Log.Error("Failed to store notification",
			"userId", n.UserID, "type", n.Type, "error", err)
	}

	if !d.presence.Push(n.UserID, event, payload) {
		logger.Log.Debug("Recipient offline, realtime push skipped",
			"userId", n.UserID, "event", event)
	}
}
