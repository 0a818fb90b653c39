package domain

import (
	"context"
	"time"
)

// Notification types; the targeted realtime events reuse these names.
const (
	NotificationTypeJobApplication = "jobApplication"
	NotificationTypeStageProgress  = "stageProgress"
)

// EventJobViewIncremented is broadcast to every live connection when a
// job's view counter changes.
const EventJobViewIncremented = "jobViewIncremented"

// Notification is the durable record of an event a user must see.
// Real-time delivery is a latency optimization on top of this; the row
// is the system of record. Only IsRead is ever mutated.
type Notification struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

// NotificationRepository defines data access for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	// ListByUser returns a user's notifications newest-first.
	// unreadOnly restricts the result to is_read = false.
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

// NotificationUsecase is the polling surface for notifications.
type NotificationUsecase interface {
	List(ctx context.Context, userID string) ([]Notification, error)
	ListUnread(ctx context.Context, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

// Presence tracks which users hold a live connection and routes
// best-effort real-time events to them.
type Presence interface {
	// Push delivers an event to the user's live connection, if any.
	// Reports whether delivery was attempted; absent users are dropped silently.
	Push(userID, event string, payload any) bool
	Broadcast(event string, payload any)
}
