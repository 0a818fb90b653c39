package postgres

import (
	"context"
	"encoding/json"
	"time"

	"nextcareer-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

// Create inserts a new notification
func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	data, err := json.Marshal(n.Data)
	if err != nil {
		return err
	}

	n.IsRead = false
	n.CreatedAt = time.Now()

	// jsonb wants a text literal, not bytea
	return r.db.QueryRow(ctx, query,
		n.UserID,
		n.Type,
		n.Message,
		string(data),
		n.IsRead,
		n.CreatedAt,
	).Scan(&n.ID)
}

// ListByUser retrieves a user's notifications sorted newest-first
func (r *notificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	query := `
		SELECT id, user_id, type, message, data, is_read, created_at
		FROM notifications
		WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = false`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var data []byte
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.Message, &data, &n.IsRead, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, err
			}
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead flips the is_read flag, the only mutation notifications allow
func (r *notificationRepo) MarkRead(ctx context.Context, id int64) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
