package usecase

import (
	"context"
	"errors"

	"nextcareer-backend/internal/domain"
	"nextcareer-backend/pkg/apperror"

	"github.com/google/uuid"
)

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
}

// NewNotificationUsecase creates the notification polling usecase
func NewNotificationUsecase(notificationRepo domain.NotificationRepository) domain.NotificationUsecase {
	return &notificationUsecase{notificationRepo: notificationRepo}
}

// List returns all of a user's notifications, newest first
func (uc *notificationUsecase) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return uc.list(ctx, userID, false)
}

// ListUnread returns a user's unread notifications, newest first
func (uc *notificationUsecase) ListUnread(ctx context.Context, userID string) ([]domain.Notification, error) {
	return uc.list(ctx, userID, true)
}

func (uc *notificationUsecase) list(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	if uuid.Validate(userID) != nil {
		return nil, apperror.BadRequest("Invalid user ID")
	}

	notifications, err := uc.notificationRepo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return notifications, nil
}

// MarkRead flips a notification's is_read flag
func (uc *notificationUsecase) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.BadRequest("Invalid notification ID")
	}

	if err := uc.notificationRepo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
