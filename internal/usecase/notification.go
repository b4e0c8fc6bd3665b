package usecase

import (
	"context"
	"log/slog"

	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
)

// NotificationUseCase appends best-effort user notifications. Write failures
// are logged and swallowed so they never block a lifecycle transition.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	logger        *slog.Logger
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications repository.NotificationRepository, logger *slog.Logger) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications, logger: logger}
}

// Notify appends one unread notification for the recipient.
func (u *NotificationUseCase) Notify(ctx context.Context, recipientID, message, link string) {
	_, err := u.notifications.Create(ctx, &model.Notification{
		RecipientID: recipientID,
		Message:     message,
		Link:        link,
	})
	if err != nil {
		u.logger.Error("notification write failed",
			slog.String("recipientID", recipientID),
			slog.String("error", err.Error()))
	}
}

// ListByRecipient returns notifications addressed to one user.
func (u *NotificationUseCase) ListByRecipient(ctx context.Context, recipientID string) ([]model.Notification, error) {
	return u.notifications.ListByRecipient(ctx, recipientID)
}
