package repository

import (
	"context"

	"github.com/cargoflow/cargoflow/internal/domain/model"
)

// NotificationRepository appends and lists user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) (*model.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]model.Notification, error)
}
