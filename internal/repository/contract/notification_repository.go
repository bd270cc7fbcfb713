package contract

import (
	"context"

	"shopchat-be/internal/model"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByUser(ctx context.Context, userId uuid.UUID, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, userId, notificationId uuid.UUID) error
	CountUnread(ctx context.Context, userId uuid.UUID) (int64, error)
}
