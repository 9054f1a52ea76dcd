package notifications

import (
	"context"

	"github.com/m04kA/SMC-InboxService/internal/domain"
	"github.com/m04kA/SMC-InboxService/internal/integrations/userservice"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, input domain.CreateInput) (*domain.Notification, error)
	FindOne(ctx context.Context, id, userID string) (*domain.Notification, error)
	FindForUser(ctx context.Context, userID string, opts domain.FindOptions) (*domain.Page, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, ids []string) (int, error)
	MarkAllAsRead(ctx context.Context, userID string) (int, error)
	FindOneAndDelete(ctx context.Context, id, userID string) (*domain.Notification, error)
	Save(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

// UserServiceClient интерфейс клиента UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID string) (*userservice.User, error)
}

// Metrics счётчики доменных событий
type Metrics interface {
	NotificationCreated()
	NotificationsMarkedRead(n int)
	NotificationDeleted()
}
