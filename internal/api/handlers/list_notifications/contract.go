package list_notifications

import (
	"context"

	"github.com/m04kA/SMC-InboxService/internal/service/notifications/models"
)

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	List(ctx context.Context, userID string, filter models.ListNotificationsFilter) (*models.ListOutput, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
