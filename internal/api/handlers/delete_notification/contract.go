package delete_notification

import (
	"context"

	"github.com/m04kA/SMC-InboxService/internal/service/notifications/models"
)

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	Delete(ctx context.Context, id, userID string) (*models.NotificationOutput, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
