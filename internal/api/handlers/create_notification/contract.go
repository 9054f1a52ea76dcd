package create_notification

import (
	"context"

	"github.com/m04kA/SMC-InboxService/internal/service/notifications/models"
)

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	Create(ctx context.Context, input *models.CreateNotificationInput) (*models.NotificationOutput, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
