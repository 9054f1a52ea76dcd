package mark_read

import "context"

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	MarkRead(ctx context.Context, userID string, ids []string) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
