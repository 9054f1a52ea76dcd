package mark_all_read

import "context"

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
