package unread_count

import "context"

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	UnreadCount(ctx context.Context, userID string) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
