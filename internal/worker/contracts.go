package worker

import (
	"context"
	"time"
)

// NotificationPurger удаление старых прочитанных уведомлений
type NotificationPurger interface {
	// DeleteReadBefore удаляет прочитанные уведомления, созданные раньше before
	DeleteReadBefore(ctx context.Context, before time.Time) (int, error)
}

// Metrics счётчик удалённых уведомлений
type Metrics interface {
	NotificationsPurged(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
