package domain

import (
	"context"
	"time"
)

// NotificationRepository единственный шлюз к сохранённым уведомлениям
// Каждая операция атомарна относительно хранилища; операции "для пользователя"
// видят и меняют только записи с совпадающим UserID
type NotificationRepository interface {
	// Create сохраняет новое уведомление (Read=false, ID и CreatedAt назначаются здесь)
	Create(ctx context.Context, input CreateInput) (*Notification, error)

	// FindByID ищет уведомление без проверки владельца, только для доверенных вызовов
	FindByID(ctx context.Context, id string) (*Notification, error)

	// FindOne ищет уведомление по ID и владельцу; чужое уведомление - ErrNotFound
	FindOne(ctx context.Context, id, userID string) (*Notification, error)

	// FindForUser возвращает одну страницу уведомлений пользователя
	FindForUser(ctx context.Context, userID string, opts FindOptions) (*Page, error)

	// GetUnreadCount возвращает количество непрочитанных уведомлений пользователя
	GetUnreadCount(ctx context.Context, userID string) (int, error)

	// MarkAsRead помечает прочитанными указанные уведомления пользователя
	// Чужие, несуществующие и уже прочитанные ID пропускаются; возвращает число изменённых
	MarkAsRead(ctx context.Context, userID string, ids []string) (int, error)

	// MarkAllAsRead помечает прочитанными все уведомления пользователя
	MarkAllAsRead(ctx context.Context, userID string) (int, error)

	// FindOneAndDelete удаляет уведомление пользователя и возвращает его снимок
	FindOneAndDelete(ctx context.Context, id, userID string) (*Notification, error)

	// Save сохраняет изменения ранее полученного уведомления
	// Нет записи - ErrNotFound; смена владельца - ErrValidation; Read не может вернуться в false
	Save(ctx context.Context, n *Notification) (*Notification, error)

	// DeleteReadBefore удаляет прочитанные уведомления, созданные раньше before
	// Используется внешней политикой хранения, сам репозиторий ничего не удаляет
	DeleteReadBefore(ctx context.Context, before time.Time) (int, error)
}
