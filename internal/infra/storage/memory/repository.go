package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-InboxService/internal/domain"
)

// Repository хранилище уведомлений в памяти процесса
// Каждая операция выполняется под одной блокировкой, поэтому атомарна
type Repository struct {
	mu    sync.RWMutex
	items map[string]*domain.Notification
	now   func() time.Time
	newID func() string
}

// Option настройка репозитория
type Option func(*Repository)

// WithClock задаёт источник времени для CreatedAt
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithIDGenerator задаёт генератор идентификаторов
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) {
		r.newID = newID
	}
}

// NewRepository создает новый экземпляр репозитория в памяти
func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		items: make(map[string]*domain.Notification),
		now:   time.Now,
		newID: domain.NewID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create создает уведомление
func (r *Repository) Create(_ context.Context, input domain.CreateInput) (*domain.Notification, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload, err := input.Payload.Normalize()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	if _, exists := r.items[id]; exists {
		return nil, fmt.Errorf("%w: Create - duplicate id %s", domain.ErrStorage, id)
	}

	n := &domain.Notification{
		ID:        id,
		UserID:    input.UserID,
		Payload:   payload,
		Read:      false,
		CreatedAt: domain.NormalizeTime(r.now()),
	}
	r.items[id] = n

	return n.Clone(), nil
}

// FindByID получает уведомление по ID без проверки владельца
func (r *Repository) FindByID(_ context.Context, id string) (*domain.Notification, error) {
	key, ok := domain.NormalizeID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.items[key]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return n.Clone(), nil
}

// FindOne получает уведомление по ID и владельцу
func (r *Repository) FindOne(_ context.Context, id, userID string) (*domain.Notification, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	key, ok := domain.NormalizeID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.items[key]
	if !exists || !n.BelongsTo(userID) {
		return nil, domain.ErrNotFound
	}
	return n.Clone(), nil
}

// FindForUser возвращает страницу уведомлений пользователя
func (r *Repository) FindForUser(_ context.Context, userID string, opts domain.FindOptions) (*domain.Page, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	q, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	matched := make([]*domain.Notification, 0)
	for _, n := range r.items {
		if !n.BelongsTo(userID) {
			continue
		}
		if q.UnreadOnly && n.Read {
			continue
		}
		if q.After != nil && !q.After.IsAfter(n, q.Sort) {
			continue
		}
		matched = append(matched, n.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if q.Sort == domain.SortOldestFirst {
			return domain.Less(matched[i], matched[j])
		}
		return domain.Less(matched[j], matched[i])
	})

	if q.Offset >= len(matched) {
		return &domain.Page{Items: []*domain.Notification{}}, nil
	}
	matched = matched[q.Offset:]

	page := &domain.Page{Items: matched}
	if len(matched) > q.Limit {
		page.Items = matched[:q.Limit]
		page.NextCursor = domain.CursorAfter(page.Items[q.Limit-1]).Encode()
	}

	return page, nil
}

// GetUnreadCount возвращает количество непрочитанных уведомлений пользователя
func (r *Repository) GetUnreadCount(_ context.Context, userID string) (int, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.items {
		if n.BelongsTo(userID) && n.IsUnread() {
			count++
		}
	}
	return count, nil
}

// MarkAsRead помечает прочитанными уведомления пользователя из списка
func (r *Repository) MarkAsRead(_ context.Context, userID string, ids []string) (int, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := 0
	for _, id := range ids {
		key, ok := domain.NormalizeID(id)
		if !ok {
			continue
		}
		n, exists := r.items[key]
		// Повторный ID уже прочитан после первого прохода, поэтому дубликаты не считаются
		if !exists || !n.BelongsTo(userID) || n.Read {
			continue
		}
		n.Read = true
		updated++
	}
	return updated, nil
}

// MarkAllAsRead помечает прочитанными все уведомления пользователя
func (r *Repository) MarkAllAsRead(_ context.Context, userID string) (int, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := 0
	for _, n := range r.items {
		if n.BelongsTo(userID) && n.IsUnread() {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

// FindOneAndDelete удаляет уведомление пользователя и возвращает его снимок
func (r *Repository) FindOneAndDelete(_ context.Context, id, userID string) (*domain.Notification, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	key, ok := domain.NormalizeID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n, exists := r.items[key]
	if !exists || !n.BelongsTo(userID) {
		return nil, domain.ErrNotFound
	}
	delete(r.items, key)

	return n, nil
}

// Save сохраняет изменения ранее полученного уведомления.
// Удалённое или никогда не созданное уведомление не восстанавливается
func (r *Repository) Save(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: notification is required", domain.ErrValidation)
	}

	key, ok := domain.NormalizeID(n.ID)
	if !ok {
		return nil, fmt.Errorf("%w: malformed notification id %q", domain.ErrValidation, n.ID)
	}
	if err := domain.ValidateUserID(n.UserID); err != nil {
		return nil, err
	}
	if err := n.Payload.Validate(); err != nil {
		return nil, err
	}

	payload, err := n.Payload.Normalize()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.items[key]
	if !exists {
		return nil, domain.ErrNotFound
	}
	if !stored.BelongsTo(n.UserID) {
		return nil, fmt.Errorf("%w: Save - user_id of notification %s cannot be changed", domain.ErrValidation, key)
	}

	stored.Payload = payload
	stored.Read = stored.Read || n.Read
	return stored.Clone(), nil
}

// DeleteReadBefore удаляет прочитанные уведомления старше before
func (r *Repository) DeleteReadBefore(_ context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, n := range r.items {
		if n.Read && n.CreatedAt.Before(before) {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}
