package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-InboxService/internal/domain"
	"github.com/m04kA/SMC-InboxService/pkg/dbmetrics"
)

// DefaultQueryTimeout таймаут одного запроса, если не задан явно
const DefaultQueryTimeout = 5 * time.Second

// Repository репозиторий для работы с уведомлениями
// Каждая операция - один SQL запрос, поэтому атомарна без явных транзакций
type Repository struct {
	db      DBExecutor
	dialect Dialect
	timeout time.Duration
	now     Clock
	newID   IDGenerator
}

// Option настройка репозитория
type Option func(*Repository)

// WithQueryTimeout задаёт таймаут одного запроса
func WithQueryTimeout(timeout time.Duration) Option {
	return func(r *Repository) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithClock задаёт источник времени для CreatedAt
func WithClock(now Clock) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithIDGenerator задаёт генератор идентификаторов
func WithIDGenerator(newID IDGenerator) Option {
	return func(r *Repository) {
		r.newID = newID
	}
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor, dialect Dialect, opts ...Option) *Repository {
	r := &Repository{
		db:      db,
		dialect: dialect,
		timeout: DefaultQueryTimeout,
		now:     time.Now,
		newID:   domain.NewID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Create создает уведомление
func (r *Repository) Create(ctx context.Context, input domain.CreateInput) (*domain.Notification, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload, err := input.Payload.Normalize()
	if err != nil {
		return nil, err
	}

	n := &domain.Notification{
		ID:        r.newID(),
		UserID:    input.UserID,
		Payload:   payload,
		Read:      false,
		CreatedAt: domain.NormalizeTime(r.now()),
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.builder.Insert(tableName).
		Columns(columns...).
		Values(n.ID, n.UserID, n.Payload, n.Read, n.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, execError("Create - execute insert", err)
	}

	return n, nil
}

// FindByID получает уведомление по ID без проверки владельца
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	key, ok := domain.NormalizeID(id)
	if !ok {
		return nil, ErrNotificationNotFound
	}

	return r.findOne(ctx, "FindByID", squirrel.Eq{"id": key})
}

// FindOne получает уведомление по ID и владельцу
func (r *Repository) FindOne(ctx context.Context, id, userID string) (*domain.Notification, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	key, ok := domain.NormalizeID(id)
	if !ok {
		return nil, ErrNotificationNotFound
	}

	return r.findOne(ctx, "FindOne", squirrel.Eq{"id": key, "user_id": userID})
}

func (r *Repository) findOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Notification, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.builder.Select(columns...).
		From(tableName).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	n, err := scanNotification(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, execError(op+" - scan notification", err)
	}

	return n, nil
}

// FindForUser возвращает страницу уведомлений пользователя
// Запрашивается на одну запись больше лимита, чтобы понять, есть ли следующая страница
func (r *Repository) FindForUser(ctx context.Context, userID string, opts domain.FindOptions) (*domain.Page, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	q, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	direction, cmp := "DESC", "<"
	if q.Sort == domain.SortOldestFirst {
		direction, cmp = "ASC", ">"
	}

	selectBuilder := r.dialect.builder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at "+direction, "id "+direction).
		Limit(uint64(q.Limit + 1))

	if q.UnreadOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_read": false})
	}

	// Keyset-пагинация по паре (created_at, id)
	if q.After != nil {
		selectBuilder = selectBuilder.Where(r.dialect.keysetExpr(cmp), q.After.CreatedAt, q.After.ID)
	}

	if q.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(q.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindForUser - build select query: %v", ErrBuildQuery, err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("FindForUser - execute query", err)
	}
	defer rows.Close()

	items, err := scanNotifications(rows)
	if err != nil {
		return nil, err
	}

	page := &domain.Page{Items: items}
	if len(items) > q.Limit {
		page.Items = items[:q.Limit]
		page.NextCursor = domain.CursorAfter(page.Items[q.Limit-1]).Encode()
	}

	return page, nil
}

// GetUnreadCount возвращает количество непрочитанных уведомлений пользователя
func (r *Repository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return 0, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.builder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: GetUnreadCount - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, execError("GetUnreadCount - scan count", err)
	}

	return count, nil
}

// MarkAsRead помечает прочитанными уведомления пользователя из списка
// Условие is_read = false в самом UPDATE гарантирует, что конкурентные вызовы
// не посчитают одну запись дважды
func (r *Repository) MarkAsRead(ctx context.Context, userID string, ids []string) (int, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return 0, err
	}

	keys := normalizeIDs(ids)
	if len(keys) == 0 {
		return 0, nil
	}

	return r.markRead(ctx, "MarkAsRead", userID, r.dialect.idIn(keys))
}

// MarkAllAsRead помечает прочитанными все уведомления пользователя
func (r *Repository) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return 0, err
	}

	return r.markRead(ctx, "MarkAllAsRead", userID, nil)
}

func (r *Repository) markRead(ctx context.Context, op, userID string, filter squirrel.Sqlizer) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := r.dialect.builder.Update(tableName).
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "is_read": false})
	if filter != nil {
		updateBuilder = updateBuilder.Where(filter)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, execError(op+" - execute update", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, execError(op+" - rows affected", err)
	}

	return int(affected), nil
}

// FindOneAndDelete удаляет уведомление пользователя и возвращает его снимок
// При конкурентных вызовах строку получит ровно один из них
func (r *Repository) FindOneAndDelete(ctx context.Context, id, userID string) (*domain.Notification, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	key, ok := domain.NormalizeID(id)
	if !ok {
		return nil, ErrNotificationNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.builder.Delete(tableName).
		Where(squirrel.Eq{"id": key, "user_id": userID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOneAndDelete - build delete query: %v", ErrBuildQuery, err)
	}

	n, err := scanNotification(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, execError("FindOneAndDelete - scan notification", err)
	}

	return n, nil
}

// Save сохраняет изменения ранее полученного уведомления одним UPDATE.
// Новые записи создаются только через Create, поэтому удалённое уведомление не восстанавливается
func (r *Repository) Save(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
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

	query, args, err := r.dialect.builder.Update(tableName).
		Set("payload", payload).
		Set("is_read", squirrel.Expr("is_read OR ?", n.Read)).
		Where(squirrel.Eq{"id": key, "user_id": n.UserID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build update query: %v", ErrBuildQuery, err)
	}

	saved, err := r.saveRow(ctx, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		// Строки нет совсем или у неё другой владелец
		if _, findErr := r.FindByID(ctx, key); findErr != nil {
			return nil, findErr
		}
		return nil, fmt.Errorf("%w: Save - notification %s", ErrOwnerMismatch, key)
	}
	if err != nil {
		return nil, execError("Save - scan notification", err)
	}

	return saved, nil
}

func (r *Repository) saveRow(ctx context.Context, query string, args []interface{}) (*domain.Notification, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	executor := dbmetrics.GetExecutor(ctx, r.db)

	return scanNotification(executor.QueryRowContext(ctx, query, args...))
}

// DeleteReadBefore удаляет прочитанные уведомления старше before
func (r *Repository) DeleteReadBefore(ctx context.Context, before time.Time) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.builder.Delete(tableName).
		Where(squirrel.Eq{"is_read": true}).
		Where(squirrel.Lt{"created_at": domain.NormalizeTime(before)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteReadBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, execError("DeleteReadBefore - execute delete", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, execError("DeleteReadBefore - rows affected", err)
	}

	return int(affected), nil
}

// scanNotifications сканирует результаты запроса в слайс уведомлений
func scanNotifications(rows *sql.Rows) ([]*domain.Notification, error) {
	notifications := make([]*domain.Notification, 0)

	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanNotifications - scan row: %v", ErrScanRow, err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, execError("scanNotifications - rows error", err)
	}

	return notifications, nil
}

// normalizeIDs отбрасывает некорректные и повторяющиеся идентификаторы
func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	keys := make([]string, 0, len(ids))

	for _, id := range ids {
		key, ok := domain.NormalizeID(id)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	return keys
}
