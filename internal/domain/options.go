package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-InboxService/pkg/ptr"
)

const (
	// DefaultLimit размер страницы, если лимит не указан
	DefaultLimit = 20
	// MaxLimit максимальный размер страницы
	MaxLimit = 100
)

// SortOrder порядок выдачи уведомлений
type SortOrder string

const (
	SortNewestFirst SortOrder = "newest" // created_at DESC, id DESC (по умолчанию)
	SortOldestFirst SortOrder = "oldest" // created_at ASC, id ASC
)

// FindOptions параметры выборки уведомлений пользователя
// Offset и Cursor взаимоисключающие
type FindOptions struct {
	Limit      *int      // nil - DefaultLimit; указанный должен быть > 0
	Offset     int       // Смещение (offset-пагинация)
	Cursor     string    // Токен из Page.NextCursor (keyset-пагинация)
	Sort       SortOrder // Пусто - SortNewestFirst
	UnreadOnly bool      // Только непрочитанные
}

// ListQuery нормализованные параметры выборки, с которыми работают бэкенды
type ListQuery struct {
	Limit      int
	Offset     int
	After      *Cursor
	Sort       SortOrder
	UnreadOnly bool
}

// Normalize проверяет параметры и подставляет значения по умолчанию
func (o FindOptions) Normalize() (ListQuery, error) {
	q := ListQuery{
		Limit:      ptr.PtrOr(o.Limit, DefaultLimit),
		Offset:     o.Offset,
		Sort:       o.Sort,
		UnreadOnly: o.UnreadOnly,
	}

	if q.Limit <= 0 {
		return ListQuery{}, fmt.Errorf("%w: limit must be positive, got %d", ErrValidation, q.Limit)
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	if o.Offset < 0 {
		return ListQuery{}, fmt.Errorf("%w: offset must not be negative, got %d", ErrValidation, o.Offset)
	}

	switch o.Sort {
	case "":
		q.Sort = SortNewestFirst
	case SortNewestFirst, SortOldestFirst:
	default:
		return ListQuery{}, fmt.Errorf("%w: unknown sort order %q", ErrValidation, o.Sort)
	}

	if o.Cursor != "" {
		if o.Offset > 0 {
			return ListQuery{}, fmt.Errorf("%w: offset and cursor are mutually exclusive", ErrValidation)
		}
		c, err := DecodeCursor(o.Cursor)
		if err != nil {
			return ListQuery{}, err
		}
		q.After = c
	}

	return q, nil
}

// Page страница уведомлений
type Page struct {
	Items      []*Notification
	NextCursor string // Пусто, если записей больше нет
}

// Cursor позиция в упорядоченной выдаче: последняя запись предыдущей страницы
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// cursorSep разделитель времени и id внутри токена; не встречается ни в RFC3339, ни в UUID
const cursorSep = "|"

// CursorAfter строит курсор, указывающий на уведомление
func CursorAfter(n *Notification) Cursor {
	return Cursor{CreatedAt: n.CreatedAt, ID: n.ID}
}

// Encode кодирует курсор в непрозрачный URL-safe токен
func (c Cursor) Encode() string {
	raw := c.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSep + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor разбирает токен курсора
func DecodeCursor(token string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}

	ts, rawID, ok := strings.Cut(string(raw), cursorSep)
	if !ok {
		return nil, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}

	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed cursor time", ErrValidation)
	}

	id, ok := NormalizeID(rawID)
	if !ok {
		return nil, fmt.Errorf("%w: malformed cursor id", ErrValidation)
	}

	return &Cursor{CreatedAt: NormalizeTime(t), ID: id}, nil
}

// Less сравнивает позиции двух записей в порядке created_at, id
func Less(a, b *Notification) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// IsAfter проверяет, идёт ли запись после курсора в заданном порядке
func (c Cursor) IsAfter(n *Notification, order SortOrder) bool {
	pivot := &Notification{ID: c.ID, CreatedAt: c.CreatedAt}
	if order == SortOldestFirst {
		return Less(pivot, n)
	}
	return Less(n, pivot)
}
