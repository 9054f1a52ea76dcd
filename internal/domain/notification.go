package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxUserIDLength максимальная длина идентификатора пользователя
	MaxUserIDLength = 255
	// MaxPayloadTypeLength максимальная длина типа сообщения
	MaxPayloadTypeLength = 64
)

// Metadata представляет дополнительные данные уведомления
type Metadata map[string]interface{}

// Payload содержимое уведомления (тип, текст, метаданные)
// Для репозитория содержимое непрозрачно, проверяется только корректность
type Payload struct {
	Type     string   `json:"type"`
	Body     string   `json:"body"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Value реализует driver.Valuer для записи в БД
// Пишем строку: одинаково подходит для JSONB (PostgreSQL) и TEXT (SQLite)
func (p Payload) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (p *Payload) Scan(value interface{}) error {
	var data []byte

	switch v := value.(type) {
	case nil:
		*p = Payload{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to scan Payload: expected []byte or string, got %T", value)
	}

	var decoded Payload
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("failed to scan Payload: %w", err)
	}

	*p = decoded
	return nil
}

// Validate проверяет обязательные поля содержимого
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Type) == "" {
		return fmt.Errorf("%w: payload type is required", ErrValidation)
	}
	if len(p.Type) > MaxPayloadTypeLength {
		return fmt.Errorf("%w: payload type must be at most %d bytes", ErrValidation, MaxPayloadTypeLength)
	}
	if strings.TrimSpace(p.Body) == "" {
		return fmt.Errorf("%w: payload body is required", ErrValidation)
	}
	if _, err := json.Marshal(p.Metadata); err != nil {
		return fmt.Errorf("%w: payload metadata is not serializable: %v", ErrValidation, err)
	}
	return nil
}

// Normalize возвращает копию содержимого после JSON-кодирования
// Так память ведёт себя так же, как хранилище в БД: никаких общих ссылок
// на вложенные map, числа в метаданных становятся float64
func (p Payload) Normalize() (Payload, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: payload is not serializable: %v", ErrValidation, err)
	}

	var out Payload
	if err := json.Unmarshal(data, &out); err != nil {
		return Payload{}, fmt.Errorf("%w: payload is not serializable: %v", ErrValidation, err)
	}
	return out, nil
}

// Notification уведомление, адресованное одному пользователю
type Notification struct {
	ID        string    `db:"id"`         // UUID, назначается репозиторием
	UserID    string    `db:"user_id"`    // Владелец, не меняется никогда
	Payload   Payload   `db:"payload"`    // Содержимое
	Read      bool      `db:"is_read"`    // Только false -> true
	CreatedAt time.Time `db:"created_at"` // UTC, точность до микросекунд
}

// IsUnread проверяет, не прочитано ли уведомление
func (n *Notification) IsUnread() bool {
	return !n.Read
}

// BelongsTo проверяет владельца уведомления
func (n *Notification) BelongsTo(userID string) bool {
	return n.UserID == userID
}

// Clone возвращает независимую копию уведомления
func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}

	c := *n
	if n.Payload.Metadata != nil {
		// Значения не копируются глубоко: Normalize уже развязал их при записи
		c.Payload.Metadata = make(Metadata, len(n.Payload.Metadata))
		for k, v := range n.Payload.Metadata {
			c.Payload.Metadata[k] = v
		}
	}
	return &c
}

// CreateInput данные для создания уведомления
// ID, Read и CreatedAt назначает репозиторий
type CreateInput struct {
	UserID  string
	Payload Payload
}

// Validate проверяет входные данные для создания
func (in CreateInput) Validate() error {
	if err := ValidateUserID(in.UserID); err != nil {
		return err
	}
	return in.Payload.Validate()
}

// ValidateUserID проверяет идентификатор пользователя
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if len(userID) > MaxUserIDLength {
		return fmt.Errorf("%w: user_id must be at most %d bytes", ErrValidation, MaxUserIDLength)
	}
	return nil
}

// NewID генерирует новый идентификатор уведомления
func NewID() string {
	return uuid.NewString()
}

// NormalizeID приводит идентификатор к каноничному виду (UUID в нижнем регистре)
// Возвращает false, если строка не является UUID
func NormalizeID(id string) (string, bool) {
	if len(id) != 36 {
		return "", false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// NormalizeTime приводит время к виду, в котором оно хранится
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
