package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// UTCTime кастомный тип для TIMESTAMP полей
// Драйверы отдают время по-разному: PostgreSQL - time.Time,
// SQLite - time.Time или текст, в зависимости от объявленного типа колонки.
// Реализует интерфейсы:
// - sql.Scanner (для чтения из БД)
// - driver.Valuer (для записи в БД)
type UTCTime time.Time

var (
	// ErrInvalidTimestamp возвращается, если строку из БД не удалось разобрать
	ErrInvalidTimestamp = errors.New("invalid timestamp value")
)

// timestampLayouts форматы, в которых время может лежать в TEXT колонке
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Scan implements sql.Scanner interface
func (t *UTCTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = UTCTime{}
		return nil
	case time.Time:
		*t = UTCTime(v.UTC())
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("cannot scan type %T into UTCTime", value)
	}
}

func (t *UTCTime) parse(s string) error {
	// time.Time.String() может дописать показания монотонных часов
	if i := strings.Index(s, " m="); i >= 0 {
		s = s[:i]
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = UTCTime(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// Value implements driver.Valuer interface
func (t UTCTime) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time(), nil
}

// Time возвращает время в UTC
func (t UTCTime) Time() time.Time {
	return time.Time(t).UTC()
}

// IsZero возвращает true, если время не установлено
func (t UTCTime) IsZero() bool {
	return time.Time(t).IsZero()
}
