package notification

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-InboxService/pkg/psqlbuilder"
)

// Dialect различия SQL между поддерживаемыми СУБД
type Dialect struct {
	name    string
	builder squirrel.StatementBuilderType
	// idParam плейсхолдер для сравнения с колонкой id
	idParam string
	// idIn условие "id входит в список"
	idIn func(ids []string) squirrel.Sqlizer
}

var (
	// Postgres основной диалект (lib/pq)
	Postgres = Dialect{
		name:    "postgres",
		builder: psqlbuilder.Postgres,
		idParam: "?::uuid",
		idIn: func(ids []string) squirrel.Sqlizer {
			return squirrel.Expr("id = ANY(?::uuid[])", pq.Array(ids))
		},
	}

	// SQLite встраиваемый диалект (modernc.org/sqlite)
	SQLite = Dialect{
		name:    "sqlite",
		builder: psqlbuilder.SQLite,
		idParam: "?",
		idIn: func(ids []string) squirrel.Sqlizer {
			return squirrel.Eq{"id": ids}
		},
	}
)

// DialectFor возвращает диалект по имени драйвера database/sql
func DialectFor(driverName string) (Dialect, error) {
	switch driverName {
	case Postgres.name:
		return Postgres, nil
	case SQLite.name:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported sql driver %q", driverName)
	}
}

// Name имя диалекта
func (d Dialect) Name() string {
	return d.name
}

// keysetExpr условие "строго после курсора" для пары (created_at, id)
func (d Dialect) keysetExpr(cmp string) string {
	return fmt.Sprintf("(created_at, id) %s (?, %s)", cmp, d.idParam)
}
