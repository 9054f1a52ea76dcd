package psqlbuilder

import "github.com/Masterminds/squirrel"

var (
	// Postgres построитель запросов с плейсхолдерами $1, $2, ...
	Postgres = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// SQLite построитель запросов с плейсхолдерами ?
	SQLite = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
)
