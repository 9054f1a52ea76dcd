package migrations

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-InboxService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InboxService/pkg/txmanager"
)

// Migration одна версия схемы
type Migration struct {
	Version int
	Name    string
	SQL     []string
}

// ForDriver возвращает миграции для драйвера database/sql
func ForDriver(driverName string) ([]Migration, error) {
	switch driverName {
	case "postgres":
		return postgres, nil
	case "sqlite":
		return sqlite, nil
	default:
		return nil, fmt.Errorf("no migrations for sql driver %q", driverName)
	}
}

// Run применяет недостающие миграции, каждую в своей транзакции
// Возвращает количество применённых миграций
func Run(ctx context.Context, db *sqlx.DB) (int, error) {
	list, err := ForDriver(db.DriverName())
	if err != nil {
		return 0, err
	}

	if _, err := db.ExecContext(ctx, createVersionsTable); err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	current, err := CurrentVersion(ctx, db)
	if err != nil {
		return 0, err
	}

	wrapped := dbmetrics.Wrap(db.DB, nil, "migrations")
	tm := txmanager.NewTransactionManager(wrapped)
	insertVersion := db.Rebind("INSERT INTO schema_migrations (version, name) VALUES (?, ?)")

	applied := 0
	for _, m := range list {
		if m.Version <= current {
			continue
		}

		err := tm.Do(ctx, func(ctx context.Context) error {
			executor := dbmetrics.GetExecutor(ctx, wrapped)
			for _, stmt := range m.SQL {
				if _, err := executor.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := executor.ExecContext(ctx, insertVersion, m.Version, m.Name)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		applied++
	}

	return applied, nil
}

// CurrentVersion возвращает последнюю применённую версию схемы
func CurrentVersion(ctx context.Context, db *sqlx.DB) (int, error) {
	var version int
	if err := db.GetContext(ctx, &version, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL
)`
