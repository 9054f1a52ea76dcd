package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-InboxService/pkg/dbmetrics"
)

// TransactionManager выполняет функции в транзакции поверх dbmetrics.DB
// Транзакция передаётся через контекст, репозитории берут её через dbmetrics.GetExecutor
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создаёт новый менеджер транзакций
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{
		db: db,
	}
}

// Do выполняет fn в транзакции: commit при успехе, rollback при ошибке или панике
//
// Пример:
//
//	err := tm.Do(ctx, func(ctx context.Context) error {
//		exec := dbmetrics.GetExecutor(ctx, db)
//		if _, err := exec.ExecContext(ctx, migration.SQL); err != nil {
//			return err
//		}
//		return recordVersion(ctx, exec, migration.Version)
//	})
func (tm *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.DoWithOptions(ctx, nil, fn)
}

// DoWithOptions то же, что Do, с настройкой уровня изоляции
func (tm *TransactionManager) DoWithOptions(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов переиспользует уже открытую транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if fnErr := fn(txCtx); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %w (original error: %v)", rbErr, fnErr)
		}
		return fnErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("failed to commit transaction: %w", commitErr)
	}

	return nil
}

// DoReadOnly выполняет функцию внутри read-only транзакции
func (tm *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.DoWithOptions(ctx, &sql.TxOptions{
		ReadOnly: true,
	}, fn)
}
