package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-InboxService/internal/domain"
)

var (
	// ErrNotificationNotFound возвращается, когда уведомление не найдено
	ErrNotificationNotFound = domain.ErrNotFound

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = fmt.Errorf("%w: repository: failed to build SQL query", domain.ErrStorage)

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: repository: failed to execute SQL query", domain.ErrStorage)

	// ErrScanRow возвращается при ошибке сканирования строки результата
	ErrScanRow = fmt.Errorf("%w: repository: failed to scan row", domain.ErrStorage)

	// ErrTimeout возвращается, если запрос не уложился в таймаут
	ErrTimeout = fmt.Errorf("%w: repository: query timed out", domain.ErrStorage)

	// ErrOwnerMismatch возвращается при попытке сменить владельца уведомления через Save
	ErrOwnerMismatch = fmt.Errorf("%w: repository: user_id cannot be changed", domain.ErrValidation)
)

// execError классифицирует ошибку драйвера
func execError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, op, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		// 22 data exception, 23 integrity constraint violation
		case "22":
			return fmt.Errorf("%w: %s: %v", domain.ErrValidation, op, err)
		case "23":
			if pqErr.Code.Name() != "unique_violation" {
				return fmt.Errorf("%w: %s: %v", domain.ErrValidation, op, err)
			}
		}
	}

	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
