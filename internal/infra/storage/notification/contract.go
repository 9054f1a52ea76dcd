package notification

import (
	"time"

	"github.com/m04kA/SMC-InboxService/pkg/dbmetrics"
)

// DBExecutor *sql.DB, *sqlx.DB или обёртка dbmetrics; внутри txmanager.Do запросы идут через транзакцию из контекста
type DBExecutor = dbmetrics.DBExecutor

// Clock источник времени для CreatedAt
type Clock func() time.Time

// IDGenerator генератор идентификаторов новых уведомлений
type IDGenerator func() string
