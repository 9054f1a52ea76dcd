package notification

import (
	"github.com/m04kA/SMC-InboxService/internal/domain"
	"github.com/m04kA/SMC-InboxService/pkg/types"
)

const tableName = "notifications"

// columns порядок колонок совпадает с порядком полей в scanNotification
var columns = []string{
	"id",
	"user_id",
	"payload",
	"is_read",
	"created_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanNotification читает одну строку в доменную модель
func scanNotification(row rowScanner) (*domain.Notification, error) {
	var n domain.Notification
	var createdAt types.UTCTime

	if err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Payload,
		&n.Read,
		&createdAt,
	); err != nil {
		return nil, err
	}

	n.CreatedAt = domain.NormalizeTime(createdAt.Time())
	return &n, nil
}
