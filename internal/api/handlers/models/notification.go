package models

import (
	"time"

	"github.com/m04kA/SMC-InboxService/internal/domain"
	serviceModels "github.com/m04kA/SMC-InboxService/internal/service/notifications/models"
)

// NotificationResponse HTTP ответ с данными уведомления
type NotificationResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Type      string          `json:"type"`
	Body      string          `json:"body"`
	Metadata  domain.Metadata `json:"metadata,omitempty"`
	Read      bool            `json:"read"`
	CreatedAt time.Time       `json:"created_at"`
}

// FromServiceOutput преобразует выходную модель сервиса в HTTP ответ
func FromServiceOutput(n *serviceModels.NotificationOutput) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Body:      n.Body,
		Metadata:  n.Metadata,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// CountResponse ответ с количеством уведомлений
type CountResponse struct {
	Count int `json:"count"`
}

// UpdatedResponse ответ с количеством изменённых уведомлений
type UpdatedResponse struct {
	Updated int `json:"updated"`
}
