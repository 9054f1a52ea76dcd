package models

import (
	"github.com/m04kA/SMC-InboxService/internal/domain"
	serviceModels "github.com/m04kA/SMC-InboxService/internal/service/notifications/models"
)

// CreateNotificationRequest HTTP запрос на создание уведомления
type CreateNotificationRequest struct {
	UserID   string          `json:"user_id"`
	Type     string          `json:"type"`
	Body     string          `json:"body"`
	Metadata domain.Metadata `json:"metadata,omitempty"`
}

// ToServiceInput преобразует HTTP модель в сервисную модель
func (r *CreateNotificationRequest) ToServiceInput() *serviceModels.CreateNotificationInput {
	return &serviceModels.CreateNotificationInput{
		UserID:   r.UserID,
		Type:     r.Type,
		Body:     r.Body,
		Metadata: r.Metadata,
	}
}
