package models

import (
	"github.com/m04kA/SMC-InboxService/internal/domain"
	serviceModels "github.com/m04kA/SMC-InboxService/internal/service/notifications/models"
)

// UpdateNotificationRequest HTTP запрос на изменение содержимого; отсутствующие поля не меняются
type UpdateNotificationRequest struct {
	Type     *string         `json:"type,omitempty"`
	Body     *string         `json:"body,omitempty"`
	Metadata domain.Metadata `json:"metadata,omitempty"`
}

// IsEmpty true, если запрос ничего не меняет
func (r *UpdateNotificationRequest) IsEmpty() bool {
	return r.Type == nil && r.Body == nil && r.Metadata == nil
}

// ToServiceInput преобразует HTTP модель в сервисную модель
func (r *UpdateNotificationRequest) ToServiceInput() *serviceModels.UpdatePayloadInput {
	return &serviceModels.UpdatePayloadInput{
		Type:     r.Type,
		Body:     r.Body,
		Metadata: r.Metadata,
	}
}
