package models

import (
	responseModels "github.com/m04kA/SMC-InboxService/internal/api/handlers/models"
	serviceModels "github.com/m04kA/SMC-InboxService/internal/service/notifications/models"
)

// ListNotificationsResponse HTTP ответ со страницей уведомлений
type ListNotificationsResponse struct {
	Notifications []*responseModels.NotificationResponse `json:"notifications"`
	NextCursor    string                                 `json:"next_cursor,omitempty"`
}

// FromServiceOutput преобразует страницу сервиса в HTTP ответ
func FromServiceOutput(output *serviceModels.ListOutput) *ListNotificationsResponse {
	items := make([]*responseModels.NotificationResponse, len(output.Items))
	for i, n := range output.Items {
		items[i] = responseModels.FromServiceOutput(n)
	}

	return &ListNotificationsResponse{
		Notifications: items,
		NextCursor:    output.NextCursor,
	}
}
