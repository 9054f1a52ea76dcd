package models

import (
	"time"

	"github.com/m04kA/SMC-InboxService/internal/domain"
)

// CreateNotificationInput входные данные для создания одного уведомления
type CreateNotificationInput struct {
	UserID   string
	Type     string
	Body     string
	Metadata domain.Metadata
}

// UpdatePayloadInput изменение содержимого уведомления; nil - поле не меняется
type UpdatePayloadInput struct {
	Type     *string
	Body     *string
	Metadata domain.Metadata
}

// ListNotificationsFilter параметры выборки уведомлений пользователя
type ListNotificationsFilter struct {
	Limit      *int
	Offset     int
	Cursor     string
	Sort       domain.SortOrder
	UnreadOnly bool
}

// NotificationOutput выходная модель для одного уведомления
type NotificationOutput struct {
	ID        string
	UserID    string
	Type      string
	Body      string
	Metadata  domain.Metadata
	Read      bool
	CreatedAt time.Time
}

// ListOutput страница уведомлений
type ListOutput struct {
	Items      []*NotificationOutput
	NextCursor string
}

// FromDomainNotification преобразует доменную модель в выходную модель сервиса
func FromDomainNotification(n *domain.Notification) *NotificationOutput {
	return &NotificationOutput{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Payload.Type,
		Body:      n.Payload.Body,
		Metadata:  n.Payload.Metadata,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// ToCreateInput преобразует CreateNotificationInput во входные данные репозитория
func (input *CreateNotificationInput) ToCreateInput() domain.CreateInput {
	return domain.CreateInput{
		UserID: input.UserID,
		Payload: domain.Payload{
			Type:     input.Type,
			Body:     input.Body,
			Metadata: input.Metadata,
		},
	}
}

// ToFindOptions преобразует фильтр в параметры репозитория
func (f ListNotificationsFilter) ToFindOptions() domain.FindOptions {
	return domain.FindOptions{
		Limit:      f.Limit,
		Offset:     f.Offset,
		Cursor:     f.Cursor,
		Sort:       f.Sort,
		UnreadOnly: f.UnreadOnly,
	}
}

// Apply применяет изменения к содержимому
func (input *UpdatePayloadInput) Apply(p domain.Payload) domain.Payload {
	if input.Type != nil {
		p.Type = *input.Type
	}
	if input.Body != nil {
		p.Body = *input.Body
	}
	if input.Metadata != nil {
		p.Metadata = input.Metadata
	}
	return p
}
