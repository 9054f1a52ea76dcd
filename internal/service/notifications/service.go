package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InboxService/internal/domain"
	"github.com/m04kA/SMC-InboxService/internal/integrations/userservice"
	"github.com/m04kA/SMC-InboxService/internal/service/notifications/models"
)

// Service сервис для управления уведомлениями
type Service struct {
	notificationRepo  NotificationRepository
	userServiceClient UserServiceClient
	metrics           Metrics
}

// NewService создает новый экземпляр сервиса уведомлений
// userServiceClient и metrics опциональны (nil - проверка получателя и метрики отключены)
func NewService(notificationRepo NotificationRepository, userServiceClient UserServiceClient, metrics Metrics) *Service {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		notificationRepo:  notificationRepo,
		userServiceClient: userServiceClient,
		metrics:           metrics,
	}
}

// Create создает одно уведомление
func (s *Service) Create(ctx context.Context, input *models.CreateNotificationInput) (*models.NotificationOutput, error) {
	createInput := input.ToCreateInput()
	if err := createInput.Validate(); err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrInvalidInput, err)
	}

	if err := s.validateUser(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("Create - %w", err)
	}

	notification, err := s.notificationRepo.Create(ctx, createInput)
	if err != nil {
		return nil, repoError("Create", err)
	}

	s.metrics.NotificationCreated()
	return models.FromDomainNotification(notification), nil
}

// Get получает уведомление пользователя по ID
func (s *Service) Get(ctx context.Context, id, userID string) (*models.NotificationOutput, error) {
	notification, err := s.notificationRepo.FindOne(ctx, id, userID)
	if err != nil {
		return nil, repoError("Get", err)
	}

	return models.FromDomainNotification(notification), nil
}

// List получает страницу уведомлений пользователя
func (s *Service) List(ctx context.Context, userID string, filter models.ListNotificationsFilter) (*models.ListOutput, error) {
	page, err := s.notificationRepo.FindForUser(ctx, userID, filter.ToFindOptions())
	if err != nil {
		return nil, repoError("List", err)
	}

	// Конвертируем доменные модели в выходные модели сервиса
	outputs := make([]*models.NotificationOutput, len(page.Items))
	for i, n := range page.Items {
		outputs[i] = models.FromDomainNotification(n)
	}

	return &models.ListOutput{
		Items:      outputs,
		NextCursor: page.NextCursor,
	}, nil
}

// UnreadCount возвращает количество непрочитанных уведомлений пользователя
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.notificationRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return 0, repoError("UnreadCount", err)
	}

	return count, nil
}

// MarkRead помечает прочитанными уведомления пользователя
func (s *Service) MarkRead(ctx context.Context, userID string, ids []string) (int, error) {
	updated, err := s.notificationRepo.MarkAsRead(ctx, userID, ids)
	if err != nil {
		return 0, repoError("MarkRead", err)
	}

	s.metrics.NotificationsMarkedRead(updated)
	return updated, nil
}

// MarkAllRead помечает прочитанными все уведомления пользователя
func (s *Service) MarkAllRead(ctx context.Context, userID string) (int, error) {
	updated, err := s.notificationRepo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, repoError("MarkAllRead", err)
	}

	s.metrics.NotificationsMarkedRead(updated)
	return updated, nil
}

// Delete удаляет уведомление пользователя и возвращает удалённую запись
func (s *Service) Delete(ctx context.Context, id, userID string) (*models.NotificationOutput, error) {
	notification, err := s.notificationRepo.FindOneAndDelete(ctx, id, userID)
	if err != nil {
		return nil, repoError("Delete", err)
	}

	s.metrics.NotificationDeleted()
	return models.FromDomainNotification(notification), nil
}

// UpdatePayload меняет содержимое уведомления (чтение, изменение, Save)
func (s *Service) UpdatePayload(ctx context.Context, id, userID string, input *models.UpdatePayloadInput) (*models.NotificationOutput, error) {
	notification, err := s.notificationRepo.FindOne(ctx, id, userID)
	if err != nil {
		return nil, repoError("UpdatePayload", err)
	}

	notification.Payload = input.Apply(notification.Payload)
	if err := notification.Payload.Validate(); err != nil {
		return nil, fmt.Errorf("%w: UpdatePayload - %v", ErrInvalidInput, err)
	}

	saved, err := s.notificationRepo.Save(ctx, notification)
	if err != nil {
		return nil, repoError("UpdatePayload", err)
	}

	return models.FromDomainNotification(saved), nil
}

// validateUser проверяет существование пользователя в UserService
func (s *Service) validateUser(ctx context.Context, userID string) error {
	if s.userServiceClient == nil {
		return nil
	}

	_, err := s.userServiceClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: validateUser - userservice error: %v", ErrInternal, err)
	}

	return nil
}

// repoError переводит ошибки репозитория в ошибки сервиса
func repoError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ErrNotificationNotFound
	case errors.Is(err, domain.ErrValidation):
		return fmt.Errorf("%w: %s - %v", ErrInvalidInput, op, err)
	case errors.Is(err, domain.ErrStorage):
		return fmt.Errorf("%w: %s - %v", ErrStorageUnavailable, op, err)
	default:
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

type nopMetrics struct{}

func (nopMetrics) NotificationCreated()        {}
func (nopMetrics) NotificationsMarkedRead(int) {}
func (nopMetrics) NotificationDeleted()        {}
