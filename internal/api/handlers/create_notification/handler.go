package create_notification

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InboxService/internal/api/handlers"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/create_notification/models"
	responseModels "github.com/m04kA/SMC-InboxService/internal/api/handlers/models"
	notificationsSvc "github.com/m04kA/SMC-InboxService/internal/service/notifications"
)

const (
	msgInvalidRequestBody = "неверный формат тела запроса"
	msgInvalidInput       = "некорректные данные уведомления: нужны user_id, type и body"
	msgUserNotFound       = "пользователь не найден в системе"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Парсинг request body
	var req models.CreateNotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	notification, err := h.service.Create(r.Context(), req.ToServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, notificationsSvc.ErrInvalidInput):
			h.logger.Warn("Invalid notification: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, notificationsSvc.ErrUserNotFound):
			handlers.RespondBadRequest(w, msgUserNotFound)
		case errors.Is(err, notificationsSvc.ErrStorageUnavailable):
			h.logger.Error("Storage unavailable while creating notification: %v", err)
			handlers.RespondServiceUnavailable(w)
		default:
			h.logger.Error("Failed to create notification: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("Created notification %s for user %s (type: %s)", notification.ID, notification.UserID, notification.Type)

	handlers.RespondJSON(w, http.StatusCreated, responseModels.FromServiceOutput(notification))
}
