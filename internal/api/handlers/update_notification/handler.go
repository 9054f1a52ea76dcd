package update_notification

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InboxService/internal/api/handlers"
	responseModels "github.com/m04kA/SMC-InboxService/internal/api/handlers/models"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/update_notification/models"
	notificationsSvc "github.com/m04kA/SMC-InboxService/internal/service/notifications"
)

const (
	msgInvalidRequestBody   = "неверный формат тела запроса"
	msgEmptyUpdate          = "не указано ни одного поля для изменения"
	msgInvalidPayload       = "некорректное содержимое уведомления"
	msgNotificationNotFound = "уведомление не найдено"
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
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	id := mux.Vars(r)["id"]

	var req models.UpdateNotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.IsEmpty() {
		handlers.RespondBadRequest(w, msgEmptyUpdate)
		return
	}

	updated, err := h.service.UpdatePayload(r.Context(), id, userID, req.ToServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, notificationsSvc.ErrNotificationNotFound):
			handlers.RespondNotFound(w, msgNotificationNotFound)
		case errors.Is(err, notificationsSvc.ErrInvalidInput):
			h.logger.Warn("Invalid payload update for notification %s: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidPayload)
		case errors.Is(err, notificationsSvc.ErrStorageUnavailable):
			h.logger.Error("Storage unavailable while updating notification %s: %v", id, err)
			handlers.RespondServiceUnavailable(w)
		default:
			h.logger.Error("Failed to update notification %s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("Updated payload of notification %s", updated.ID)

	handlers.RespondJSON(w, http.StatusOK, responseModels.FromServiceOutput(updated))
}
