package get_notification

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InboxService/internal/api/handlers"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/models"
	notificationsSvc "github.com/m04kA/SMC-InboxService/internal/service/notifications"
)

const msgNotificationNotFound = "уведомление не найдено"

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

	notification, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, notificationsSvc.ErrNotificationNotFound):
			handlers.RespondNotFound(w, msgNotificationNotFound)
		case errors.Is(err, notificationsSvc.ErrStorageUnavailable):
			h.logger.Error("Storage unavailable while getting notification %s: %v", id, err)
			handlers.RespondServiceUnavailable(w)
		default:
			h.logger.Error("Failed to get notification %s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromServiceOutput(notification))
}
