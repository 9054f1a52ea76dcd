package unread_count

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InboxService/internal/api/handlers"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/models"
	notificationsSvc "github.com/m04kA/SMC-InboxService/internal/service/notifications"
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

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		if errors.Is(err, notificationsSvc.ErrStorageUnavailable) {
			h.logger.Error("Storage unavailable while counting unread: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}

		h.logger.Error("Failed to count unread notifications for user %s: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.CountResponse{Count: count})
}
