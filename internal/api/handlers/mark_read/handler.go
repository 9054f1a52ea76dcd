package mark_read

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InboxService/internal/api/handlers"
	responseModels "github.com/m04kA/SMC-InboxService/internal/api/handlers/models"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/mark_read/models"
	notificationsSvc "github.com/m04kA/SMC-InboxService/internal/service/notifications"
)

const (
	msgInvalidRequestBody = "неверный формат тела запроса"
	msgTooManyIDs         = "слишком много идентификаторов в одном запросе"
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

// Handle помечает прочитанными перечисленные уведомления.
// Чужие, несуществующие и уже прочитанные id пропускаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req models.MarkReadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.IDs) > models.MaxIDs {
		handlers.RespondBadRequest(w, msgTooManyIDs)
		return
	}

	updated, err := h.service.MarkRead(r.Context(), userID, req.IDs)
	if err != nil {
		if errors.Is(err, notificationsSvc.ErrStorageUnavailable) {
			h.logger.Error("Storage unavailable while marking notifications read: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}

		h.logger.Error("Failed to mark notifications read for user %s: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("Marked %d of %d notifications read for user %s", updated, len(req.IDs), userID)

	handlers.RespondJSON(w, http.StatusOK, responseModels.UpdatedResponse{Updated: updated})
}
