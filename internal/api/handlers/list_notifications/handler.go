package list_notifications

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-InboxService/internal/api/handlers"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/list_notifications/models"
	"github.com/m04kA/SMC-InboxService/internal/domain"
	notificationsSvc "github.com/m04kA/SMC-InboxService/internal/service/notifications"
	serviceModels "github.com/m04kA/SMC-InboxService/internal/service/notifications/models"
)

const msgInvalidQuery = "некорректные параметры выборки"

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

	// Парсим query параметры
	filter, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("Invalid query parameters: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	output, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		switch {
		case errors.Is(err, notificationsSvc.ErrInvalidInput):
			h.logger.Warn("Invalid list options for user %s: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
		case errors.Is(err, notificationsSvc.ErrStorageUnavailable):
			h.logger.Error("Storage unavailable while listing notifications: %v", err)
			handlers.RespondServiceUnavailable(w)
		default:
			h.logger.Error("Failed to list notifications: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("Listed %d notifications for user %s", len(output.Items), userID)

	handlers.RespondJSON(w, http.StatusOK, models.FromServiceOutput(output))
}

// parseQuery парсит query параметры из HTTP запроса
func parseQuery(r *http.Request) (serviceModels.ListNotificationsFilter, error) {
	queryParams := r.URL.Query()
	var filter serviceModels.ListNotificationsFilter

	// Парсим limit
	if limitStr := queryParams.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return filter, fmt.Errorf("invalid limit: %s", limitStr)
		}
		filter.Limit = &limit
	}

	// Парсим offset
	if offsetStr := queryParams.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return filter, fmt.Errorf("invalid offset: %s", offsetStr)
		}
		filter.Offset = offset
	}

	filter.Cursor = queryParams.Get("cursor")

	switch sort := domain.SortOrder(queryParams.Get("sort")); sort {
	case "", domain.SortNewestFirst, domain.SortOldestFirst:
		filter.Sort = sort
	default:
		return filter, fmt.Errorf("invalid sort: %s", sort)
	}

	if unreadStr := queryParams.Get("unread"); unreadStr != "" {
		unread, err := strconv.ParseBool(unreadStr)
		if err != nil {
			return filter, fmt.Errorf("invalid unread: %s", unreadStr)
		}
		filter.UnreadOnly = unread
	}

	return filter, nil
}
