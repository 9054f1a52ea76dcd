package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InboxService/internal/api/handlers/create_notification"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/delete_notification"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/get_notification"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/health"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/list_notifications"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/mark_all_read"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/mark_read"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/unread_count"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/update_notification"
	"github.com/m04kA/SMC-InboxService/internal/api/middleware"
	"github.com/m04kA/SMC-InboxService/internal/service/notifications"
)

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Options зависимости HTTP слоя
type Options struct {
	Service *notifications.Service
	Logger  Logger
	// Pinger проверка хранилища для /health, может быть nil
	Pinger health.Pinger
	// Recorder HTTP метрики, nil - метрики отключены
	Recorder middleware.HTTPRecorder
	// MetricsPath и MetricsHandler публикуют метрики, если заданы оба
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter собирает маршруты сервиса
func NewRouter(opts Options) *mux.Router {
	svc, log := opts.Service, opts.Logger

	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	if opts.Recorder != nil {
		r.Use(middleware.Metrics(opts.Recorder))
	}

	// Публичные endpoints
	r.HandleFunc("/health", health.NewHandler(opts.Pinger).Handle).Methods(http.MethodGet)

	if opts.MetricsPath != "" && opts.MetricsHandler != nil {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	// API v1 endpoints
	api := r.PathPrefix("/api/v1").Subrouter()

	// Создание доступно внутренним сервисам, получатель передаётся в теле
	api.HandleFunc("/notifications", create_notification.NewHandler(svc, log).Handle).Methods(http.MethodPost)

	// Остальные операции выполняются от имени пользователя из X-User-ID
	inbox := api.PathPrefix("/notifications").Subrouter()
	inbox.Use(middleware.RequireUser())

	inbox.HandleFunc("", list_notifications.NewHandler(svc, log).Handle).Methods(http.MethodGet)
	inbox.HandleFunc("/unread-count", unread_count.NewHandler(svc, log).Handle).Methods(http.MethodGet)
	inbox.HandleFunc("/read", mark_read.NewHandler(svc, log).Handle).Methods(http.MethodPost)
	inbox.HandleFunc("/read-all", mark_all_read.NewHandler(svc, log).Handle).Methods(http.MethodPost)
	inbox.HandleFunc("/{id}", get_notification.NewHandler(svc, log).Handle).Methods(http.MethodGet)
	inbox.HandleFunc("/{id}", update_notification.NewHandler(svc, log).Handle).Methods(http.MethodPatch)
	inbox.HandleFunc("/{id}", delete_notification.NewHandler(svc, log).Handle).Methods(http.MethodDelete)

	return r
}
