package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-InboxService/internal/api"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/health"
	"github.com/m04kA/SMC-InboxService/internal/config"
	"github.com/m04kA/SMC-InboxService/internal/domain"
	"github.com/m04kA/SMC-InboxService/internal/infra/storage"
	"github.com/m04kA/SMC-InboxService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-InboxService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-InboxService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-InboxService/internal/integrations/userservice"
	"github.com/m04kA/SMC-InboxService/internal/service/notifications"
	"github.com/m04kA/SMC-InboxService/internal/worker"
	"github.com/m04kA/SMC-InboxService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InboxService/pkg/logger"
	"github.com/m04kA/SMC-InboxService/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-InboxService...")
	log.Info("Configuration loaded from %s", configPath)

	// Создаём контекст с возможностью отмены для управления жизненным циклом горутин
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	store, err := openStorage(ctx, cfg, log, metricsCollector, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Инициализируем интеграцию с UserService
	var userServiceClient notifications.UserServiceClient
	if cfg.UserService.Enabled {
		userServiceClient = userservice.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
		)
		log.Info("UserService client initialized (url=%s)", cfg.UserService.URL)
	}

	// Инициализируем Notifications Service
	var serviceMetrics notifications.Metrics
	if metricsCollector != nil {
		serviceMetrics = metricsCollector
	}
	notificationSvc := notifications.NewService(store.repo, userServiceClient, serviceMetrics)
	log.Info("Notification service initialized")

	// Очистка прочитанных уведомлений
	var retention *worker.Retention
	if cfg.Retention.Enabled {
		var purgeMetrics worker.Metrics
		if metricsCollector != nil {
			purgeMetrics = metricsCollector
		}

		retention, err = worker.NewRetention(
			store.repo,
			purgeMetrics,
			log,
			time.Duration(cfg.Retention.Interval)*time.Second,
			time.Duration(cfg.Retention.MaxAge)*time.Hour,
		)
		if err != nil {
			log.Fatal("Failed to initialize retention worker: %v", err)
		}
		if err := retention.Start(); err != nil {
			log.Fatal("Failed to start retention worker: %v", err)
		}
		log.Info("Retention worker started (interval=%ds, max_age=%dh)", cfg.Retention.Interval, cfg.Retention.MaxAge)
	}

	// Настраиваем роутер
	routerOpts := api.Options{
		Service: notificationSvc,
		Logger:  log,
		Pinger:  store.pinger,
	}
	if cfg.Metrics.Enabled {
		routerOpts.Recorder = metricsCollector
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r := api.NewRouter(routerOpts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Запускаем HTTP сервер
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем очистку ПЕРЕД сервером
	if retention != nil {
		retention.Stop()
	}

	// Останавливаем сбор метрик
	close(stopMetricsCh)

	// Graceful shutdown HTTP сервера
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// storageHandle выбранное хранилище и его ресурсы
type storageHandle struct {
	repo   domain.NotificationRepository
	pinger health.Pinger
	close  func()
}

// openStorage открывает хранилище по storage.driver
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger, collector *metrics.Metrics, stopMetricsCh <-chan struct{}) (*storageHandle, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn("Using in-memory storage: notifications are lost on restart")
		return &storageHandle{repo: memory.NewRepository(), close: func() {}}, nil
	case config.DriverPostgres:
		db, err = storage.OpenPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	case config.DriverSQLite:
		db, err = storage.OpenSQLite(ctx, cfg.SQLite)
		if err != nil {
			return nil, err
		}
		log.Info("Opened SQLite database at %s", cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database: %v", err)
		}
	}

	if cfg.Storage.AutoMigrate {
		applied, err := migrations.Run(ctx, db)
		if err != nil {
			closeDB()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		log.Info("Applied %d migrations", applied)
	}

	dialect, err := notification.DialectFor(db.DriverName())
	if err != nil {
		closeDB()
		return nil, err
	}

	// Инициализируем repository
	var executor notification.DBExecutor = db
	if collector != nil {
		executor = dbmetrics.WrapWithDefault(db.DB, collector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	repo := notification.NewRepository(
		executor,
		dialect,
		notification.WithQueryTimeout(time.Duration(cfg.Storage.QueryTimeout)*time.Millisecond),
	)
	log.Info("Notification repository initialized (dialect=%s)", dialect.Name())

	return &storageHandle{repo: repo, pinger: db, close: closeDB}, nil
}
