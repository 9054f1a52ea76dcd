package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// runTimeout ограничение на один проход очистки
const runTimeout = 30 * time.Second

// Retention периодически удаляет прочитанные уведомления старше maxAge.
// Непрочитанные уведомления не удаляются никогда
type Retention struct {
	repo      NotificationPurger
	metrics   Metrics
	logger    Logger
	interval  time.Duration
	maxAge    time.Duration
	now       func() time.Time
	scheduler *gocron.Scheduler
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// RetentionOption настройка Retention
type RetentionOption func(*Retention)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) RetentionOption {
	return func(r *Retention) {
		r.now = now
	}
}

// NewRetention создает новый экземпляр очистки; metrics может быть nil
func NewRetention(repo NotificationPurger, metrics Metrics, logger Logger, interval, maxAge time.Duration, opts ...RetentionOption) (*Retention, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("retention interval must be positive, got %s", interval)
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("retention max age must be positive, got %s", maxAge)
	}

	ctx, cancel := context.WithCancel(context.Background())

	r := &Retention{
		repo:      repo,
		metrics:   metrics,
		logger:    logger,
		interval:  interval,
		maxAge:    maxAge,
		now:       time.Now,
		scheduler: gocron.NewScheduler(time.UTC),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Start запускает планировщик, первый проход выполняется сразу
func (r *Retention) Start() error {
	r.logger.Info("Starting retention worker (interval: %s, max age: %s)", r.interval, r.maxAge)

	// SingletonMode: следующий проход не стартует, пока не закончился предыдущий
	_, err := r.scheduler.Every(r.interval).SingletonMode().Do(r.run)
	if err != nil {
		return fmt.Errorf("failed to schedule retention job: %w", err)
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop останавливает планировщик и прерывает текущий проход
func (r *Retention) Stop() {
	r.logger.Info("Stopping retention worker")
	r.cancel()
	r.scheduler.Stop()
	r.logger.Info("Retention worker stopped")
}

// RunOnce выполняет один проход очистки и возвращает число удалённых уведомлений
func (r *Retention) RunOnce(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := r.now().Add(-r.maxAge)

	deleted, err := r.repo.DeleteReadBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete read notifications before %s: %w", before.Format(time.RFC3339), err)
	}

	if r.metrics != nil && deleted > 0 {
		r.metrics.NotificationsPurged(deleted)
	}

	return deleted, nil
}

// run вызывается планировщиком gocron
func (r *Retention) run() {
	ctx, cancel := context.WithTimeout(r.ctx, runTimeout)
	defer cancel()

	deleted, err := r.RunOnce(ctx)
	if err != nil {
		r.logger.Error("Retention run failed: %v", err)
		return
	}

	if deleted > 0 {
		r.logger.Info("Retention removed %d read notifications", deleted)
	}
}
