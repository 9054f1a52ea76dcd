package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллектор метрик сервиса
// Реализует dbmetrics.Recorder и используется HTTP middleware
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries  *prometheus.CounterVec
	dbDuration *prometheus.HistogramVec
	dbPool     *prometheus.GaugeVec

	notificationsCreated prometheus.Counter
	notificationsRead    prometheus.Counter
	notificationsDeleted prometheus.Counter
	notificationsPurged  prometheus.Counter
}

// New регистрирует метрики в реестре Prometheus по умолчанию
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),
		dbDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		dbPool: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		notificationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name:        "notifications_created_total",
			Help:        "Total number of created notifications",
			ConstLabels: constLabels,
		}),
		notificationsRead: factory.NewCounter(prometheus.CounterOpts{
			Name:        "notifications_marked_read_total",
			Help:        "Total number of notifications transitioned to read",
			ConstLabels: constLabels,
		}),
		notificationsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name:        "notifications_deleted_total",
			Help:        "Total number of notifications deleted by users",
			ConstLabels: constLabels,
		}),
		notificationsPurged: factory.NewCounter(prometheus.CounterOpts{
			Name:        "notifications_purged_total",
			Help:        "Total number of read notifications removed by retention",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(service, operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueries.WithLabelValues(service, operation, status).Inc()
	m.dbDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет состояние пула соединений
func (m *Metrics) SetDBPoolStats(service string, stats sql.DBStats) {
	m.dbPool.WithLabelValues(service, "open").Set(float64(stats.OpenConnections))
	m.dbPool.WithLabelValues(service, "in_use").Set(float64(stats.InUse))
	m.dbPool.WithLabelValues(service, "idle").Set(float64(stats.Idle))
	m.dbPool.WithLabelValues(service, "wait_count").Set(float64(stats.WaitCount))
}

// NotificationCreated увеличивает счётчик созданных уведомлений
func (m *Metrics) NotificationCreated() {
	m.notificationsCreated.Inc()
}

// NotificationsMarkedRead увеличивает счётчик прочитанных уведомлений
func (m *Metrics) NotificationsMarkedRead(n int) {
	if n > 0 {
		m.notificationsRead.Add(float64(n))
	}
}

// NotificationDeleted увеличивает счётчик удалённых уведомлений
func (m *Metrics) NotificationDeleted() {
	m.notificationsDeleted.Inc()
}

// NotificationsPurged увеличивает счётчик уведомлений, удалённых по сроку хранения
func (m *Metrics) NotificationsPurged(n int) {
	if n > 0 {
		m.notificationsPurged.Add(float64(n))
	}
}
