package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reservation outcomes
const (
	OutcomeSucceeded     = "succeeded"
	OutcomePaymentFailed = "payment_failed"
	OutcomePartialCommit = "partial_commit"
	OutcomeRefunded      = "refunded"
	OutcomeError         = "error"
)

// Metrics набор метрик сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RemoteCallDuration *prometheus.HistogramVec

	ReservationOutcomes *prometheus.CounterVec
	ClassifiedBookings  *prometheus.CounterVec
	DraftsActive        *prometheus.GaugeVec

	DBQueryDuration   *prometheus.HistogramVec
	DBPoolConnections *prometheus.GaugeVec
}

// New регистрирует метрики в стандартном реестре (его отдает promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),
		RemoteCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "remote_call_duration_seconds",
				Help:    "Latency of calls to remote platform services",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "remote", "operation", "status"},
		),
		ReservationOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservation_submit_total",
				Help: "Reservation submissions by outcome",
			},
			[]string{"service", "outcome"},
		),
		ClassifiedBookings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "classified_bookings_total",
				Help: "Bookings placed into each bucket by classification passes",
			},
			[]string{"service", "bucket"},
		),
		DraftsActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "reservation_drafts_active",
				Help: "Number of in-memory reservation drafts",
			},
			[]string{"service"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "operation", "status"},
		),
		DBPoolConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_pool_connections",
				Help: "Database connection pool state",
			},
			[]string{"service", "state"},
		),
	}
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveRemoteCall учитывает вызов удаленного сервиса
func (m *Metrics) ObserveRemoteCall(remote, operation, status string, duration time.Duration) {
	m.RemoteCallDuration.WithLabelValues(m.serviceName, remote, operation, status).Observe(duration.Seconds())
}

// IncReservationOutcome учитывает результат оформления бронирования
func (m *Metrics) IncReservationOutcome(outcome string) {
	m.ReservationOutcomes.WithLabelValues(m.serviceName, outcome).Inc()
}

// AddClassified учитывает результат прохода классификации
func (m *Metrics) AddClassified(upcoming, current, past int) {
	m.ClassifiedBookings.WithLabelValues(m.serviceName, "upcoming").Add(float64(upcoming))
	m.ClassifiedBookings.WithLabelValues(m.serviceName, "current").Add(float64(current))
	m.ClassifiedBookings.WithLabelValues(m.serviceName, "past").Add(float64(past))
}

// SetDraftsActive выставляет число живых черновиков
func (m *Metrics) SetDraftsActive(n int) {
	m.DraftsActive.WithLabelValues(m.serviceName).Set(float64(n))
}

// ObserveDBQuery учитывает запрос к БД
func (m *Metrics) ObserveDBQuery(operation, status string, duration time.Duration) {
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats выставляет состояние пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	m.DBPoolConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.DBPoolConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.DBPoolConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}
