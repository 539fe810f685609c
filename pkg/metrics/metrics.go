package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	CalendarReloadsTotal *prometheus.CounterVec
	ValidationsTotal     *prometheus.CounterVec
	ViolationsTotal      *prometheus.CounterVec

	OptimizerRunDuration prometheus.Histogram
	OptimizerUnscheduled prometheus.Histogram
}

// New создает метрики и регистрирует их в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном registry
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		CalendarReloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_reloads_total",
			Help:        "Calendar file reloads by result",
			ConstLabels: labels,
		}, []string{"result"}),
		ValidationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "event_validations_total",
			Help:        "Event slot validations by result",
			ConstLabels: labels,
		}, []string{"result"}),
		ViolationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "constraint_violations_total",
			Help:        "Hard constraint violations by kind",
			ConstLabels: labels,
		}, []string{"kind"}),

		OptimizerRunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "optimizer_run_duration_seconds",
			Help:        "Weekly optimizer run duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		OptimizerUnscheduled: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "optimizer_unscheduled_events",
			Help:        "Number of events left unscheduled per optimizer run",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(0, 5, 10),
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.CalendarReloadsTotal,
		m.ValidationsTotal,
		m.ViolationsTotal,
		m.OptimizerRunDuration,
		m.OptimizerUnscheduled,
	)

	return m
}
