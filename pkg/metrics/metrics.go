package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы загрузки доступности
const (
	FetchOutcomeSuccess   = "success"
	FetchOutcomeFailure   = "failure"
	FetchOutcomeDiscarded = "discarded"
)

// Metrics набор prometheus-метрик сервиса на собственном registry
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AvailabilityFetchesTotal  *prometheus.CounterVec
	AvailabilityFetchDuration *prometheus.HistogramVec
	SelectionEventsTotal      *prometheus.CounterVec
	ActiveSessions            prometheus.Gauge
}

// New создает и регистрирует все метрики сервиса
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AvailabilityFetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_fetches_total",
			Help:        "Availability fetches by outcome (success, failure, discarded)",
			ConstLabels: labels,
		}, []string{"outcome"}),
		AvailabilityFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "availability_fetch_duration_seconds",
			Help:        "Availability source latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"source"}),
		SelectionEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "selection_events_total",
			Help:        "Date and time selection events reported to callers",
			ConstLabels: labels,
		}, []string{"event"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "selection_sessions_active",
			Help:        "Number of open selection sessions",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AvailabilityFetchesTotal,
		m.AvailabilityFetchDuration,
		m.SelectionEventsTotal,
		m.ActiveSessions,
	)

	return m
}

// Handler отдает метрики в формате prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest фиксирует обработанный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveFetch фиксирует исход загрузки доступности
func (m *Metrics) ObserveFetch(outcome string) {
	m.AvailabilityFetchesTotal.WithLabelValues(outcome).Inc()
}

// ObserveFetchDuration фиксирует длительность обращения к источнику
func (m *Metrics) ObserveFetchDuration(source string, elapsed time.Duration) {
	m.AvailabilityFetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveSelection фиксирует событие выбора даты или времени
func (m *Metrics) ObserveSelection(event string) {
	m.SelectionEventsTotal.WithLabelValues(event).Inc()
}

// SetActiveSessions выставляет текущее число сессий
func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}
