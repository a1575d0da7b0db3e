package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa las métricas Prometheus de la API con su propio registry.
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	TransactionsRegistered *prometheus.CounterVec
	TransactionsRejected   *prometheus.CounterVec
	ValuationsComputed     *prometheus.CounterVec
}

// New crea el registry con las métricas de Go, de proceso, HTTP y de negocio del kardex.
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	const namespace = "kardex"
	m := &Metrics{serviceName: serviceName, registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP",
		},
		[]string{"service", "method", "path", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method", "path"},
	)
	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "http_requests_in_flight",
			Help:        "Peticiones HTTP en curso",
			ConstLabels: prometheus.Labels{"service": serviceName},
		},
	)
	m.TransactionsRegistered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_registered_total",
			Help:      "Transacciones agregadas al ledger por tipo",
		},
		[]string{"service", "type"},
	)
	m.TransactionsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_rejected_total",
			Help:      "Transacciones rechazadas por motivo",
		},
		[]string{"service", "reason"},
	)
	m.ValuationsComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "valuations_computed_total",
			Help:      "Valuaciones de inventario calculadas por método",
		},
		[]string{"service", "method"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.TransactionsRegistered,
		m.TransactionsRejected,
		m.ValuationsComputed,
	)
	return m
}

// Registry expone el registry (útil en tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler devuelve el handler HTTP de Prometheus para este registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest registra una petición HTTP terminada.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// TransactionRegistered implementa inventory.MetricsRecorder.
func (m *Metrics) TransactionRegistered(txType string) {
	m.TransactionsRegistered.WithLabelValues(m.serviceName, txType).Inc()
}

// TransactionRejected implementa inventory.MetricsRecorder.
func (m *Metrics) TransactionRejected(reason string) {
	m.TransactionsRejected.WithLabelValues(m.serviceName, reason).Inc()
}

// ValuationComputed implementa inventory.MetricsRecorder.
func (m *Metrics) ValuationComputed(method string) {
	m.ValuationsComputed.WithLabelValues(m.serviceName, method).Inc()
}

// Middleware registra cada petición HTTP. Usa el patrón de ruta de Fiber para no explotar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		m.RecordHTTPRequest(c.Method(), path, status, time.Since(start))
		return err
	}
}

// FiberHandler expone /metrics en Fiber.
func (m *Metrics) FiberHandler() fiber.Handler {
	return adaptor.HTTPHandler(m.Handler())
}
