package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	LoginCounter        prometheus.Counter
	RegisterCounter     prometheus.Counter
	AuthErrorCounter    *prometheus.CounterVec
	TokensIssuedCounter prometheus.Counter

	// Product metrics
	ProductOperationsCounter *prometheus.CounterVec
	EnrichmentFallbacks      *prometheus.CounterVec
	EnrichmentDuration       prometheus.Histogram

	DBOperationDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors with the given name prefix and registers them on reg
func NewMetrics(reg prometheus.Registerer, prefix string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		LoginCounter: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_login_total",
				Help: "Total number of login attempts",
			},
		),
		RegisterCounter: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_register_total",
				Help: "Total number of vendor registrations",
			},
		),
		AuthErrorCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_errors_total",
				Help: "Total number of authentication errors",
			},
			[]string{"type"}, // duplicate_email, invalid_password, token_expired, ...
		),
		TokensIssuedCounter: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_tokens_issued_total",
				Help: "Total number of access tokens issued",
			},
		),
		ProductOperationsCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_product_operations_total",
				Help: "Total number of product operations",
			},
			[]string{"operation", "result"},
		),
		EnrichmentFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_enrichment_fallback_total",
				Help: "Total number of product descriptions served from the fallback template",
			},
			[]string{"reason"}, // not_configured, request_failed
		),
		EnrichmentDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    prefix + "_enrichment_duration_seconds",
				Help:    "Duration of product enrichment in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		DBOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LoginCounter,
		m.RegisterCounter,
		m.AuthErrorCounter,
		m.TokensIssuedCounter,
		m.ProductOperationsCounter,
		m.EnrichmentFallbacks,
		m.EnrichmentDuration,
		m.DBOperationDuration,
	)

	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}

	return m
}

// Handler returns an HTTP handler exposing the registry the metrics were registered on
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// TrackDBOperation measures a database operation; call the returned func when it completes
func (m *Metrics) TrackDBOperation(operation string) func() {
	start := time.Now()
	return func() {
		if m == nil {
			return
		}
		m.DBOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// TrackEnrichment measures one enrichment run; call the returned func when it completes
func (m *Metrics) TrackEnrichment() func() {
	start := time.Now()
	return func() {
		if m == nil {
			return
		}
		m.EnrichmentDuration.Observe(time.Since(start).Seconds())
	}
}

// RecordLogin counts a login attempt
func (m *Metrics) RecordLogin() {
	if m == nil {
		return
	}
	m.LoginCounter.Inc()
}

// RecordRegister counts a successful registration
func (m *Metrics) RecordRegister() {
	if m == nil {
		return
	}
	m.RegisterCounter.Inc()
}

// RecordTokenIssued counts an issued access token
func (m *Metrics) RecordTokenIssued() {
	if m == nil {
		return
	}
	m.TokensIssuedCounter.Inc()
}

// RecordAuthError records an authentication error by type
func (m *Metrics) RecordAuthError(errorType string) {
	if m == nil {
		return
	}
	m.AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// RecordProductOperation records a product operation and its outcome
func (m *Metrics) RecordProductOperation(operation, result string) {
	if m == nil {
		return
	}
	m.ProductOperationsCounter.WithLabelValues(operation, result).Inc()
}

// RecordEnrichmentFallback records a description served from the fallback template
func (m *Metrics) RecordEnrichmentFallback(reason string) {
	if m == nil {
		return
	}
	m.EnrichmentFallbacks.WithLabelValues(reason).Inc()
}

// Middleware records request count and duration for each route
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			if m == nil {
				return err
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if !c.Response().Committed {
					status = http.StatusInternalServerError
				}
			}

			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
