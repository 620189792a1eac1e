package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/DeepakGowda123/TrustGuardAI/internal/service"
)

// Metrics holds the Prometheus collectors. They exist from package init so
// handlers can record before InitMetrics registers them.
var Metrics = struct {
	AdsServedTotal   *prometheus.CounterVec
	FeedbackTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}{
	AdsServedTotal: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustguard_ads_served_total",
			Help: "Ad-serving outcomes, by result and vulnerability level.",
		},
		[]string{"outcome", "vulnerability_level"},
	),
	FeedbackTotal: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustguard_feedback_total",
			Help: "Feedback submissions, by kind and status.",
		},
		[]string{"feedback", "status"},
	),
	RequestDuration: prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustguard_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	),
	RequestsInFlight: prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trustguard_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	),
}

// InitMetrics registers all Prometheus metrics. Call once at startup.
// pool and cache may be nil.
func InitMetrics(pool *pgxpool.Pool, cache *service.CacheService) {
	if pool != nil {
		prometheus.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "trustguard_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 { return float64(pool.Stat().AcquiredConns()) },
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "trustguard_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 { return float64(pool.Stat().IdleConns()) },
			),
		)
	}

	if cache != nil {
		prometheus.MustRegister(
			prometheus.NewCounterFunc(
				prometheus.CounterOpts{
					Name: "trustguard_cache_hits_total",
					Help: "Total Redis cache hits.",
				},
				func() float64 { return float64(cache.Hits()) },
			),
			prometheus.NewCounterFunc(
				prometheus.CounterOpts{
					Name: "trustguard_cache_misses_total",
					Help: "Total Redis cache misses.",
				},
				func() float64 { return float64(cache.Misses()) },
			),
		)
	}

	prometheus.MustRegister(
		Metrics.AdsServedTotal,
		Metrics.FeedbackTotal,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Fiber returns slices backed by the fasthttp buffer, which
		// fasthttpadaptor may overwrite. Copy before c.Next().
		endpoint := sanitizeEndpoint(string([]byte(c.Path())))
		method := string([]byte(c.Method()))

		Metrics.RequestsInFlight.Inc()
		// recover sits outside this middleware, so a panic unwinds through here.
		defer Metrics.RequestsInFlight.Dec()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)

		return err
	}
}

// endpointPrefixes lists routes whose trailing segment is a user id.
var endpointPrefixes = []string{
	"/ads/",
	"/get_preferences/",
	"/analytics/user/",
	"/blocked_ads/",
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	for _, prefix := range endpointPrefixes {
		if len(path) > len(prefix) && strings.HasPrefix(path, prefix) {
			return prefix + ":userId"
		}
	}
	return path
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
