// AngelaMos | 2026
// metrics.go

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records request counts and latencies per chi route pattern,
// so /course/{id} is one series rather than one per id.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "courses",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "courses",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "courses",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}

	reg.MustRegister(m.requests, m.duration, m.inFlight)
	return m
}

func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		m.inFlight.Inc()
		defer m.inFlight.Dec()

		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RateLimitMetrics counts rejected requests and Redis fallbacks per
// limiter. A nil *RateLimitMetrics records nothing.
type RateLimitMetrics struct {
	rejections *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
}

func NewRateLimitMetrics(reg prometheus.Registerer) *RateLimitMetrics {
	m := &RateLimitMetrics{
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "courses",
			Subsystem: "ratelimit",
			Name:      "rejected_total",
			Help:      "Requests rejected with 429 by limiter.",
		}, []string{"limiter"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "courses",
			Subsystem: "ratelimit",
			Name:      "local_fallback_total",
			Help:      "Limiter decisions made in process because Redis failed.",
		}, []string{"limiter"}),
	}

	reg.MustRegister(m.rejections, m.fallbacks)
	return m
}

func (m *RateLimitMetrics) rejected(limiter string) {
	if m != nil {
		m.rejections.WithLabelValues(limiter).Inc()
	}
}

func (m *RateLimitMetrics) fellBack(limiter string) {
	if m != nil {
		m.fallbacks.WithLabelValues(limiter).Inc()
	}
}
