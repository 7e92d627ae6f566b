/*
metrics.go - Prometheus instrumentation for the HTTP layer

PURPOSE:
  Counts and times HTTP requests per route, and counts the period-end
  runs. Exposed at /metrics via promhttp (see server.go).

LABELS:
  Request metrics are labeled by chi route pattern, not raw path, so
  /api/persons/{id} stays a single series regardless of how many
  employees exist.
*/
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payroll_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payroll_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	liquidationRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payroll_liquidation_runs_total",
		Help: "Completed liquidation runs.",
	})

	receiptRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payroll_receipt_runs_total",
		Help: "Completed receipt generation runs.",
	})
)

// instrument records a counter and latency sample per request.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
