package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cloudcost"

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Account sync metrics
	accountSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "account",
			Name:      "sync_total",
			Help:      "Total number of cloud account syncs",
		},
		[]string{"provider", "mode", "status"},
	)

	accountSyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "account",
			Name:      "sync_duration_seconds",
			Help:      "Duration of cloud account syncs in seconds",
			Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60},
		},
		[]string{"provider", "mode"},
	)

	costRecordsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cost",
			Name:      "records_written_total",
			Help:      "Cost records written by account syncs",
		},
		[]string{"provider"},
	)

	// Recommendation metrics
	recommendationsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recommendation",
			Name:      "generated_total",
			Help:      "Recommendations generated by type",
		},
		[]string{"type"},
	)

	recommendationStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recommendation",
			Name:      "status_changes_total",
			Help:      "Recommendation status transitions",
		},
		[]string{"status"},
	)

	// Deletion metrics
	deletionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "deletion",
			Name:      "recorded_total",
			Help:      "Resource deletions recorded by method",
		},
		[]string{"method"},
	)

	// Budget metrics
	budgetsByState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "budget",
			Name:      "state_count",
			Help:      "Budgets per state at the last scheduled check",
		},
		[]string{"state"},
	)

	// Export metrics
	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "reports_total",
			Help:      "CSV reports generated",
		},
		[]string{"report"},
	)

	// Scheduler metrics
	jobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Scheduled job runs",
		},
		[]string{"job", "status"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count, latency and in-flight requests per chi
// route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)
		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAccountSync records one account sync. mode is "demo" or "provider".
func RecordAccountSync(provider, mode, status string, duration time.Duration) {
	accountSyncTotal.WithLabelValues(provider, mode, status).Inc()
	accountSyncDuration.WithLabelValues(provider, mode).Observe(duration.Seconds())
}

// AddCostRecords counts cost rows written for a provider
func AddCostRecords(provider string, n int) {
	costRecordsWritten.WithLabelValues(provider).Add(float64(n))
}

// RecordRecommendation counts a generated recommendation
func RecordRecommendation(recType string) {
	recommendationsGenerated.WithLabelValues(recType).Inc()
}

// RecordRecommendationStatus counts a status transition
func RecordRecommendationStatus(status string) {
	recommendationStatusChanges.WithLabelValues(status).Inc()
}

// RecordDeletion counts a recorded deletion
func RecordDeletion(method string) {
	deletionsRecorded.WithLabelValues(method).Inc()
}

// SetBudgetStates publishes the result of a budget check
func SetBudgetStates(ok, nearLimit, overBudget int) {
	budgetsByState.WithLabelValues("ok").Set(float64(ok))
	budgetsByState.WithLabelValues("near_limit").Set(float64(nearLimit))
	budgetsByState.WithLabelValues("over_budget").Set(float64(overBudget))
}

// RecordExport counts a generated CSV report
func RecordExport(report string) {
	exportsTotal.WithLabelValues(report).Inc()
}

// RecordJobRun counts a scheduled job run
func RecordJobRun(job, status string) {
	jobRunsTotal.WithLabelValues(job, status).Inc()
}
