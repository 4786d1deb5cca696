package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce               sync.Once
	apiRequestsTotal           *prometheus.CounterVec
	apiLatencySeconds          *prometheus.HistogramVec
	apiErrorsTotal             *prometheus.CounterVec
	gradesUpsertedTotal        *prometheus.CounterVec
	notificationsPublished     *prometheus.CounterVec
	submissionUploadLatencySec prometheus.Histogram
	sseClientsActive           prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		gradesUpsertedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grades_upserted_total",
			Help: "Total number of grade upserts, labelled by letter grade.",
		}, []string{"letter"})

		notificationsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_published_total",
			Help: "Total number of notifications published, labelled by type.",
		}, []string{"type"})

		submissionUploadLatencySec = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "submission_upload_latency_seconds",
			Help:    "Latency distribution for submission file uploads.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		sseClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sse_clients_active",
			Help: "Number of currently connected notification stream clients.",
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			gradesUpsertedTotal,
			notificationsPublished,
			submissionUploadLatencySec,
			sseClientsActive,
		)
	})
}

// APIRequests exposes the counter for served requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for served requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// GradesUpserted exposes the counter for grade upserts.
func GradesUpserted() *prometheus.CounterVec {
	RegisterMetrics()
	return gradesUpsertedTotal
}

// NotificationsPublishedTotal exposes the counter for published notifications.
func NotificationsPublishedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsPublished
}

// UploadLatency exposes the histogram for submission upload latency.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return submissionUploadLatencySec
}

// SSEClientsActive exposes the gauge for connected stream clients.
func SSEClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return sseClientsActive
}
