package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors exposed by the service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	BookingsCreated *prometheus.CounterVec
	BookingsDenied  *prometheus.CounterVec
	MirrorWrites    *prometheus.CounterVec
}

// New registers and returns the service metrics on the default registry.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests processed",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings committed",
			ConstLabels: constLabels,
		}, []string{"resource"}),

		BookingsDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_denied_total",
			Help:        "Total number of booking requests rejected by validation",
			ConstLabels: constLabels,
		}, []string{"resource", "reason"}),

		MirrorWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "mirror_writes_total",
			Help:        "Best-effort mirror store writes by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}
}
