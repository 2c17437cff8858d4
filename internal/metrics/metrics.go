package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roombook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roombook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roombook_booking_attempts_total",
			Help: "Booking attempts by outcome",
		},
		[]string{"outcome", "room_type"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roombook_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	CompensationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roombook_compensation_failures_total",
			Help: "Counter releases that failed after a denied or faulted reservation",
		},
	)

	CounterSeedsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roombook_availability_counter_seeds_total",
			Help: "Availability counters lazily initialized on the booking path",
		},
	)

	ReconcileKeysCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roombook_reconcile_keys_created_total",
			Help: "Availability counters created by the reconciliation job",
		},
	)

	ReconcileKeysDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roombook_reconcile_keys_deleted_total",
			Help: "Expired availability counters deleted by the reconciliation job",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roombook_notifications_total",
			Help: "Booking notifications by delivery status",
		},
		[]string{"type", "status"},
	)
)

// Booking attempt outcomes.
const (
	OutcomeGranted  = "granted"
	OutcomeDenied   = "denied"
	OutcomeRejected = "rejected"
	OutcomeFaulted  = "faulted"
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingAttempt(outcome, roomType string) {
	BookingAttemptsTotal.WithLabelValues(outcome, roomType).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordCompensationFailure() {
	CompensationFailuresTotal.Inc()
}

func RecordCounterSeed() {
	CounterSeedsTotal.Inc()
}

func RecordNotification(notifType, status string) {
	NotificationsTotal.WithLabelValues(notifType, status).Inc()
}
