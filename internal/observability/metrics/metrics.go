package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "villadesk_"

var (
	// SnapshotRefreshes counts full room/booking snapshot reloads from the
	// remote backend.
	SnapshotRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "snapshot_refresh_total",
		Help: "Snapshot reloads from the booking backend",
	})

	// BackendErrors counts failed calls to the remote booking backend.
	BackendErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "backend_request_errors_total",
		Help: "Failed requests to the booking backend",
	})

	// RejectedBookingRecords counts backend booking payloads dropped at the
	// ingestion boundary (malformed dates and the like). A steadily growing
	// value signals a data-quality problem upstream.
	RejectedBookingRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "rejected_booking_records_total",
		Help: "Booking records rejected during snapshot ingestion",
	})

	// BookingEventsPublished counts booking events handed to kafka.
	BookingEventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "booking_events_published_total",
		Help: "Booking events published to kafka",
	})
)

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
