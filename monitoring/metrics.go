package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Completed order creation attempts by final status",
		},
		[]string{"status"},
	)

	reservationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_failures_total",
			Help: "Rejected purchase attempts by reason",
		},
		[]string{"reason"},
	)

	paymentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_duration_seconds",
			Help:    "Duration of simulated payment charges",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
		},
		[]string{"outcome"},
	)

	ticketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Tickets minted on successfully paid orders",
		},
	)

	staleOrdersReaped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stale_orders_reaped_total",
			Help: "PENDING orders cancelled by the reaper worker",
		},
	)
)

func OrderCompleted(status string) {
	ordersTotal.WithLabelValues(status).Inc()
}

func ReservationFailed(reason string) {
	reservationFailures.WithLabelValues(reason).Inc()
}

func ObservePayment(d time.Duration, outcome string) {
	paymentDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func TicketsIssued(n int) {
	ticketsIssued.Add(float64(n))
}

func StaleOrderReaped() {
	staleOrdersReaped.Inc()
}
