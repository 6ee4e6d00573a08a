package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	bookingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexusems_booking_operations_total",
			Help: "Booking lifecycle operations by outcome",
		},
		[]string{"operation", "status"},
	)

	ticketTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexusems_ticket_transitions_total",
			Help: "Tickets moved between available and booked",
		},
		[]string{"to"},
	)

	waitlistNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexusems_waitlist_notifications_total",
			Help: "Waitlist notifications by result",
		},
		[]string{"result"},
	)

	releaseMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexusems_seat_release_messages_total",
			Help: "Seats-released messages by transport and outcome",
		},
		[]string{"transport", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nexusems_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// RecordBooking counts a lifecycle operation (create, customer, payment, cancel)
func RecordBooking(operation string, err error) {
	bookingOperations.WithLabelValues(operation, outcome(err)).Inc()
}

// RecordTickets counts tickets moved to the given status
func RecordTickets(to string, n int) {
	if n <= 0 {
		return
	}
	ticketTransitions.WithLabelValues(to).Add(float64(n))
}

func RecordWaitlistNotifications(sent, failed int) {
	if sent > 0 {
		waitlistNotifications.WithLabelValues("sent").Add(float64(sent))
	}
	if failed > 0 {
		waitlistNotifications.WithLabelValues("failed").Add(float64(failed))
	}
}

func RecordRelease(transport string, err error) {
	releaseMessages.WithLabelValues(transport, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return StatusFailure
	}
	return StatusSuccess
}

// Middleware observes request latency labelled by the matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
