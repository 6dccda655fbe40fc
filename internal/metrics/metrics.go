package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastroguide_turns_total",
			Help: "Total number of dialogue turns by classified intent",
		},
		[]string{"intent"},
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gastroguide_turn_duration_seconds",
			Help:    "Duration of a dialogue turn in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"intent"},
	)

	CollaboratorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastroguide_collaborator_errors_total",
			Help: "Total number of failed collaborator calls",
		},
		[]string{"collaborator"},
	)

	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gastroguide_bookings_created_total",
			Help: "Total number of bookings created",
		},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastroguide_notifications_total",
			Help: "Booking confirmation notifications by result",
		},
		[]string{"result"},
	)
)

// Notification results.
const (
	NotificationSent    = "sent"
	NotificationSkipped = "skipped"
	NotificationFailed  = "failed"
)
