package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSamplesClassified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orientationd_samples_classified_total",
		Help: "Accelerometer samples run through the orientation classifier.",
	})
	metricOrientationChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orientationd_orientation_changes_total",
		Help: "Orientation change events emitted, by resulting orientation.",
	}, []string{"type"})
	metricTrackingStarts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orientationd_tracking_starts_total",
		Help: "Accepted motion tracking start requests.",
	})
	metricLockRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orientationd_lock_requests_total",
		Help: "Lock requests received, by outcome.",
	}, []string{"outcome"})
)
