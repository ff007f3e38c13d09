// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ApplicationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_applications_created_total",
			Help: "Total number of applications created",
		},
		[]string{"loan_type", "employment_type"},
	)

	TransitionsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_transitions_applied_total",
			Help: "Total number of state transitions applied",
		},
		[]string{"from", "to"},
	)

	TransitionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_transitions_rejected_total",
			Help: "Total number of transition attempts rejected by validation",
		},
		[]string{"error_code"},
	)

	NotificationsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_notifications_emitted_total",
			Help: "Total number of notifications appended to the log",
		},
		[]string{"type"},
	)

	ApplicationsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lifecycle_applications_active",
			Help: "Number of applications currently outside a terminal bucket",
		},
	)
)
