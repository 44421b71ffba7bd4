package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors are registered on the default registry and exposed via /metrics.

var (
	CodaRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventcomb",
		Name:      "coda_requests_total",
		Help:      "Coda API requests by operation and outcome",
	}, []string{"operation", "outcome"})

	GeocodeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventcomb",
		Name:      "geocode_lookups_total",
		Help:      "Geocoding lookups by outcome (hit, miss, error, skipped)",
	}, []string{"outcome"})

	TaskRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventcomb",
		Name:      "task_runs_total",
		Help:      "Background task executions by type and outcome",
	}, []string{"type", "outcome"})

	SnapshotEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "eventcomb",
		Name:      "snapshot_events",
		Help:      "Number of events held in the last-good snapshot",
	})

	SnapshotUpdated = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "eventcomb",
		Name:      "snapshot_updated_timestamp_seconds",
		Help:      "Unix timestamp of the last successful snapshot refresh",
	})
)
