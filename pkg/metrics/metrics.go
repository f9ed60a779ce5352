package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "startuphub", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "startuphub", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// StateChanges counts state mutations by kind (publish, like, delete, ...).
	StateChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "startuphub", Name: "state_changes_total", Help: "Number of state mutations by kind."},
		[]string{"kind"},
	)
	// StorageDiscards counts persisted blobs dropped on load because they failed to decode.
	StorageDiscards = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "startuphub", Name: "storage_discards_total", Help: "Number of corrupt persisted blobs discarded on load."},
		[]string{"key"},
	)
	PublishedStartups = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "startuphub", Name: "published_startups", Help: "Number of published startups in the canonical collection."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(StateChanges)
	reg.MustRegister(StorageDiscards)
	reg.MustRegister(PublishedStartups)
}
