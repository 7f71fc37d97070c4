package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProfileRefreshes counts refreshes by resulting status and reason.
	ProfileRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitprofile_profile_refreshes_total",
			Help: "Total number of profile refreshes",
		},
		[]string{"status", "reason"},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fitprofile_profile_refresh_duration_seconds",
			Help:    "Profile refresh duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CacheLookups counts state cache lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitprofile_state_cache_lookups_total",
			Help: "Total number of profile state cache lookups",
		},
		[]string{"result"},
	)

	SamplesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitprofile_samples_recorded_total",
			Help: "Total number of health samples recorded",
		},
		[]string{"type"},
	)

	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitprofile_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)
