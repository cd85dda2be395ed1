// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	OpportunitiesScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_opportunities_scored_total",
			Help: "Total number of opportunities scored, by similarity tier used",
		},
		[]string{"similarity_tier"},
	)

	OpportunitiesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_opportunities_skipped_total",
			Help: "Total number of opportunities that failed scoring and defaulted to zero",
		},
	)

	CompatibilityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_compatibility_score",
			Help:    "Distribution of computed compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	ScoreCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_score_cache_requests_total",
			Help: "Compatibility score cache lookups, by outcome",
		},
		[]string{"outcome"},
	)
)
