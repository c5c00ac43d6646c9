package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pareto"

// Outcome labels for SolvesTotal.
const (
	OutcomeHealthy   = "healthy"
	OutcomeUnhealthy = "unhealthy"
	OutcomeError     = "error"
)

var (
	// SolvesTotal counts single-objective solves by run phase and outcome.
	SolvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "solves_total",
		Help:      "Single-objective solves by phase and outcome",
	}, []string{"phase", "outcome"})

	// SolveDuration tracks backend latency per phase.
	SolveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "solve_duration_seconds",
		Help:      "Single-objective solve duration in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
	}, []string{"phase"})

	// RunsTotal counts frontier runs by strategy and result.
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "runs_total",
		Help:      "Pareto frontier runs by strategy and result",
	}, []string{"strategy", "result"})

	// FrontierSize is the number of points on the last computed frontier.
	FrontierSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "frontier_points",
		Help:      "Number of points on the most recent Pareto frontier",
	})

	// CacheLookups counts memoized solve lookups by result (hit or miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "solve_cache_lookups_total",
		Help:      "Solve cache lookups by result",
	}, []string{"result"})
)
