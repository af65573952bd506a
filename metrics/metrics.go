// Package metrics exposes prometheus collectors for the synthesis
// pipeline: constraints registered, propagation DAG nodes visited, and
// per-phase encode duration, grounded in the subsystem/label-naming
// convention junos_exporter's bgp collector uses for its own BGP
// metrics (bgpSubsystem, colPromDesc).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const subsystem = "synet"

var (
	// ConstraintsRegistered counts Expr constraints appended to a
	// SolverContext, labeled by the component that registered them.
	ConstraintsRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "constraints_registered_total",
		Help:      "Number of solver constraints registered, by component.",
	}, []string{"component"})

	// DAGNodesVisited counts router-level DAG nodes handed to an
	// Encoder by the orchestrator, once per (net, node) pair, under
	// the layer label "router".
	DAGNodesVisited = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "dag_nodes_visited_total",
		Help:      "Number of propagation DAG nodes visited, by layer.",
	}, []string{"layer"})

	// PhaseDuration observes how long each orchestrator phase takes.
	PhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: subsystem,
		Name:      "phase_duration_seconds",
		Help:      "Wall-clock duration of each synthesis phase.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"phase"})

	// RunsTotal counts completed orchestrator runs, labeled by outcome
	// ("sat" or "error"; an unsatisfiable solve counts as "error").
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "runs_total",
		Help:      "Number of synthesis runs, by outcome.",
	}, []string{"outcome"})
)

// ObservePhase times fn and records its duration under PhaseDuration
// labeled by phase. Callers wrap each orchestrator stage with this
// rather than reading a clock directly, mirroring how route-beacon-ri
// wraps each pipeline stage for its own timing instrumentation.
func ObservePhase(phase string, fn func() error) error {
	start := time.Now()
	err := fn()
	PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
	return err
}
