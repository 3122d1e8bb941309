package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for solver metrics
	Registry = prometheus.NewRegistry()

	// SolveRuns counts completed solves by entry point and outcome
	SolveRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "solver_runs_total", Help: "Completed solves by source and status."},
		[]string{"source", "status"},
	)
	// SolveDuration records wall time of whole solves in seconds
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "solver_run_duration_seconds", Help: "Solve duration in seconds.", Buckets: prometheus.ExponentialBuckets(0.01, 2, 14)},
		[]string{"source"},
	)
	// Evaluations counts full route cost evaluations
	Evaluations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "solver_evaluations_total", Help: "Route cost evaluations performed."},
	)
	// Stalls counts outer iterations whose batch found no cheaper route
	Stalls = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "solver_stalled_batches_total", Help: "Annealing batches that found no cheaper route."},
	)
	// BestCost is the total cost of the latest solve's best route
	BestCost = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "solver_best_cost", Help: "Best total cost of the latest solve."},
		[]string{"source"},
	)
	// Drivers is the driver count of the latest solve's best route
	Drivers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "solver_drivers", Help: "Drivers used by the latest solve."},
		[]string{"source"},
	)
)

var regOnce sync.Once

// Register adds all collectors to Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(SolveRuns)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(Evaluations)
		Registry.MustRegister(Stalls)
		Registry.MustRegister(BestCost)
		Registry.MustRegister(Drivers)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// WriteTextfile dumps Registry in text exposition format for a node_exporter
// textfile collector. Short-lived CLI runs use this instead of a scrape endpoint.
func WriteTextfile(path string) error {
	Register()
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile %q: %w", path, err)
	}
	return nil
}

// ObserveSolve records the outcome of one solve.
func ObserveSolve(source, status string, bestCost float64, drivers, evaluations, stalls int, dur time.Duration) {
	Register()
	SolveRuns.WithLabelValues(source, status).Inc()
	SolveDuration.WithLabelValues(source).Observe(dur.Seconds())
	if status != "ok" {
		return
	}
	Evaluations.Add(float64(evaluations))
	Stalls.Add(float64(stalls))
	BestCost.WithLabelValues(source).Set(bestCost)
	Drivers.WithLabelValues(source).Set(float64(drivers))
}
