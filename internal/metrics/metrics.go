// Package metrics exposes Prometheus counters for pipeline runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunsTotal counts completed pipeline runs by final status.
var RunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "mt5_summary",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Total number of pipeline runs by final status",
	},
	[]string{"status"},
)

// StageFailures counts failures per pipeline stage, fatal and recoverable.
var StageFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "mt5_summary",
		Subsystem: "pipeline",
		Name:      "stage_failures_total",
		Help:      "Total number of stage failures by stage",
	},
	[]string{"stage"},
)

// RunDuration tracks wall-clock time of one full run.
var RunDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "mt5_summary",
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "Duration of one pipeline run in seconds",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
	},
)

// Serve exposes /metrics on the given address. Blocks; run in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
