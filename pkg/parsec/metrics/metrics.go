// Package metrics wires pkg/parsec's Run into Prometheus counters and
// histograms, for long-running processes (cmd/parsec's serve-metrics
// subcommand, cmd/parsec-lsp) that want visibility into how a grammar is
// performing in production rather than just in a one-off benchmark.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/consensys/go-parsec/pkg/parsec"
)

// Recorder holds the Prometheus collectors for one grammar's Run calls.
// Construct one per grammar (not per call) and register it with a
// registry; RunObserved then wraps individual calls.
type Recorder struct {
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewRecorder builds a Recorder with the given metric name prefix (e.g.
// "parsec_sexp") and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer, namePrefix string) *Recorder {
	r := &Recorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: namePrefix + "_runs_total",
			Help: "Total number of parser runs, partitioned by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    namePrefix + "_run_duration_seconds",
			Help:    "Wall-clock duration of a parser run.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(r.runs, r.duration)

	return r
}

// RunObserved runs p over input via parsec.RunStream, recording its outcome
// and duration against r before returning exactly what RunStream would have.
func RunObserved[T, V any](r *Recorder, p parsec.Parser[T, V], input parsec.Stream[T]) (V, error) {
	start := time.Now()
	value, err := parsec.RunStream(p, input, nil)

	r.duration.Observe(time.Since(start).Seconds())

	if err != nil {
		r.runs.WithLabelValues("error").Inc()
	} else {
		r.runs.WithLabelValues("ok").Inc()
	}

	return value, err
}
