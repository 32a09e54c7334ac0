// Package metrics exposes the Prometheus collectors coxfit's fit
// subcommand updates, and the promhttp handler that serves them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors bundles the metrics a Newton-type Cox fit naturally produces
// per iteration.
type Collectors struct {
	EvaluateDuration prometheus.Histogram
	LastDeviance     prometheus.Gauge
	Iterations       prometheus.Counter
}

// New registers and returns a fresh Collectors set against reg.
func New(reg prometheus.Registerer) *Collectors {
	return &Collectors{
		EvaluateDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "coxdev",
			Subsystem: "fit",
			Name:      "evaluate_duration_seconds",
			Help:      "Wall-clock time of a single Context.Evaluate call.",
			Buckets:   prometheus.DefBuckets,
		}),
		LastDeviance: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: "coxdev",
			Subsystem: "fit",
			Name:      "last_deviance",
			Help:      "Deviance returned by the most recent Evaluate call.",
		}),
		Iterations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "coxdev",
			Subsystem: "fit",
			Name:      "iterations_total",
			Help:      "Number of Newton iterations completed.",
		}),
	}
}

// Serve starts an HTTP server exposing the registry at /metrics on addr. It
// runs until the process exits or the server fails; callers typically launch it in
// its own goroutine.
func Serve(addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return http.ListenAndServe(addr, mux)
}
