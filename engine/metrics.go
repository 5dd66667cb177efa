package engine

import "github.com/prometheus/client_golang/prometheus"

// metrics aggregates the dispatch instrumentation. Collectors are always
// created so recording sites stay unconditional; they are only registered
// when the caller supplies a Registerer (Options.Registerer).
type metrics struct {
	completions    *prometheus.CounterVec
	ruleFires      *prometheus.CounterVec
	whereQueries   *prometheus.CounterVec
	dispatchErrors prometheus.Counter
	cascadeDepth   prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "conceptmesh",
			Name:      "completions_total",
			Help:      "Concept action completions recorded by the dispatcher.",
		}, []string{"concept", "action"}),
		ruleFires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "conceptmesh",
			Name:      "rule_fires_total",
			Help:      "Sync rules whose then stage fired for at least one frame.",
		}, []string{"rule"}),
		whereQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "conceptmesh",
			Name:      "where_queries_total",
			Help:      "Concept queries issued by where refinement stages.",
		}, []string{"concept", "query"}),
		dispatchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "conceptmesh",
			Name:      "dispatch_errors_total",
			Help:      "Dispatches that terminated with an error.",
		}),
		cascadeDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "conceptmesh",
			Name:      "cascade_depth",
			Help:      "Maximum cascade depth reached per dispatch.",
			Buckets:   prometheus.LinearBuckets(0, 2, 12),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.completions, m.ruleFires, m.whereQueries, m.dispatchErrors, m.cascadeDepth)
	}
	return m
}
