package knowledge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "minesai",
		Subsystem: "knowledge",
		Name:      "observations_ingested_total",
		Help:      "Observations folded into knowledge bases",
	})

	factsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minesai",
		Subsystem: "knowledge",
		Name:      "facts_total",
		Help:      "Cells resolved as safe or hazard",
	}, []string{"kind"})

	admittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minesai",
		Subsystem: "knowledge",
		Name:      "statements_admitted_total",
		Help:      "Statements admitted, by outcome",
	}, []string{"result"})

	inferencesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "minesai",
		Subsystem: "knowledge",
		Name:      "subset_inferences_total",
		Help:      "Statements derived by subset inference",
	})
)
