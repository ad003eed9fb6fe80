package agent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gamesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minesai",
		Subsystem: "agent",
		Name:      "games_total",
		Help:      "Games played to the end, by outcome",
	}, []string{"outcome"})

	guessesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "minesai",
		Subsystem: "agent",
		Name:      "guesses_total",
		Help:      "Moves made without a known safe cell",
	})

	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "minesai",
		Subsystem: "agent",
		Name:      "batch_duration_seconds",
		Help:      "Wall time of batch runs",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
	})
)
