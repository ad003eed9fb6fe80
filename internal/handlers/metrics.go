package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "minesai",
		Subsystem: "hints",
		Name:      "sessions_active",
		Help:      "Knowledge bases held by the hint service",
	})

	watchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minesai",
		Subsystem: "hints",
		Name:      "watches_total",
		Help:      "Streamed games, by how they ended",
	}, []string{"end"})
)
