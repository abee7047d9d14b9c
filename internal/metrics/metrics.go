// Package metrics holds the prometheus collectors for the connection layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionOpensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biogas_db_opens_total",
		Help: "Connection open attempts by backend and result.",
	}, []string{"backend", "result"})

	ReconnectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biogas_db_reconnects_total",
		Help: "Reopen attempts made after a dropped connection.",
	}, []string{"result"})

	RepairPromptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biogas_db_repair_prompts_total",
		Help: "Bad configuration repair rounds by backend and outcome.",
	}, []string{"backend", "outcome"})

	RegisteredConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "biogas_db_registered_connections",
		Help: "Connections currently held in the registry.",
	})
)
