package persistence

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK      = "ok"
	resultError   = "error"
	resultSkipped = "skipped"
)

var (
	localSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexus",
		Subsystem: "persistence",
		Name:      "local_saves_total",
		Help:      "Writes to the local durable store by partition and result.",
	}, []string{"partition", "result"})

	remoteSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexus",
		Subsystem: "persistence",
		Name:      "remote_syncs_total",
		Help:      "Debounced remote pushes by partition and result.",
	}, []string{"partition", "result"})

	supersededSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexus",
		Subsystem: "persistence",
		Name:      "superseded_syncs_total",
		Help:      "Pending remote pushes replaced by a newer save before firing.",
	}, []string{"partition"})

	remoteLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexus",
		Subsystem: "persistence",
		Name:      "remote_loads_total",
		Help:      "Remote snapshot fetches by result.",
	}, []string{"result"})
)
