// Package metrics defines and registers all custom Prometheus metrics for the
// MedScript clinical records API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "medscript"

// RecordMutationsTotal counts persisted record-store mutations.
// Labels:
//   - entity: "user" or "prescription"
//   - op: "add", "delete", or "status"
var RecordMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_mutations_total",
		Help:      "Total number of record store mutations successfully persisted.",
	},
	[]string{"entity", "op"},
)

// CorruptEntriesRecoveredTotal counts restore-time deserialization failures
// that were recovered by falling back to an empty collection or an absent session.
// Label:
//   - entry: the durable entry name that was malformed
var CorruptEntriesRecoveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "corrupt_entries_recovered_total",
		Help:      "Total number of malformed persisted entries recovered as empty state.",
	},
	[]string{"entry"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", or "not_found"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// SessionRestoresTotal counts session restore attempts at startup or via the
// session endpoint.
// Label:
//   - result: "ok", "none", or "corrupt"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of persisted-identity restore attempts, labelled by outcome.",
	},
	[]string{"result"},
)
