// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Ledger ─────────────────────────────────────────────────────────────────

// MutationsTotal counts ledger mutations by operation and result.
var MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "chitfund",
	Subsystem: "ledger",
	Name:      "mutations_total",
	Help:      "Total ledger mutations by operation and result.",
}, []string{"operation", "result"})

// NetFunds tracks the group's net liquid funds after the latest mutation.
var NetFunds = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "chitfund",
	Subsystem: "ledger",
	Name:      "net_funds",
	Help:      "Net liquid funds of the group.",
})

// OutstandingPrincipal tracks total principal owed by all members.
var OutstandingPrincipal = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "chitfund",
	Subsystem: "ledger",
	Name:      "outstanding_principal",
	Help:      "Total outstanding loan principal across members.",
})

// ─── Persistence ────────────────────────────────────────────────────────────

// SnapshotsSaved counts snapshot writes by result.
var SnapshotsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "chitfund",
	Subsystem: "storage",
	Name:      "snapshots_total",
	Help:      "Total snapshot writes by result.",
}, []string{"result"})

// ─── RPC ────────────────────────────────────────────────────────────────────

// RPCDuration tracks handler latency by procedure and connect code.
var RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "chitfund",
	Subsystem: "rpc",
	Name:      "duration_seconds",
	Help:      "RPC handler latency in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"procedure", "code"})

// ─── Auth & insights ────────────────────────────────────────────────────────

// LoginAttempts counts login attempts by method and result.
var LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "chitfund",
	Subsystem: "auth",
	Name:      "login_attempts_total",
	Help:      "Total login attempts by method and result.",
}, []string{"method", "result"})

// InsightRequests counts AI insight requests by result.
var InsightRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "chitfund",
	Subsystem: "insights",
	Name:      "requests_total",
	Help:      "Total AI insight requests by result.",
}, []string{"result"})
