package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReconcilePasses counts completed reconciliation passes
	ReconcilePasses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "valora",
		Subsystem: "reconciler",
		Name:      "passes_total",
		Help:      "Number of completed reconciliation passes",
	})

	// DepositMatches counts observed transactions matched to a deposit record
	DepositMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "valora",
		Subsystem: "reconciler",
		Name:      "matches_total",
		Help:      "Number of deposits matched to on-chain transactions",
	}, []string{"currency", "status"})

	// WalletFetchFailures counts explorer fetch failures per currency
	WalletFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "valora",
		Subsystem: "reconciler",
		Name:      "wallet_fetch_failures_total",
		Help:      "Number of failed explorer lookups per currency",
	}, []string{"currency"})

	// DepositsExpired counts deposit records swept to expired
	DepositsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "valora",
		Subsystem: "deposits",
		Name:      "expired_total",
		Help:      "Number of deposit records expired by the sweep",
	})
)
