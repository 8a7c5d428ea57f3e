package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	txsAppliedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tally",
		Name:      "transactions_applied_total",
		Help:      "Number of spending transactions applied to the ledger.",
	})
	coinbasesAppliedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tally",
		Name:      "coinbases_applied_total",
		Help:      "Number of coinbases applied to the ledger.",
	})
	feesCollectedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tally",
		Name:      "fees_collected_total",
		Help:      "Cumulative fees collected by applied transactions.",
	})
	mintedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tally",
		Name:      "minted_total",
		Help:      "Cumulative amount minted by applied coinbases.",
	})
)
