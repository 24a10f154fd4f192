package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// queue intake

	RequestsEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minting_requests_enqueued_total",
			Help: "Total number of mint requests accepted into the queue",
		},
		[]string{"kind"},
	)

	DuplicateEnqueues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minting_requests_duplicate_total",
			Help: "Total number of enqueues rejected by the dedup constraint",
		},
		[]string{"kind"},
	)

	QueueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "minting_queue_depth",
			Help: "Number of mint requests currently in each status",
		},
		[]string{"status"},
	)

	// settlement

	ChunksSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minting_chunks_submitted_total",
			Help: "Total number of settlement chunks submitted on chain",
		},
		[]string{"kind"},
	)

	SettlementResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minting_settlement_total",
			Help: "Total number of settled requests by terminal result",
		},
		[]string{"result"},
	)

	ClaimReclaims = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minting_claim_reclaims_total",
		Help: "Total number of claimed requests returned to pending after lease expiry",
	})

	ResourceExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minting_resource_exhausted_total",
		Help: "Total number of settlement cycles halted by an exhausted resource such as signer gas balance",
	})

	// signer

	SignerBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "minting_signer_balance_wei",
		Help: "Last observed signer balance in wei",
	})

	SignerNonce = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "minting_signer_nonce",
		Help: "Last nonce reserved by the nonce manager",
	})
)
