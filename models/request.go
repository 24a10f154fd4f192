package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionMintRequests = "mintRequests"
)

const (
	DefaultMaxRetries int64 = 3
	// DefaultMaxBatchSize is the largest number of requests the reward vault
	// accepts in a single batchTransfer or batchBurn call.
	DefaultMaxBatchSize int64 = 50
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusClaimed   Status = "claimed"
	StatusSubmitted Status = "submitted"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type Kind string

const (
	KindFirstTimeMint Kind = "first_time_mint"
	KindAnnualMint    Kind = "annual_mint"
	KindRewardPayout  Kind = "reward_payout"
	KindBatchBurn     Kind = "batch_burn"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindFirstTimeMint, KindAnnualMint, KindRewardPayout, KindBatchBurn:
		return true
	}
	return false
}

// IsBatchable reports whether requests of this kind may share one chain
// transaction with other requests of the same kind.
func (k Kind) IsBatchable() bool {
	return k == KindRewardPayout || k == KindBatchBurn
}

// IsOneShot reports whether the reward vault enforces at-most-once semantics
// for this kind, so a revert may just mean the mint already happened.
func (k Kind) IsOneShot() bool {
	return k == KindFirstTimeMint || k == KindAnnualMint
}

// lower value claims first
const (
	PriorityFirstTimeMint int64 = 10
	PriorityAnnualMint    int64 = 20
	PriorityRewardPayout  int64 = 50
	PriorityBatchBurn     int64 = 90
)

func DefaultPriority(k Kind) int64 {
	switch k {
	case KindFirstTimeMint:
		return PriorityFirstTimeMint
	case KindAnnualMint:
		return PriorityAnnualMint
	case KindRewardPayout:
		return PriorityRewardPayout
	case KindBatchBurn:
		return PriorityBatchBurn
	}
	return PriorityBatchBurn
}

type MintRequest struct {
	Id              *primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID          string              `bson:"user_id" json:"user_id"`
	WalletAddress   string              `bson:"wallet_address" json:"wallet_address"`
	Kind            Kind                `bson:"kind" json:"kind"`
	Amount          string              `bson:"amount" json:"amount"`
	Proof           *Proof              `bson:"proof,omitempty" json:"proof,omitempty"`
	DeviceID        string              `bson:"device_id" json:"device_id"`
	IPAddress       string              `bson:"ip_address" json:"ip_address"`
	Status          Status              `bson:"status" json:"status"`
	TransactionHash string              `bson:"transaction_hash" json:"transaction_hash"`
	ChunkID         string              `bson:"chunk_id" json:"chunk_id"`
	Nonce           string              `bson:"nonce" json:"nonce"`
	RetryCount      int64               `bson:"retry_count" json:"retry_count"`
	MaxRetries      int64               `bson:"max_retries" json:"max_retries"`
	Priority        int64               `bson:"priority" json:"priority"`
	NotBefore       time.Time           `bson:"not_before" json:"not_before"`
	ErrorMessage    string              `bson:"error_message" json:"error_message"`
	DedupKey        string              `bson:"dedup_key" json:"dedup_key"`
	Active          bool                `bson:"active" json:"active"`
	Supersedes      *primitive.ObjectID `bson:"supersedes,omitempty" json:"supersedes,omitempty"`
	ClaimedBy       string              `bson:"claimed_by" json:"claimed_by"`
	ClaimedAt       time.Time           `bson:"claimed_at" json:"claimed_at"`
	SubmittedAt     time.Time           `bson:"submitted_at" json:"submitted_at"`
	CompletedAt     time.Time           `bson:"completed_at" json:"completed_at"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}

// BatchReport summarizes one scheduler pass over the queue.
type BatchReport struct {
	Processed int64 `json:"processed"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Requeued  int64 `json:"requeued"`
}

func (r *BatchReport) Add(other BatchReport) {
	r.Processed += other.Processed
	r.Completed += other.Completed
	r.Failed += other.Failed
	r.Requeued += other.Requeued
}
