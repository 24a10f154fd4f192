package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionHealthChecks = "healthchecks"
)

type ServiceHealth struct {
	Name           string    `bson:"name" json:"name"`
	Healthy        bool      `bson:"healthy" json:"healthy"`
	EthBlockNumber string    `bson:"eth_block_number" json:"eth_block_number"`
	QueueDepth     string    `bson:"queue_depth" json:"queue_depth"`
	LastSyncTime   time.Time `bson:"last_sync_time" json:"last_sync_time"`
	NextSyncTime   time.Time `bson:"next_sync_time" json:"next_sync_time"`
}

// RunnerStatus is the runner-reported snapshot copied into ServiceHealth on
// every sync.
type RunnerStatus struct {
	EthBlockNumber string
	QueueDepth     string
}

type Health struct {
	Id             *primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	InstanceID     string              `bson:"instance_id" json:"instance_id"`
	Hostname       string              `bson:"hostname" json:"hostname"`
	SignerAddress  string              `bson:"signer_address" json:"signer_address"`
	VaultAddress   string              `bson:"vault_address" json:"vault_address"`
	Healthy        bool                `bson:"healthy" json:"healthy"`
	ServiceHealths []ServiceHealth     `bson:"service_healths" json:"service_healths"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}
