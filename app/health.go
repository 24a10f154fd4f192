package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/HumansWindow/minting-service/common"
	"github.com/HumansWindow/minting-service/models"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const HealthCheckName = "HEALTH CHECK"

// HealthCheckRunner periodically posts a health document for this engine
// instance so operators can see which services are alive and what they last
// synced.
type HealthCheckRunner struct {
	instanceId    string
	hostname      string
	signerAddress string
	vaultAddress  string
	services      []Service
}

func (x *HealthCheckRunner) Run() {
	x.PostHealth()
}

func (x *HealthCheckRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{}
}

func (x *HealthCheckRunner) FindLastHealth() (models.Health, error) {
	var health models.Health
	filter := bson.M{
		"instance_id": x.instanceId,
		"hostname":    x.hostname,
	}
	err := DB.FindOne(models.CollectionHealthChecks, filter, &health)
	return health, err
}

func (x *HealthCheckRunner) SetServices(services []Service) {
	x.services = services
}

func (x *HealthCheckRunner) ServiceHealths() []models.ServiceHealth {
	var serviceHealths []models.ServiceHealth
	for _, service := range x.services {
		health := service.Health()
		if health.Name == EmptyServiceName || health.Name == "" {
			continue
		}
		serviceHealths = append(serviceHealths, health)
	}
	return serviceHealths
}

func (x *HealthCheckRunner) PostHealth() bool {
	log.Debug("[HEALTH CHECK] Posting health")

	filter := bson.M{
		"instance_id": x.instanceId,
		"hostname":    x.hostname,
	}

	onInsert := bson.M{
		"instance_id":    x.instanceId,
		"hostname":       x.hostname,
		"signer_address": x.signerAddress,
		"vault_address":  x.vaultAddress,
		"created_at":     time.Now(),
	}

	onUpdate := bson.M{
		"healthy":         true,
		"service_healths": x.ServiceHealths(),
		"updated_at":      time.Now(),
	}

	update := bson.M{"$set": onUpdate, "$setOnInsert": onInsert}

	_, err := DB.UpsertOne(models.CollectionHealthChecks, filter, update)
	if err != nil {
		log.Error("[HEALTH CHECK] Error posting health: ", err)
		return false
	}

	log.Debug("[HEALTH CHECK] Posted health")
	return true
}

func NewHealthCheck() *HealthCheckRunner {
	log.Debug("[HEALTH CHECK] Initializing health check")

	signer, err := CreateEthereumSigner()
	if err != nil {
		log.Fatal("[HEALTH CHECK] Error creating signer: ", err)
	}
	defer signer.Destroy()

	ethAddress := signer.EthAddress().Hex()

	if !common.IsValidEthereumAddress(Config.Ethereum.RewardVaultAddress) {
		log.Fatal("[HEALTH CHECK] Invalid reward vault address")
	}

	hostname, err := os.Hostname()
	if err != nil {
		log.Fatal("[HEALTH CHECK] Error getting hostname: ", err)
	}

	instanceId := fmt.Sprintf("minting-engine-%s", strings.ToLower(ethAddress[2:10]))

	x := &HealthCheckRunner{
		instanceId:    instanceId,
		hostname:      hostname,
		signerAddress: common.Ensure0xPrefix(ethAddress),
		vaultAddress:  common.Ensure0xPrefix(Config.Ethereum.RewardVaultAddress),
	}

	log.Info("[HEALTH CHECK] Initialized health check, instance id: ", instanceId)

	return x
}
