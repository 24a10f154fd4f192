package app

import (
	"os"

	"github.com/HumansWindow/minting-service/common"
	"github.com/HumansWindow/minting-service/models"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var (
	Config models.Config
)

func InitConfig(configFile string, envFile string) {
	log.Debug("[CONFIG] Initializing config")
	readConfigFromConfigFile(configFile)
	readConfigFromENV(envFile)
	setQueueDefaults()
	readSignerFromGSM()
	validateConfig()
	log.Info("[CONFIG] Config initialized")
}

func readConfigFromConfigFile(configFile string) bool {
	if configFile == "" {
		log.Debug("[CONFIG] No config file provided")
		return false
	}
	log.Debug("[CONFIG] Reading config file: ", configFile)
	var yamlFile, err = os.ReadFile(configFile)
	if err != nil {
		log.Fatalf("[CONFIG] Error reading config file %q: %s", configFile, err.Error())
	}
	err = yaml.Unmarshal(yamlFile, &Config)
	if err != nil {
		log.Fatalf("[CONFIG] Error unmarshalling config file %q: %s", configFile, err.Error())
	}
	return true
}

func setQueueDefaults() {
	if Config.Queue.MaxRetries == 0 {
		Config.Queue.MaxRetries = models.DefaultMaxRetries
	}
	if Config.Queue.BaseDelayMillis == 0 {
		Config.Queue.BaseDelayMillis = 30000
	}
	if Config.Queue.MaxDelayMillis == 0 {
		Config.Queue.MaxDelayMillis = 3600000
	}
	if Config.Queue.ClaimBatchSize == 0 {
		Config.Queue.ClaimBatchSize = 100
	}
	if Config.Queue.MaxBatchSize == 0 {
		Config.Queue.MaxBatchSize = models.DefaultMaxBatchSize
	}
	if Config.Queue.LeaseTimeoutMillis == 0 {
		Config.Queue.LeaseTimeoutMillis = 120000
	}
	if Config.Queue.ConfirmationTimeoutMillis == 0 {
		Config.Queue.ConfirmationTimeoutMillis = 120000
	}
	if Config.Queue.SubmittedTimeoutMillis == 0 {
		Config.Queue.SubmittedTimeoutMillis = 600000
	}
	if Config.Ethereum.RPCTimeoutMillis == 0 {
		Config.Ethereum.RPCTimeoutMillis = 10000
	}
	if Config.Ethereum.DefaultGasLimit == 0 {
		Config.Ethereum.DefaultGasLimit = 300000
	}
}

func validateConfig() {
	log.Debug("[CONFIG] Validating config")
	if Config.MongoDB.URI == "" {
		log.Fatal("[CONFIG] MongoDB.URI is required")
	}
	if Config.MongoDB.Database == "" {
		log.Fatal("[CONFIG] MongoDB.Database is required")
	}
	if Config.MongoDB.TimeoutMillis == 0 {
		log.Fatal("[CONFIG] MongoDB.TimeoutMillis is required")
	}
	if Config.Ethereum.RPCURL == "" {
		log.Fatal("[CONFIG] Ethereum.RPCURL is required")
	}
	if Config.Ethereum.ChainID == "" {
		log.Fatal("[CONFIG] Ethereum.ChainID is required")
	}
	if Config.Ethereum.PrivateKey == "" && Config.Ethereum.Mnemonic == "" && Config.Ethereum.GcpKmsKeyName == "" {
		log.Fatal("[CONFIG] One of Ethereum.PrivateKey, Ethereum.Mnemonic or Ethereum.GcpKmsKeyName is required")
	}
	if !common.IsValidEthereumAddress(Config.Ethereum.RewardVaultAddress) {
		log.Fatal("[CONFIG] Ethereum.RewardVaultAddress is invalid")
	}
	if Config.Queue.MaxBatchSize > models.DefaultMaxBatchSize {
		log.Fatal("[CONFIG] Queue.MaxBatchSize is above the chain batch limit")
	}
	if Config.Queue.BaseDelayMillis > Config.Queue.MaxDelayMillis {
		log.Fatal("[CONFIG] Queue.BaseDelayMillis is above Queue.MaxDelayMillis")
	}
	if Config.HealthCheck.IntervalMillis == 0 {
		log.Fatal("[CONFIG] HealthCheck.IntervalMillis is required")
	}
	if Config.BatchScheduler.Enabled && Config.BatchScheduler.IntervalMillis == 0 {
		log.Fatal("[CONFIG] BatchScheduler.IntervalMillis is required")
	}
	if Config.Confirmer.Enabled && Config.Confirmer.IntervalMillis == 0 {
		log.Fatal("[CONFIG] Confirmer.IntervalMillis is required")
	}
	if Config.API.Enabled && Config.API.Port == 0 {
		log.Fatal("[CONFIG] API.Port is required")
	}
	log.Debug("[CONFIG] Config validated")
}
