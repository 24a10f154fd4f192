package app

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func readConfigFromENV(envFile string) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			log.Warn("[ENV] Error loading .env file: ", err.Error())
		}
	}

	// mongodb
	if os.Getenv("MONGODB_URI") != "" {
		Config.MongoDB.URI = os.Getenv("MONGODB_URI")
	}
	if os.Getenv("MONGODB_DATABASE") != "" {
		Config.MongoDB.Database = os.Getenv("MONGODB_DATABASE")
	}
	if os.Getenv("MONGODB_TIMEOUT_MS") != "" {
		timeoutMillis, err := strconv.ParseInt(os.Getenv("MONGODB_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing MONGODB_TIMEOUT_MS: ", err.Error())
		} else {
			Config.MongoDB.TimeoutMillis = timeoutMillis
		}
	}

	// ethereum
	if os.Getenv("ETH_RPC_URL") != "" {
		Config.Ethereum.RPCURL = os.Getenv("ETH_RPC_URL")
	}
	if os.Getenv("ETH_RPC_TIMEOUT_MS") != "" {
		timeoutMillis, err := strconv.ParseInt(os.Getenv("ETH_RPC_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing ETH_RPC_TIMEOUT_MS: ", err.Error())
		} else {
			Config.Ethereum.RPCTimeoutMillis = timeoutMillis
		}
	}
	if os.Getenv("ETH_CHAIN_ID") != "" {
		Config.Ethereum.ChainID = os.Getenv("ETH_CHAIN_ID")
	}
	if os.Getenv("ETH_PRIVATE_KEY") != "" {
		Config.Ethereum.PrivateKey = os.Getenv("ETH_PRIVATE_KEY")
	}
	if os.Getenv("ETH_MNEMONIC") != "" {
		Config.Ethereum.Mnemonic = os.Getenv("ETH_MNEMONIC")
	}
	if os.Getenv("ETH_GCP_KMS_KEY_NAME") != "" {
		Config.Ethereum.GcpKmsKeyName = os.Getenv("ETH_GCP_KMS_KEY_NAME")
	}
	if os.Getenv("ETH_REWARD_VAULT_ADDRESS") != "" {
		Config.Ethereum.RewardVaultAddress = os.Getenv("ETH_REWARD_VAULT_ADDRESS")
	}
	if os.Getenv("ETH_DEFAULT_GAS_LIMIT") != "" {
		gasLimit, err := strconv.ParseUint(os.Getenv("ETH_DEFAULT_GAS_LIMIT"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing ETH_DEFAULT_GAS_LIMIT: ", err.Error())
		} else {
			Config.Ethereum.DefaultGasLimit = gasLimit
		}
	}
	if os.Getenv("ETH_FALLBACK_GAS_PRICE_WEI") != "" {
		Config.Ethereum.FallbackGasPriceWei = os.Getenv("ETH_FALLBACK_GAS_PRICE_WEI")
	}
	if os.Getenv("ETH_MIN_SIGNER_BALANCE_WEI") != "" {
		Config.Ethereum.MinSignerBalanceWei = os.Getenv("ETH_MIN_SIGNER_BALANCE_WEI")
	}

	// queue
	if os.Getenv("QUEUE_MAX_RETRIES") != "" {
		maxRetries, err := strconv.ParseInt(os.Getenv("QUEUE_MAX_RETRIES"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing QUEUE_MAX_RETRIES: ", err.Error())
		} else {
			Config.Queue.MaxRetries = maxRetries
		}
	}
	if os.Getenv("QUEUE_BASE_DELAY_MS") != "" {
		baseDelay, err := strconv.ParseInt(os.Getenv("QUEUE_BASE_DELAY_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing QUEUE_BASE_DELAY_MS: ", err.Error())
		} else {
			Config.Queue.BaseDelayMillis = baseDelay
		}
	}
	if os.Getenv("QUEUE_MAX_DELAY_MS") != "" {
		maxDelay, err := strconv.ParseInt(os.Getenv("QUEUE_MAX_DELAY_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing QUEUE_MAX_DELAY_MS: ", err.Error())
		} else {
			Config.Queue.MaxDelayMillis = maxDelay
		}
	}
	if os.Getenv("QUEUE_CLAIM_BATCH_SIZE") != "" {
		claimBatchSize, err := strconv.ParseInt(os.Getenv("QUEUE_CLAIM_BATCH_SIZE"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing QUEUE_CLAIM_BATCH_SIZE: ", err.Error())
		} else {
			Config.Queue.ClaimBatchSize = claimBatchSize
		}
	}
	if os.Getenv("QUEUE_MAX_BATCH_SIZE") != "" {
		maxBatchSize, err := strconv.ParseInt(os.Getenv("QUEUE_MAX_BATCH_SIZE"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing QUEUE_MAX_BATCH_SIZE: ", err.Error())
		} else {
			Config.Queue.MaxBatchSize = maxBatchSize
		}
	}
	if os.Getenv("QUEUE_LEASE_TIMEOUT_MS") != "" {
		leaseTimeout, err := strconv.ParseInt(os.Getenv("QUEUE_LEASE_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing QUEUE_LEASE_TIMEOUT_MS: ", err.Error())
		} else {
			Config.Queue.LeaseTimeoutMillis = leaseTimeout
		}
	}
	if os.Getenv("QUEUE_CONFIRMATION_TIMEOUT_MS") != "" {
		confirmationTimeout, err := strconv.ParseInt(os.Getenv("QUEUE_CONFIRMATION_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing QUEUE_CONFIRMATION_TIMEOUT_MS: ", err.Error())
		} else {
			Config.Queue.ConfirmationTimeoutMillis = confirmationTimeout
		}
	}
	if os.Getenv("QUEUE_SUBMITTED_TIMEOUT_MS") != "" {
		submittedTimeout, err := strconv.ParseInt(os.Getenv("QUEUE_SUBMITTED_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing QUEUE_SUBMITTED_TIMEOUT_MS: ", err.Error())
		} else {
			Config.Queue.SubmittedTimeoutMillis = submittedTimeout
		}
	}

	// batch scheduler
	if os.Getenv("BATCH_SCHEDULER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("BATCH_SCHEDULER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing BATCH_SCHEDULER_ENABLED: ", err.Error())
		} else {
			Config.BatchScheduler.Enabled = enabled
		}
	}
	if os.Getenv("BATCH_SCHEDULER_INTERVAL_MS") != "" {
		intervalMillis, err := strconv.ParseInt(os.Getenv("BATCH_SCHEDULER_INTERVAL_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing BATCH_SCHEDULER_INTERVAL_MS: ", err.Error())
		} else {
			Config.BatchScheduler.IntervalMillis = intervalMillis
		}
	}

	// confirmer
	if os.Getenv("CONFIRMER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("CONFIRMER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing CONFIRMER_ENABLED: ", err.Error())
		} else {
			Config.Confirmer.Enabled = enabled
		}
	}
	if os.Getenv("CONFIRMER_INTERVAL_MS") != "" {
		intervalMillis, err := strconv.ParseInt(os.Getenv("CONFIRMER_INTERVAL_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing CONFIRMER_INTERVAL_MS: ", err.Error())
		} else {
			Config.Confirmer.IntervalMillis = intervalMillis
		}
	}

	// api
	if os.Getenv("API_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("API_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing API_ENABLED: ", err.Error())
		} else {
			Config.API.Enabled = enabled
		}
	}
	if os.Getenv("API_PORT") != "" {
		port, err := strconv.ParseInt(os.Getenv("API_PORT"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing API_PORT: ", err.Error())
		} else {
			Config.API.Port = port
		}
	}
	if os.Getenv("API_ADMIN_TOKEN") != "" {
		Config.API.AdminToken = os.Getenv("API_ADMIN_TOKEN")
	}

	// health check
	if Config.HealthCheck.IntervalMillis == 0 {
		intervalMillis, err := strconv.ParseInt(os.Getenv("HEALTH_CHECK_INTERVAL_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing HEALTH_CHECK_INTERVAL_MS: ", err.Error())
		} else {
			Config.HealthCheck.IntervalMillis = intervalMillis
		}
	}
	if os.Getenv("HEALTH_CHECK_READ_LAST_HEALTH") != "" {
		readLastHealth, err := strconv.ParseBool(os.Getenv("HEALTH_CHECK_READ_LAST_HEALTH"))
		if err != nil {
			log.Warn("[ENV] Error parsing HEALTH_CHECK_READ_LAST_HEALTH: ", err.Error())
		} else {
			Config.HealthCheck.ReadLastHealth = readLastHealth
		}
	}

	// logging
	if Config.Logger.Level == "" {
		logLevel := os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			log.Warn("[ENV] Setting LogLevel to debug")
			Config.Logger.Level = "debug"
		} else {
			Config.Logger.Level = logLevel
		}
	}

	// google secret manager
	if !Config.GoogleSecretManager.Enabled && os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing GOOGLE_SECRET_MANAGER_ENABLED: ", err.Error())
		} else {
			Config.GoogleSecretManager.Enabled = enabled
		}
	}
	if Config.GoogleSecretManager.ProjectId == "" {
		Config.GoogleSecretManager.ProjectId = os.Getenv("GOOGLE_PROJECT_ID")
	}
	if Config.GoogleSecretManager.SignerSecretName == "" {
		Config.GoogleSecretManager.SignerSecretName = os.Getenv("GOOGLE_SIGNER_SECRET_NAME")
	}
}
