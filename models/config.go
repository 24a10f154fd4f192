package models

type Config struct {
	GoogleSecretManager GoogleSecretManagerConfig `yaml:"google_secret_manager" json:"google_secret_manager"`
	HealthCheck         HealthCheckConfig         `yaml:"health_check" json:"health_check"`
	Logger              LoggerConfig              `yaml:"logger" json:"logger"`
	MongoDB             MongoConfig               `yaml:"mongodb" json:"mongo_db"`
	Ethereum            EthereumConfig            `yaml:"ethereum" json:"ethereum"`
	Queue               QueueConfig               `yaml:"queue" json:"queue"`
	BatchScheduler      ServiceConfig             `yaml:"batch_scheduler" json:"batch_scheduler"`
	Confirmer           ServiceConfig             `yaml:"confirmer" json:"confirmer"`
	API                 APIConfig                 `yaml:"api" json:"api"`
}

type GoogleSecretManagerConfig struct {
	Enabled          bool   `yaml:"enabled" json:"enabled"`
	ProjectId        string `yaml:"project_id" json:"project_id"`
	SignerSecretName string `yaml:"signer_secret_name" json:"signer_secret_name"`
}

type HealthCheckConfig struct {
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
	ReadLastHealth bool  `yaml:"read_last_health" json:"read_last_health"`
}

type LoggerConfig struct {
	Level string `yaml:"level" json:"level"`
}

type MongoConfig struct {
	URI           string `yaml:"uri" json:"uri"`
	Database      string `yaml:"database" json:"database"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type EthereumConfig struct {
	RPCURL              string `yaml:"rpc_url" json:"rpcurl"`
	RPCTimeoutMillis    int64  `yaml:"rpc_timeout_ms" json:"rpc_timeout_ms"`
	ChainID             string `yaml:"chain_id" json:"chain_id"`
	PrivateKey          string `yaml:"private_key" json:"private_key"`
	Mnemonic            string `yaml:"mnemonic" json:"mnemonic"`
	GcpKmsKeyName       string `yaml:"gcp_kms_key_name" json:"gcp_kms_key_name"`
	RewardVaultAddress  string `yaml:"reward_vault_address" json:"reward_vault_address"`
	DefaultGasLimit     uint64 `yaml:"default_gas_limit" json:"default_gas_limit"`
	FallbackGasPriceWei string `yaml:"fallback_gas_price_wei" json:"fallback_gas_price_wei"`
	MinSignerBalanceWei string `yaml:"min_signer_balance_wei" json:"min_signer_balance_wei"`
}

type QueueConfig struct {
	MaxRetries                int64 `yaml:"max_retries" json:"max_retries"`
	BaseDelayMillis           int64 `yaml:"base_delay_ms" json:"base_delay_ms"`
	MaxDelayMillis            int64 `yaml:"max_delay_ms" json:"max_delay_ms"`
	ClaimBatchSize            int64 `yaml:"claim_batch_size" json:"claim_batch_size"`
	MaxBatchSize              int64 `yaml:"max_batch_size" json:"max_batch_size"`
	LeaseTimeoutMillis        int64 `yaml:"lease_timeout_ms" json:"lease_timeout_ms"`
	ConfirmationTimeoutMillis int64 `yaml:"confirmation_timeout_ms" json:"confirmation_timeout_ms"`
	SubmittedTimeoutMillis    int64 `yaml:"submitted_timeout_ms" json:"submitted_timeout_ms"`
}

type APIConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	Port       int64  `yaml:"port" json:"port"`
	AdminToken string `yaml:"admin_token" json:"admin_token"`
}

type ServiceConfig struct {
	Enabled        bool  `yaml:"enabled" json:"enabled"`
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}
