package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Chain     ChainConfig     `mapstructure:"chain"`
	Contracts ContractsConfig `mapstructure:"contracts"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ChainConfig contains Ethereum client settings
type ChainConfig struct {
	RPCURL        string        `mapstructure:"rpc_url"`
	ChainID       int64         `mapstructure:"chain_id"`
	PrivateKey    string        `mapstructure:"private_key"`
	GasLimit      uint64        `mapstructure:"gas_limit"`
	MaxGasPrice   string        `mapstructure:"max_gas_price"`
	MiningTimeout time.Duration `mapstructure:"mining_timeout"`
	ArtifactsDir  string        `mapstructure:"artifacts_dir"`
}

// ContractsConfig contains the addresses of the predeployed factory and
// service contracts. The factories sit at well known addresses; every
// issuer, asset, campaign and payout manager instance is discovered
// through them at runtime.
type ContractsConfig struct {
	IssuerFactory        string `mapstructure:"issuer_factory"`
	AssetFactory         string `mapstructure:"asset_factory"`
	CfManagerFactory     string `mapstructure:"cf_manager_factory"`
	PayoutManagerFactory string `mapstructure:"payout_manager_factory"`
	DeployerService      string `mapstructure:"deployer_service"`
	Stablecoin           string `mapstructure:"stablecoin"`
	WalletApprover       string `mapstructure:"wallet_approver"`
}

// MetricsConfig contains monitoring and metrics settings
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Chain defaults
	viper.SetDefault("chain.chain_id", 31337)
	viper.SetDefault("chain.gas_limit", 5000000)
	viper.SetDefault("chain.mining_timeout", "2m")
	viper.SetDefault("chain.artifacts_dir", "artifacts")

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.port", 9090)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output_path", "stdout")
}

func validate(config *Config) error {
	if config.Chain.RPCURL == "" {
		return fmt.Errorf("chain.rpc_url is required")
	}
	if config.Contracts.IssuerFactory == "" {
		return fmt.Errorf("contracts.issuer_factory is required")
	}
	if config.Contracts.AssetFactory == "" {
		return fmt.Errorf("contracts.asset_factory is required")
	}
	if config.Contracts.CfManagerFactory == "" {
		return fmt.Errorf("contracts.cf_manager_factory is required")
	}
	if config.Contracts.PayoutManagerFactory == "" {
		return fmt.Errorf("contracts.payout_manager_factory is required")
	}
	return nil
}
