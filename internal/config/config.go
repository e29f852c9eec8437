package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Store identity — stamped onto every Sale as the operator label.
	StoreName     string `mapstructure:"STORE_NAME"`
	TerminalLabel string `mapstructure:"TERMINAL_LABEL"`

	// Persistence
	DataDir         string `mapstructure:"DATA_DIR"`
	SnapshotBackend string `mapstructure:"SNAPSHOT_BACKEND"` // file | redis
	SnapshotKey     string `mapstructure:"SNAPSHOT_KEY"`
	RedisURL        string `mapstructure:"REDIS_URL"`
	SeedOnEmpty     bool   `mapstructure:"SEED_ON_EMPTY"`

	// Workers
	WorkerPoolSize     int    `mapstructure:"WORKER_POOL_SIZE"`
	ReceiptStoragePath string `mapstructure:"RECEIPT_STORAGE_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORE_NAME", "TillPOS")
	viper.SetDefault("TERMINAL_LABEL", "Terminal 1")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("SNAPSHOT_BACKEND", "file")
	viper.SetDefault("SNAPSHOT_KEY", "tillpos:state")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("SEED_ON_EMPTY", true)
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("RECEIPT_STORAGE_PATH", "/tmp/tillpos/receipts")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
