package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env     string
	DataDir string

	Log      LogConfig
	Auth     AuthConfig
	Receipts ReceiptsConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// AuthConfig tunes the authentication gate.
type AuthConfig struct {
	MaxFailedAttempts int
}

// ReceiptsConfig controls rendered receipt archiving.
type ReceiptsConfig struct {
	Enabled    bool
	StorageDir string
	ResultTTL  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.DataDir = v.GetString("DATA_DIR")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Auth = AuthConfig{
		MaxFailedAttempts: v.GetInt("AUTH_MAX_FAILED_ATTEMPTS"),
	}

	cfg.Receipts = ReceiptsConfig{
		Enabled:    v.GetBool("ENABLE_RECEIPTS"),
		StorageDir: v.GetString("RECEIPTS_STORAGE_DIR"),
		ResultTTL:  parseDuration(v.GetString("RECEIPTS_RESULT_TTL"), 30*24*time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("AUTH_MAX_FAILED_ATTEMPTS", 3)
	v.SetDefault("ENABLE_RECEIPTS", true)
	v.SetDefault("RECEIPTS_STORAGE_DIR", "./receipts")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
