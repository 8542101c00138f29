package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DefaultDatabaseURL is the fallback connection string. It only works on
// a developer machine; live deployments are expected to override it.
const DefaultDatabaseURL = "postgres://localhost:5432/training_planner"

// DatabaseConfig selects the data source. UseMock swaps the Postgres
// repositories for the seeded in-memory provider, the offline
// development mode.
type DatabaseConfig struct {
	URL     string `mapstructure:"url"`
	UseMock bool   `mapstructure:"use_mock"`
}

// ArchiveConfig points at the S3-compatible bucket that stores
// generated exports. Archiving is optional; an empty bucket disables it.
type ArchiveConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
}

// Enabled reports whether export archiving is configured.
func (c ArchiveConfig) Enabled() bool {
	return c.Bucket != ""
}

// JWTConfig defines JWT specific configuration.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Nested keys map to env vars, e.g. database.url -> DATABASE_URL,
	// jwt.expiration -> JWT_EXPIRATION.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.url", DefaultDatabaseURL)
	viper.SetDefault("database.use_mock", false)
	viper.SetDefault("jwt.expiration", "1h")
	viper.SetDefault("log.level", "info")

	err = viper.ReadInConfig()
	// A missing file is fine, env vars and defaults carry the config.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
