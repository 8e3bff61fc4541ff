// Package config provides configuration management for the relocator service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/relocator/relocator/pkg/errors"
)

// Config holds all configuration for the application.
type Config struct {
	Planner PlannerConfig `mapstructure:"planner"`
	Audit   AuditConfig   `mapstructure:"audit"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

// PlannerConfig bounds the optional concurrent successor expansion and
// gives the CLI a soft wall-clock budget for the search.
type PlannerConfig struct {
	MaxWorkers    int           `mapstructure:"max_workers"`
	SearchTimeout time.Duration `mapstructure:"search_timeout"`
}

// AuditConfig selects the backend for the run-history repository.
type AuditConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Type     string `mapstructure:"type"` // sqlite, postgres, or mysql
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	MaxConns int    `mapstructure:"max_conns"`
}

// StorageConfig selects where a plan's JSON manifest is archived.
type StorageConfig struct {
	Type      string `mapstructure:"type"` // local or cos
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`
	Scheme    string `mapstructure:"scheme"`
	LocalPath string `mapstructure:"local_path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"` // json or text
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("relocator")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/relocator")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("Config file not found, using defaults")
		} else if os.IsNotExist(err) {
			fmt.Printf("Config file %s not found, using defaults\n", configPath)
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw bytes (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("planner.max_workers", 1)
	v.SetDefault("planner.search_timeout", "5m")

	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.type", "sqlite")
	v.SetDefault("audit.database", "./relocator.db")
	v.SetDefault("audit.max_conns", 10)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./relocator-plans")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Planner.MaxWorkers < 1 {
		return apperrors.New(apperrors.CodeConfigError, "planner.max_workers must be at least 1")
	}
	if c.Audit.Enabled {
		switch c.Audit.Type {
		case "sqlite", "postgres", "mysql":
		default:
			return apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("unsupported audit database type: %s", c.Audit.Type))
		}
	}
	switch c.Storage.Type {
	case "local", "cos":
	default:
		return apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("unsupported storage type: %s", c.Storage.Type))
	}
	return nil
}
