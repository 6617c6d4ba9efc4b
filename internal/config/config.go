package config

import (
	"os"
	"strconv"

	"extfin/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Paths  PathConfig
	Ops    OpsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// PathConfig holds file system paths for the session's data
type PathConfig struct {
	// DataFile is the default dataset loaded at startup. An upload through
	// the API replaces the in-memory dataset but never touches this file.
	DataFile string
	// MappingFile is the optional indicator-code to friendly-name CSV.
	MappingFile string
}

// OpsConfig holds the operational endpoint settings (health, pprof)
type OpsConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("SERVER_PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Paths: PathConfig{
			DataFile:    getEnvOrDefault("DATA_FILE", "External Debt Dataset.csv"),
			MappingFile: getEnvOrDefault("MAPPING_FILE", "debt_code_mapping.csv"),
		},
		Ops: OpsConfig{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", false),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validate(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("SERVER_PORT cannot be empty")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("SERVER_PORT must be numeric: " + config.Server.Port)
	}
	if config.Ops.Enabled {
		if _, err := strconv.Atoi(config.Ops.Port); err != nil {
			return errors.ConfigInvalid("OPS_PORT must be numeric: " + config.Ops.Port)
		}
	}
	if config.Paths.DataFile == "" {
		return errors.ConfigInvalid("DATA_FILE cannot be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
