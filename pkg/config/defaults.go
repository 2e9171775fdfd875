package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default values for configuration.
const (
	DefaultFormat         = FormatJSON
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvFormat        = "APACHEACCESS_FORMAT"
	EnvFilter        = "APACHEACCESS_FILTER"
	EnvSignedOffsets = "APACHEACCESS_SIGNED_OFFSETS"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Format: DefaultFormat,
	}
}

// FromEnvironment returns the defaults with environment overrides applied,
// for runs without a config file. The result is not validated.
func FromEnvironment() (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if format := os.Getenv(EnvFormat); format != "" {
		c.Format = format
	}

	if filter := os.Getenv(EnvFilter); filter != "" {
		c.Filter = filter
	}

	if v := os.Getenv(EnvSignedOffsets); v != "" {
		signed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSignedOffsets, err)
		}
		c.SignedOffsets = signed
	}

	return nil
}
