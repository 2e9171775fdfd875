package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/apacheaccess/pkg/query"
)

// Load reads and validates a configuration file.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Read parses a configuration file and applies environment overrides without
// validating it. Callers that merge further settings call Validate once they
// are done.
func Read(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and compiles the filter.
func Validate(cfg *Config) error {
	switch cfg.Format {
	case FormatJSON, FormatMsgpack:
	case "":
		cfg.Format = DefaultFormat
	default:
		return fmt.Errorf("format: unknown format %q (use json or msgpack)", cfg.Format)
	}

	filter, err := query.Compile(cfg.Filter)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	cfg.compiledFilter = filter

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	switch wh.Trigger {
	case WebhookTriggerAlways, WebhookTriggerOnErrors, WebhookTriggerNever:
	case "":
		wh.Trigger = WebhookTriggerAlways
	default:
		return fmt.Errorf("invalid trigger %q (must be always, on_errors, or never)", wh.Trigger)
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands a token given as ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}
