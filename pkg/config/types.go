// Package config provides configuration loading and validation for apacheaccess.
package config

import (
	"time"

	"github.com/ccollicutt/apacheaccess/pkg/query"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Input is the access log path. Empty means standard input.
	Input string `yaml:"input,omitempty"`

	// Output is the destination path. Empty means standard output.
	Output string `yaml:"output,omitempty"`

	// Format is the output encoding (json or msgpack).
	Format string `yaml:"format,omitempty"`

	// Filter is an optional JMESPath expression selecting records.
	Filter string `yaml:"filter,omitempty"`

	// SignedOffsets applies negative UTC offsets as negative. When false,
	// every offset is read as positive, matching existing output.
	SignedOffsets bool `yaml:"signed_offsets,omitempty"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`

	// compiledFilter is populated during validation.
	compiledFilter *query.Filter
}

// CompiledFilter returns the filter compiled during validation.
func (c *Config) CompiledFilter() *query.Filter {
	return c.compiledFilter
}

// Output formats.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerAlways fires after every run (default).
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerOnErrors fires only when some lines failed to parse.
	WebhookTriggerOnErrors WebhookTrigger = "on_errors"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint that receives the rendered document.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "always" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
