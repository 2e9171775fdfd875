package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/apacheaccess/pkg/config"
	"github.com/ccollicutt/apacheaccess/pkg/output"
	"github.com/ccollicutt/apacheaccess/pkg/parser"
	"github.com/ccollicutt/apacheaccess/pkg/webhook"
)

// ParseOptions holds command-line options for parsing a log.
type ParseOptions struct {
	Input         string
	Output        string
	ConfigPath    string
	Format        string
	Filter        string
	SignedOffsets bool
	Verbose       bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewParseCommand creates the command that parses an access log. It serves
// as the root command of the CLI.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "apacheaccess",
		Short: "Apache HTTP Server Access Log Parser",
		Long: `apacheaccess parses Apache HTTP Server access logs in Common or Combined
Log Format and prints them as JSON.

The document maps each record's index to the record's own JSON text:

  {"0": "{\"ip\": \"127.0.0.1\", \"identd\": \"-\", ...}", "1": ...}

Lines that cannot be parsed are reported as
"apacheaccess: Syntax error in line N" and skipped.

Exit codes:
  0   - Log parsed (malformed lines do not change the status)
  2   - Configuration or usage error
  255 - Input or output path could not be used`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input from file (default: standard input)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "save the output to a file (default: standard output)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", config.DefaultFormat, "Output format (json|msgpack)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "Keep only records matching a JMESPath expression (e.g. \"status == '404'\")")
	cmd.Flags().BoolVar(&opts.SignedOffsets, "signed-offsets", false, "Apply negative UTC offsets as negative (default reads every offset as positive)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log progress to standard error")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerAlways), "When to fire webhook (always|on_errors|never)")

	return cmd
}

func runParse(cmd *cobra.Command, opts *ParseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cfg, err := resolveConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}

	text, err := readInput(cfg.Input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	logger.Debug("read input", "source", sourceName(cfg.Input), "bytes", len(text))

	p := parser.New(parser.WithSignedOffsets(cfg.SignedOffsets))
	result := p.ParseLog(text)

	// Binary documents printed to stdout keep it free of diagnostics.
	diag := out
	if cfg.Output == "" && cfg.Format != config.FormatJSON {
		diag = cmd.ErrOrStderr()
	}
	for _, d := range result.Diagnostics {
		_, _ = fmt.Fprintf(diag, "apacheaccess: Syntax error in line %d\n", d.Line)
		logger.Debug("skipped line", "line", d.Physical, "error", d.Err)
	}

	records, err := cfg.CompiledFilter().Apply(result.Records)
	if err != nil {
		return fmt.Errorf("filtering records: %w", err)
	}
	logger.Debug("parsed log",
		"records", len(result.Records),
		"errors", len(result.Diagnostics),
		"kept", len(records),
	)

	formatter, err := createFormatter(cfg.Format)
	if err != nil {
		return err
	}

	var doc bytes.Buffer
	if err := formatter.Format(ctx, records, &doc); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if err := writeOutput(cfg.Output, out, doc.Bytes(), formatter); err != nil {
		return err
	}

	// Webhook failures are reported but never fail the run.
	sendWebhooks(ctx, cmd.ErrOrStderr(), logger, cfg.Webhooks, doc.Bytes(), formatter.ContentType(), len(result.Diagnostics) > 0)

	return nil
}

// resolveConfig reads the config file (or environment defaults), lets any
// flag the user set take precedence, and validates the merged result.
func resolveConfig(ctx context.Context, cmd *cobra.Command, opts *ParseOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.ConfigPath != "" {
		cfg, err = config.Read(ctx, opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg, err = config.FromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = opts.Input
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("format") {
		cfg.Format = opts.Format
	}
	if flags.Changed("filter") {
		cfg.Filter = opts.Filter
	}
	if flags.Changed("signed-offsets") {
		cfg.SignedOffsets = opts.SignedOffsets
	}
	cfg.Webhooks = collectWebhooks(cfg, opts)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readInput reads the whole log from path, or from stdin when path is empty.
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), nil
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", &IOError{Path: path, Reason: reasonNotFound, Err: err}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input path is expected
	if err != nil {
		return "", &IOError{Path: path, Reason: reasonPermissionDenied, Err: err}
	}
	return string(data), nil
}

// writeOutput writes the rendered document to path, or prints it to stdout
// when path is empty. Text documents printed to stdout end with a newline.
func writeOutput(path string, stdout io.Writer, doc []byte, formatter output.Formatter) error {
	if path == "" {
		if _, err := stdout.Write(doc); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if formatter.Name() == config.FormatJSON {
			_, _ = fmt.Fprintln(stdout)
		}
		return nil
	}

	if err := os.WriteFile(path, doc, 0o644); err != nil { // #nosec G306 -- output is not sensitive
		return &IOError{Path: path, Reason: reasonPermissionDenied, Err: err}
	}
	return nil
}

func createFormatter(format string) (output.Formatter, error) {
	switch format {
	case config.FormatJSON:
		return output.NewJSONFormatter(), nil
	case config.FormatMsgpack:
		return output.NewMsgpackFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use json or msgpack)", format)
	}
}

// sendWebhooks posts the document to the given webhooks.
func sendWebhooks(ctx context.Context, stderr io.Writer, logger *slog.Logger, webhooks []config.WebhookConfig, doc []byte, contentType string, hasErrors bool) {
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, hasErrors) {
			logger.Debug("webhook skipped", "url", wh.URL, "trigger", wh.Trigger)
			continue
		}

		resp := client.Send(ctx, doc, webhook.SendOptions{
			URL:         wh.URL,
			Token:       wh.Token,
			ContentType: contentType,
			Timeout:     wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			_, _ = fmt.Fprintf(stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			_, _ = fmt.Fprintf(stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook. The
// result is validated along with the rest of the config.
func collectWebhooks(cfg *config.Config, opts *ParseOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerAlways
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on its trigger.
func shouldFireWebhook(trigger config.WebhookTrigger, hasErrors bool) bool {
	switch trigger {
	case config.WebhookTriggerNever:
		return false
	case config.WebhookTriggerOnErrors:
		return hasErrors
	default:
		return true
	}
}

func sourceName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}
