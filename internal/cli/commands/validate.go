package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/apacheaccess/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an apacheaccess configuration file without parsing any log.

Checks:
  - YAML syntax
  - Output format
  - Filter expression (JMESPath)
  - Webhook URLs and triggers
  - Input file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, _ = fmt.Fprintf(out, "\nConfiguration valid!\n")
	_, _ = fmt.Fprintf(out, "  Input:          %s\n", sourceName(cfg.Input))
	_, _ = fmt.Fprintf(out, "  Output:         %s\n", destinationName(cfg.Output))
	_, _ = fmt.Fprintf(out, "  Format:         %s\n", cfg.Format)
	_, _ = fmt.Fprintf(out, "  Signed offsets: %t\n", cfg.SignedOffsets)
	if cfg.Filter != "" {
		_, _ = fmt.Fprintf(out, "  Filter:         %s\n", cfg.Filter)
	}

	if len(cfg.Webhooks) > 0 {
		_, _ = fmt.Fprintf(out, "\nWebhooks:\n")
		for i, wh := range cfg.Webhooks {
			name := wh.Name
			if name == "" {
				name = wh.URL
			}
			_, _ = fmt.Fprintf(out, "  %d. [%s] %s\n", i+1, wh.Trigger, name)
		}
	}

	if cfg.Input != "" {
		if info, err := os.Stat(cfg.Input); err != nil || !info.Mode().IsRegular() {
			_, _ = fmt.Fprintf(out, "\nWarning: input %s is not a readable file\n", cfg.Input)
		}
	}

	return nil
}

func destinationName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
