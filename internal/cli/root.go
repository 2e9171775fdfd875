// Package cli provides the command-line interface for apacheaccess.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/apacheaccess/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		var ioErr *commands.IOError
		if errors.As(err, &ioErr) {
			// Path failures go to stdout, like syntax errors.
			_, _ = fmt.Fprintln(stdout, ioErr.Error())
			return commands.ExitIOError
		}
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2 // Configuration or usage error
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := commands.NewParseCommand()

	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
