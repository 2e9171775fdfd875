package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/apacheaccess/internal/cli/commands"
)

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()

	if root.Use != "apacheaccess" {
		t.Errorf("Use = %q, want %q", root.Use, "apacheaccess")
	}
	if !root.SilenceErrors || !root.SilenceUsage {
		t.Error("root command should silence cobra errors and usage")
	}

	for _, name := range []string{"validate", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Find(%q) = %v, %v; want subcommand", name, cmd, err)
		}
	}

	for _, flag := range []string{"input", "output"} {
		if root.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestRun_MissingInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.log")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", path}, strings.NewReader(""), &stdout, &stderr)

	if code != commands.ExitIOError {
		t.Errorf("exit code = %d, want %d", code, commands.ExitIOError)
	}
	if want := "apacheaccess: " + path + ": No such file or directory\n"; stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr.String())
	}
}

func TestRun_UsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--format", "xml"}, strings.NewReader(""), &stdout, &stderr)

	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Errorf("stderr = %q, want Error: prefix", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestRun_Success(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{}, strings.NewReader(""), &stdout, &stderr)

	if code != 0 {
		t.Errorf("exit code = %d, want 0 (stderr %q)", code, stderr.String())
	}
	if stdout.String() != "{}\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "{}\n")
	}
}
