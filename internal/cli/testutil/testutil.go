// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/lukasmwerner/harper/internal/cli/config"
	"github.com/lukasmwerner/harper/internal/cli/output"
	logtest "github.com/lukasmwerner/harper/internal/testutil"
)

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Result captures one command execution.
type Result struct {
	Stdout string
	Stderr string
}

// Execute runs cmd under a root command carrying the global flags, in a
// fresh temporary working directory so no harper.yaml is picked up. stdin
// feeds the command's input. It returns the captured output and the
// command's error.
func Execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (Result, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	return ExecuteHere(t, cmd, stdin, args...)
}

// ExecuteHere is like Execute but keeps the current working directory.
func ExecuteHere(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (Result, error) {
	t.Helper()

	root := newTestRoot(t)
	root.AddCommand(cmd)

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{cmd.Name()}, args...))

	err := root.ExecuteContext(context.Background())
	return Result{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

// newTestRoot mirrors the global flags of the harper root command.
func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()

	var cfgFile string
	root := &cobra.Command{
		Use: "harper",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logtest.NewTestLogger(t))
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "")
	pf.String("dialect", "", "")
	pf.StringP("output", "o", "", "")
	pf.BoolP("verbose", "v", false, "")
	pf.String("dictionary", "", "")
	pf.String("scripts-dir", "", "")
	pf.Bool("cache", false, "")
	pf.String("cache-dir", "", "")
	return root
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	require.False(t, ansiPattern.MatchString(s), "string contains ANSI escape codes: %q", s)
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
