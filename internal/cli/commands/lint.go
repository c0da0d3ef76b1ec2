package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lukasmwerner/harper/internal/cli/output"
	"github.com/lukasmwerner/harper/internal/engine"
	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/lint"
)

// DemoText is linted when no path and no standard input are given.
const DemoText = "hello,World ! "

// ErrLintsFound is returned when a lint run reports at least one lint, so
// the process exits non-zero.
var ErrLintsFound = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format   string   // Output format override
	Disable  []string // Rule names to disable (replaces lint.disabled)
	Severity string   // Minimum severity: error, warning, info, hint
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Check text for grammar and style problems",
		Long: `Lint files, directories or standard input.

Directories are walked for .txt, .md, .markdown and .rst files. Use "-" to
read standard input. With no path and nothing piped in, a demo sentence
is linted.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  # Lint the demo sentence
  harper lint

  # Lint a file and a directory
  harper lint README.md docs/

  # Lint standard input
  echo "This is is wrong" | harper lint -

  # Disable rules
  harper lint --disable SpellCheck,LongSentences notes.md

  # Output as JSON
  harper lint -o json notes.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule names to disable")
	cmd.Flags().Int("parallelism", 0, "Rules evaluated concurrently (0 = number of CPUs)")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	minSeverity, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("unknown severity %q", opts.Severity)
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	cmdCtx.WithFormat(cmd, opts.Format)

	reports, demo, err := collectReports(cmd, cmdCtx.Engine, args)
	if err != nil {
		return err
	}

	total := 0
	for i := range reports {
		reports[i].Lints = filterSeverity(reports[i].Lints, minSeverity)
		total += len(reports[i].Lints)
	}

	if err := cmdCtx.Renderer.Lints(reports); err != nil {
		return err
	}
	cmdCtx.Logger.Debug("lint finished", "files", len(reports), "lints", total)

	if total > 0 && !demo {
		return ErrLintsFound
	}
	return nil
}

// collectReports lints the requested inputs. demo is true when the demo
// sentence was used.
func collectReports(cmd *cobra.Command, eng *engine.Engine, args []string) ([]output.FileReport, bool, error) {
	ctx := commandContext(cmd)

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		text, err := readInput(cmd, len(args) == 1)
		if err != nil {
			return nil, false, err
		}
		demo := false
		if text == "" && len(args) == 0 {
			text, demo = DemoText, true
		}
		res, err := eng.LintText(ctx, text)
		if err != nil {
			return nil, false, err
		}
		return []output.FileReport{toReport(res)}, demo, nil
	}

	results, err := eng.LintPaths(ctx, args)
	if err != nil {
		return nil, false, err
	}
	reports := make([]output.FileReport, len(results))
	for i, res := range results {
		reports[i] = toReport(res)
	}
	return reports, false, nil
}

// readInput reads standard input unless it is an interactive terminal and
// reading was not requested explicitly.
func readInput(cmd *cobra.Command, explicit bool) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !explicit {
		if term.IsTerminal(int(f.Fd())) { //nolint:gosec // file descriptors fit in int
			return "", nil
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	if !explicit && strings.TrimSpace(string(data)) == "" {
		return "", nil
	}
	return string(data), nil
}

func toReport(res engine.Result) output.FileReport {
	return output.FileReport{
		Path:   res.Path,
		Text:   res.Text,
		Tokens: res.Tokens,
		Lints:  res.Lints,
	}
}

func filterSeverity(lints []lint.Lint, minSeverity core.Severity) []lint.Lint {
	out := make([]lint.Lint, 0, len(lints))
	for _, l := range lints {
		if l.Severity.AtLeast(minSeverity) {
			out = append(out, l)
		}
	}
	return out
}
