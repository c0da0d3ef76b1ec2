package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lukasmwerner/harper/internal/cli/config"
	"github.com/lukasmwerner/harper/internal/cli/output"
	"github.com/lukasmwerner/harper/internal/engine"
	"github.com/lukasmwerner/harper/pkg/fix"
	"github.com/lukasmwerner/harper/pkg/lint"
)

// FixOptions holds options for the fix command.
type FixOptions struct {
	Format    string
	Write     bool
	Rules     []string
	MaxPasses int
}

// FixOutput is the machine-readable outcome for one input.
type FixOutput struct {
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"`
	Applied []fix.Edit `json:"applied" yaml:"applied"`
	Skipped int        `json:"skipped" yaml:"skipped"`
	Passes  int        `json:"passes" yaml:"passes"`
	Text    string     `json:"text,omitempty" yaml:"text,omitempty"`
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [path...]",
		Short: "Apply suggested fixes",
		Long: `Apply the first suggestion of every lint, re-linting until the text is
stable or --max-passes is reached.

Without --write the fixed text is printed; with --write files are
rewritten in place. Overlapping fixes are deferred to the next pass.`,
		Example: `  # Print the fixed demo sentence
  harper fix

  # Fix standard input
  echo "I saw the the cat" | harper fix -

  # Rewrite files, only applying spacing fixes
  harper fix --write --rule Spaces,SpaceBeforePunctuation docs/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Rewrite files in place")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Only apply fixes from these rules")
	cmd.Flags().IntVar(&opts.MaxPasses, "max-passes", config.DefaultMaxPasses, "Maximum lint and fix passes")

	return cmd
}

func runFix(cmd *cobra.Command, args []string, opts *FixOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	cmdCtx.WithFormat(cmd, opts.Format)

	choose := fix.First
	if len(opts.Rules) > 0 {
		choose = fix.OnlyRules(fix.First, opts.Rules...)
	}
	eng := cmdCtx.Engine

	var outputs []FixOutput
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		if opts.Write {
			return fmt.Errorf("--write requires file paths")
		}
		text, err := readInput(cmd, len(args) == 1)
		if err != nil {
			return err
		}
		if text == "" && len(args) == 0 {
			text = DemoText
		}
		res, err := fixText(cmd, eng, "", text, choose, opts.MaxPasses)
		if err != nil {
			return err
		}
		outputs = append(outputs, toFixOutput("", res))
	} else {
		files, err := eng.ExpandPaths(args)
		if err != nil {
			return err
		}
		if len(files) > 1 && !opts.Write {
			return fmt.Errorf("fixing %d files requires --write", len(files))
		}
		for _, path := range files {
			out, err := fixFile(cmd, eng, path, choose, opts)
			if err != nil {
				return err
			}
			outputs = append(outputs, out)
		}
	}

	return renderFix(cmdCtx.Renderer, outputs, opts.Write)
}

// fixText fixes text. A non-empty path makes linting honour the file's
// front matter.
func fixText(cmd *cobra.Command, eng *engine.Engine, path, text string, choose fix.Chooser, maxPasses int) (fix.Result, error) {
	ctx := commandContext(cmd)
	res, err := fix.Iterate(text, func(t string) ([]lint.Lint, error) {
		r, err := eng.LintFileText(ctx, path, t)
		return r.Lints, err
	}, choose, maxPasses)
	if err != nil && !errors.Is(err, fix.ErrNoFixes) {
		return res, err
	}
	return res, nil
}

func fixFile(cmd *cobra.Command, eng *engine.Engine, path string, choose fix.Chooser, opts *FixOptions) (FixOutput, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: paths are user supplied on purpose
	if err != nil {
		return FixOutput{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	res, err := fixText(cmd, eng, path, string(data), choose, opts.MaxPasses)
	if err != nil {
		return FixOutput{}, fmt.Errorf("failed to fix %s: %w", path, err)
	}
	if opts.Write && res.Changed() {
		info, err := os.Stat(path)
		if err != nil {
			return FixOutput{}, err
		}
		if err := os.WriteFile(path, []byte(res.Text), info.Mode().Perm()); err != nil {
			return FixOutput{}, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	out := toFixOutput(path, res)
	if opts.Write {
		out.Text = ""
	}
	return out, nil
}

func toFixOutput(path string, res fix.Result) FixOutput {
	applied := res.Applied
	if applied == nil {
		applied = []fix.Edit{}
	}
	return FixOutput{
		Path:    path,
		Applied: applied,
		Skipped: len(res.Skipped),
		Passes:  res.Passes,
		Text:    res.Text,
	}
}

func renderFix(r *output.Renderer, outputs []FixOutput, wrote bool) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(outputs)
	case output.ModeYAML:
		return r.YAML(outputs)
	}

	if !wrote {
		// Plain fixed text so the output can be redirected to a file.
		for _, out := range outputs {
			_, _ = fmt.Fprint(r.Writer(), out.Text)
		}
		return nil
	}
	for _, out := range outputs {
		if len(out.Applied) == 0 {
			r.Muted(fmt.Sprintf("%s: nothing to fix", out.Path))
			continue
		}
		r.Success(fmt.Sprintf("%s: applied %d %s in %d %s",
			out.Path, len(out.Applied), plural(len(out.Applied), "fix", "fixes"),
			out.Passes, plural(out.Passes, "pass", "passes")))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
