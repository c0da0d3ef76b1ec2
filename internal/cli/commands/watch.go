package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lukasmwerner/harper/internal/cli/output"
	"github.com/lukasmwerner/harper/internal/engine"
	"github.com/lukasmwerner/harper/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "watch <path>...",
		Short: "Re-lint files whenever they change",
		Long: `Lint the given files and directories, then keep watching them and
re-lint each file that changes. Bursts of changes are debounced
(watch.debounce, default 100ms). Stop with Ctrl-C.`,
		Example: `  harper watch docs/ README.md
  harper watch --debounce 500ms notes/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, args, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json, yaml")
	cmd.Flags().Duration("debounce", 0, "Quiet period before re-linting (default from config)")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, args []string, format string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	cmdCtx.WithFormat(cmd, format)

	eng := cmdCtx.Engine
	r := cmdCtx.Renderer

	w, err := watch.New(args, watch.Options{
		Debounce: cmdCtx.Cfg.Watch.Debounce,
		Match:    eng.HasExtension,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	results, err := eng.LintPaths(ctx, args)
	if err != nil {
		return err
	}
	if err := renderResults(r, results); err != nil {
		return err
	}
	r.Muted("Watching for changes...")

	return w.Run(ctx, func(ctx context.Context, files []string) {
		relintFiles(ctx, eng, r, cmdCtx.Logger, files)
	})
}

func relintFiles(ctx context.Context, eng *engine.Engine, r *output.Renderer, logger *slog.Logger, files []string) {
	results := make([]engine.Result, 0, len(files))
	for _, f := range files {
		res, err := eng.LintFile(ctx, f)
		if err != nil {
			logger.Warn("re-lint failed", "file", f, "error", err)
			continue
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		return
	}
	if r.EffectiveMode() == output.ModeText {
		r.Muted(time.Now().Format(time.TimeOnly))
	}
	if err := renderResults(r, results); err != nil {
		logger.Warn("failed to render results", "error", err)
	}
}

func renderResults(r *output.Renderer, results []engine.Result) error {
	reports := make([]output.FileReport, len(results))
	for i, res := range results {
		reports[i] = toReport(res)
	}
	return r.Lints(reports)
}
