// Package commands implements the harper subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lukasmwerner/harper/internal/cache"
	"github.com/lukasmwerner/harper/internal/cli/config"
	"github.com/lukasmwerner/harper/internal/cli/output"
	"github.com/lukasmwerner/harper/internal/engine"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// The user dictionary is only opened if it already exists.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	return newCommandContext(cmd, false)
}

// NewCommandContextWithDictionary is like NewCommandContext but creates the
// user dictionary when it does not exist yet.
func NewCommandContextWithDictionary(cmd *cobra.Command) (*CommandContext, func(), error) {
	return newCommandContext(cmd, true)
}

func newCommandContext(cmd *cobra.Command, createDict bool) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	eng, err := createEngine(commandContext(cmd), cmdCtx.Cfg, cmdCtx.Logger, createDict)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Engine = eng

	cleanup := func() {
		if err := eng.Close(); err != nil {
			cmdCtx.Logger.Warn("failed to close engine", "error", err)
		}
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	ctx := commandContext(cmd)
	cfg := config.FromContext(ctx)
	logger := config.GetLogger(ctx)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// WithFormat replaces the renderer when a per-command format flag is set.
func (c *CommandContext) WithFormat(cmd *cobra.Command, format string) {
	if format != "" {
		c.Renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// engineConfig maps the CLI configuration onto the engine.
func engineConfig(cfg *config.Config, logger *slog.Logger, createDict bool) engine.Config {
	dictPath := cfg.DictionaryIfExists()
	if createDict {
		dictPath = cfg.Dictionary
	}

	cacheDir := ""
	if cfg.Cache.Enabled {
		cacheDir = cfg.Cache.Dir
		if cacheDir == "" {
			dir, err := cache.DefaultDir()
			if err != nil {
				logger.Warn("result cache disabled", "error", err)
			} else {
				cacheDir = dir
			}
		}
	}

	return engine.Config{
		Dialect:        cfg.DialectValue(),
		Lint:           cfg.Lint,
		DictionaryPath: dictPath,
		ScriptsDir:     cfg.ScriptsDir,
		CacheDir:       cacheDir,
		Logger:         logger,
	}
}

func createEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, createDict bool) (*engine.Engine, error) {
	return engine.New(ctx, engineConfig(cfg, logger, createDict))
}
