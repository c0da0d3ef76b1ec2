package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lukasmwerner/harper/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC and publishes
lints as diagnostics. Suggestions are offered as quick fixes.
Logs go to stderr.`,
		Example: `  # Start LSP server (usually called by an editor)
  harper lsp --dialect british`,
		Args: cobra.NoArgs,
		RunE: runLSP,
	}

	return cmd
}

func runLSP(cmd *cobra.Command, _ []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := lsp.NewServerWithLogger(cmd.InOrStdin(), cmd.OutOrStdout(), cmdCtx.Engine, cmdCtx.Logger)
	return server.Run(ctx)
}
