package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lukasmwerner/harper/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lint API over HTTP",
		Long: `Start an HTTP server exposing the lint engine.

Endpoints:
  POST /v1/lint      Lint {"text": "..."} and return the lints
  GET  /v1/rules     List rules
  GET  /v1/version   Engine version
  GET  /healthz      Liveness check
  GET  /metrics      Prometheus metrics`,
		Example: `  harper serve --addr :8080
  curl -s localhost:8080/v1/lint -d '{"text":"I saw the the cat."}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{
				Engine: cmdCtx.Engine,
				Addr:   cmdCtx.Cfg.Server.Addr,
				Logger: cmdCtx.Logger,
			})
			cmdCtx.Renderer.Muted("Listening on http://" + cmdCtx.Cfg.Server.Addr)
			return srv.Serve(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
