package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lukasmwerner/harper/pkg/harper"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the harper engine version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "harper v%s\n", harper.Version())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Built with %s\n", runtime.Version())
		},
	}
}
