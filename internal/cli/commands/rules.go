package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukasmwerner/harper/pkg/core"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Source  string // Filter by source: builtin, script
	Enabled bool   // Only enabled rules
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule]",
		Short: "List available lint rules",
		Long: `List the curated rules for the configured dialect plus any script rules,
in evaluation order, with their default severity and whether they are
enabled by the current configuration.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table
  - JSON/YAML: Machine-readable format`,
		Example: `  # List all rules
  harper rules

  # Show details for one rule
  harper rules SpellCheck

  # Only script rules
  harper rules --source script

  # Full documentation as JSON
  harper rules -V -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Source, "source", "", "Filter by source: builtin, script")
	cmd.Flags().BoolVar(&opts.Enabled, "enabled", false, "Only list enabled rules")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

func runRules(cmd *cobra.Command, args []string, opts *RulesOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	cmdCtx.WithFormat(cmd, opts.Format)

	rules := cmdCtx.Engine.Rules()

	if len(args) == 1 {
		for _, info := range rules {
			if strings.EqualFold(info.Name, args[0]) {
				return cmdCtx.Renderer.Rule(info)
			}
		}
		return fmt.Errorf("rule %q not found", args[0])
	}

	return cmdCtx.Renderer.Rules(filterRules(rules, opts), opts.Verbose)
}

func filterRules(rules []core.RuleInfo, opts *RulesOptions) []core.RuleInfo {
	if opts.Source == "" && !opts.Enabled {
		return rules
	}
	var filtered []core.RuleInfo
	for _, r := range rules {
		if opts.Source != "" && r.Source != opts.Source {
			continue
		}
		if opts.Enabled && !r.Enabled {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
