package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/lukasmwerner/harper/internal/cli/output"
	"github.com/lukasmwerner/harper/internal/store"
)

// NewDictCommand creates the dict command and its subcommands.
func NewDictCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage the user dictionary",
		Long: `Manage the words SpellCheck accepts on top of the curated lexicon.

The dictionary is a SQLite database (default .harper/dictionary.db next to
harper.yaml) created on first use.`,
	}
	cmd.AddCommand(newDictAddCommand())
	cmd.AddCommand(newDictRemoveCommand())
	cmd.AddCommand(newDictListCommand())
	cmd.AddCommand(newDictImportCommand())
	return cmd
}

func newDictAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "add <word>...",
		Short:   "Add words to the user dictionary",
		Example: `  harper dict add Kubernetes kubectl`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContextWithDictionary(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := commandContext(cmd)
			for _, word := range args {
				if err := cmdCtx.Engine.AddWord(ctx, word); err != nil {
					return fmt.Errorf("failed to add %q: %w", word, err)
				}
				cmdCtx.Logger.Debug("added word", "word", word)
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("Added %d %s", len(args), plural(len(args), "word", "words")))
			return nil
		},
	}
}

func newDictRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <word>...",
		Aliases: []string{"rm"},
		Short:   "Remove words from the user dictionary",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContextWithDictionary(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := commandContext(cmd)
			for _, word := range args {
				if err := cmdCtx.Engine.RemoveWord(ctx, word); err != nil {
					return fmt.Errorf("failed to remove %q: %w", word, err)
				}
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("Removed %d %s", len(args), plural(len(args), "word", "words")))
			return nil
		},
	}
}

func newDictListCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the user dictionary",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContextWithDictionary(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			cmdCtx.WithFormat(cmd, format)

			entries, err := cmdCtx.Engine.Words(commandContext(cmd))
			if err != nil {
				return err
			}
			return renderEntries(cmdCtx.Renderer, entries)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json, yaml")
	return cmd
}

func newDictImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a word list (one word per line, '-' for stdin)",
		Long: `Import a word list. Blank lines and lines starting with '#' are
ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open word list: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}
			words, err := readWordList(in)
			if err != nil {
				return err
			}

			cmdCtx, cleanup, err := NewCommandContextWithDictionary(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := cmdCtx.Engine.ImportWords(commandContext(cmd), words)
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("Imported %d %s", n, plural(n, "word", "words")))
			return nil
		},
	}
}

// readWordList reads one word per line.
func readWordList(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

func renderEntries(r *output.Renderer, entries []store.Entry) error {
	if entries == nil {
		entries = []store.Entry{}
	}
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(entries)
	case output.ModeYAML:
		return r.YAML(entries)
	}

	if len(entries) == 0 {
		r.Muted("The user dictionary is empty")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Word", "Source", "Added"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Word, e.Source, e.AddedAt.Local().Format(time.DateTime)})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}
