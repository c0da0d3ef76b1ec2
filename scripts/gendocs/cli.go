package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lukasmwerner/harper/internal/cli"
)

// generateCLIDocs writes a single CLI reference page with one section per
// command, subcommands included.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for harper")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("harper lints English prose from the command line, as an HTTP service and as a language server.")
	w.CodeBlock("bash", "go install github.com/lukasmwerner/harper/cmd/harper@latest")

	commands := visibleCommands(root)
	var rows [][]string
	for _, cmd := range commands {
		path := commandPath(cmd)
		rows = append(rows, []string{fmt.Sprintf("[%s](#%s)", InlineCode(path), anchor(path)), cleanDescription(cmd.Short)})
	}
	w.Header(2, "Commands")
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Configuration")
	w.Paragraph("Settings are read from `harper.yaml` (searched upward from the working directory), then `HARPER_` environment variables with `__` between nested keys, then flags. Later sources win.")
	w.Table([]string{"Variable", "Key"}, [][]string{
		{InlineCode("HARPER_DIALECT"), InlineCode("dialect")},
		{InlineCode("HARPER_OUTPUT"), InlineCode("output")},
		{InlineCode("HARPER_DICTIONARY"), InlineCode("dictionary")},
		{InlineCode("HARPER_LINT__DISABLED"), InlineCode("lint.disabled")},
		{InlineCode("HARPER_SERVER__ADDR"), InlineCode("server.addr")},
	})

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Lints found, or an error (see stderr)"},
	})

	for _, cmd := range commands {
		writeCommand(w, cmd)
	}

	filename := filepath.Join(outDir, "index.md")
	log.Printf("  Generated index.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

// visibleCommands lists commands depth first, skipping hidden and help
// commands.
func visibleCommands(parent *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range parent.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || strings.HasPrefix(cmd.Name(), "__") {
			continue
		}
		out = append(out, cmd)
		out = append(out, visibleCommands(cmd)...)
	}
	return out
}

func commandPath(cmd *cobra.Command) string {
	return strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
}

func anchor(path string) string {
	return strings.ReplaceAll(path, " ", "-")
}

func writeCommand(w *MarkdownWriter, cmd *cobra.Command) {
	path := commandPath(cmd)
	w.Line(fmt.Sprintf("### %s {#%s}", path, anchor(path)))
	w.Newline()

	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(strings.TrimSpace(desc))
	w.CodeBlock("bash", cmd.UseLine())

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}
	if cmd.HasLocalFlags() {
		w.Header(4, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.Example != "" {
		w.Header(4, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}
}

// writeFlagsTable writes one row per visible flag.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		def := f.DefValue
		if def != "" && f.Value.Type() != "bool" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// dedent strips the indentation shared by all non-blank lines.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
