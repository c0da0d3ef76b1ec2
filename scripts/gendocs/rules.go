package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/lexicon"
	"github.com/lukasmwerner/harper/pkg/lint"
	_ "github.com/lukasmwerner/harper/pkg/lint/rules"
)

// generateRuleDocs generates the rule reference page.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	group, err := lint.NewCurated(dialect.Default, lexicon.Curated(), nil)
	if err != nil {
		return fmt.Errorf("failed to build curated rules: %w", err)
	}

	var infos []core.RuleInfo
	for _, r := range group.Rules() {
		info := lint.GetRuleInfo(r)
		info.Enabled = group.IsEnabled(r.Name())
		infos = append(infos, info)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Lint Rules", "Rules harper checks English prose against")
	w.GeneratedMarker()

	w.Header(1, "Lint Rules")
	w.Paragraph(fmt.Sprintf("harper ships %d curated rules. Rules marked off by default can be enabled in `harper.yaml`.", len(infos)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Almost certainly wrong"},
			{InlineCode("warning"), "Probably wrong"},
			{InlineCode("info"), "Worth a second look"},
			{InlineCode("hint"), "Stylistic suggestion"},
		},
	)

	w.Header(2, "Configuration")
	w.CodeBlock("yaml", `lint:
  disabled: [LongSentences]
  severity:
    SpellCheck: error
  rules:
    LongSentences:
      max_words: 30`)

	w.Header(2, "Rules")
	var rows [][]string
	for _, info := range infos {
		enabled := "yes"
		if !info.Enabled {
			enabled = "no"
		}
		link := fmt.Sprintf("[%s](#%s)", info.Name, strings.ToLower(info.Name))
		rows = append(rows, []string{link, InlineCode(info.DefaultSeverity.String()), enabled, cleanDescription(info.Description)})
	}
	w.Table([]string{"Rule", "Severity", "On by default", "Description"}, rows)

	for _, info := range infos {
		writeRuleDoc(w, info)
	}

	filename := filepath.Join(outDir, "index.md")
	log.Printf("  Generated index.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, info core.RuleInfo) {
	w.Line(fmt.Sprintf("### %s {#%s}", info.Name, strings.ToLower(info.Name)))
	w.Newline()

	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(info.DefaultSeverity.String())))
	w.Newline()

	w.Paragraph(cleanDescription(info.Description))

	if info.Rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(strings.TrimSpace(info.Rationale))
	}
	if info.BadExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("text", info.BadExample)
	}
	if info.GoodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("text", info.GoodExample)
	}
	if len(info.ConfigKeys) > 0 {
		w.Header(4, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule accepts the following options: %s",
			InlineCode(strings.Join(info.ConfigKeys, ", "))))
	}

	w.Line("---")
	w.Newline()
}
