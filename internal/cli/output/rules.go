package output

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lukasmwerner/harper/pkg/core"
)

// Rules renders rule metadata. Verbose adds rationale and examples.
func (r *Renderer) Rules(rules []core.RuleInfo, verbose bool) error {
	if rules == nil {
		rules = []core.RuleInfo{}
	}
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(rules)
	case ModeYAML:
		return r.YAML(rules)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Severity", "Enabled", "Source", "Description"})
	for _, info := range rules {
		enabled := "yes"
		if !info.Enabled {
			enabled = "no"
		}
		t.AppendRow(table.Row{info.Name, info.DefaultSeverity.String(), enabled, info.Source, info.Description})
	}

	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(1, "Rules"))
		t.RenderMarkdown()
	} else {
		t.Render()
	}

	if verbose {
		for _, info := range rules {
			r.ruleDetail(info)
		}
	}
	return nil
}

// Rule renders a single rule with its full documentation.
func (r *Renderer) Rule(info core.RuleInfo) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(info)
	case ModeYAML:
		return r.YAML(info)
	}
	r.ruleDetail(info)
	return nil
}

func (r *Renderer) ruleDetail(info core.RuleInfo) {
	r.Println()
	r.Header(2, info.Name)
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(info.Description)
		r.Println()
		r.Println(FormatKeyValue("Severity", info.DefaultSeverity.String()))
		r.Println(FormatKeyValue("Source", info.Source))
		if len(info.ConfigKeys) > 0 {
			r.Println(FormatKeyValue("Options", strings.Join(info.ConfigKeys, ", ")))
		}
		if info.Rationale != "" {
			r.Println()
			r.Println(info.Rationale)
		}
		if info.BadExample != "" || info.GoodExample != "" {
			r.Println()
			r.Println("```text")
			r.Println("bad:  " + info.BadExample)
			r.Println("good: " + info.GoodExample)
			r.Println("```")
		}
		return
	}

	st := r.styles
	r.Println(r.Wrap(info.Description, 0))
	r.Println(st.Muted.Render("severity: ") + SeverityLabel(r, info.DefaultSeverity))
	if len(info.ConfigKeys) > 0 {
		r.Println(st.Muted.Render("options:  ") + strings.Join(info.ConfigKeys, ", "))
	}
	if info.Rationale != "" {
		r.Println(r.Wrap(info.Rationale, 0))
	}
	if info.BadExample != "" {
		r.Println(st.Error.Render("bad:  ") + info.BadExample)
	}
	if info.GoodExample != "" {
		r.Println(st.Success.Render("good: ") + info.GoodExample)
	}
}
