// Package output renders command results for terminals, pipes and machines.
//
// A Renderer resolves ModeAuto to styled text on a TTY and to markdown
// otherwise, so piped output stays free of escape codes.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// Modes lists every accepted mode name.
func Modes() []Mode {
	return []Mode{ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML}
}

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	for _, known := range Modes() {
		if m == known {
			return true
		}
	}
	return false
}

const defaultWidth = 100

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header   lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Path     lipgloss.Style
	Fragment lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
}

func newStyles(lr *lipgloss.Renderer) Styles {
	return Styles{
		Header:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:     lr.NewStyle().Bold(true),
		Muted:    lr.NewStyle().Foreground(lipgloss.Color("8")),
		Path:     lr.NewStyle().Bold(true).Underline(true),
		Fragment: lr.NewStyle().Foreground(lipgloss.Color("13")),
		Success:  lr.NewStyle().Foreground(lipgloss.Color("10")),
		Error:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning:  lr.NewStyle().Foreground(lipgloss.Color("11")),
		Info:     lr.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	width  int
	styles Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	width := defaultWidth
	if f, ok := out.(*os.File); ok {
		fd := int(f.Fd()) //nolint:gosec // file descriptors fit in int
		if term.IsTerminal(fd) {
			isTTY = true
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				width = w
			}
		}
	}
	r := NewRendererWithTTY(out, errOut, isTTY, mode)
	r.width = width
	return r
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if !mode.IsValid() {
		mode = ModeAuto
	}
	lr := lipgloss.NewRenderer(out)
	if isTTY {
		lr.SetColorProfile(termenv.NewOutput(out).EnvColorProfile())
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		width:  defaultWidth,
		styles: newStyles(lr),
	}
}

// EffectiveMode resolves ModeAuto against the TTY state.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the text-mode styles.
func (r *Renderer) Styles() Styles { return r.styles }

// Width returns the wrap width.
func (r *Renderer) Width() int { return r.width }

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a heading. Markdown mode emits "#" prefixes.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, text))
		return
	}
	r.Println(r.styles.Header.Render(text))
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render(msg))
}

// Muted writes a de-emphasised message.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

// Warning writes a warning to the error writer.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: "+msg))
}

// Error writes an error to the error writer.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("error: "+msg))
}

// Wrap word-wraps s to the renderer width minus indent and indents
// continuation lines.
func (r *Renderer) Wrap(s string, indent int) string {
	limit := r.width - indent
	if limit < 20 {
		limit = 20
	}
	wrapped := wordwrap.String(s, limit)
	if indent == 0 {
		return wrapped
	}
	pad := strings.Repeat(" ", indent)
	return strings.ReplaceAll(wrapped, "\n", "\n"+pad)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// FormatHeader formats a markdown heading.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text + "\n"
}

// FormatKeyValue formats a markdown list entry.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}
