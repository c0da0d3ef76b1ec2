package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/lukasmwerner/harper/pkg/token"
)

// Frontmatter holds the harper settings of a markdown file's YAML front
// matter. Other front matter keys belong to the document and are ignored.
//
//	---
//	title: Notes
//	harper:
//	  disabled: [SpellCheck]
//	---
type Frontmatter struct {
	Disabled []string `yaml:"disabled"`
}

// frontmatterPattern matches a leading --- ... --- block.
var frontmatterPattern = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n|\z)`)

// markdownExtensions carry front matter.
var markdownExtensions = []string{".md", ".markdown"}

// FrontmatterParseError reports malformed front matter.
type FrontmatterParseError struct {
	File    string
	Message string
}

func (e *FrontmatterParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// ExtractFrontmatter splits a leading front matter block from content. It
// returns the settings, the rune offset where the body starts and the body.
// Content without front matter yields a nil config and offset 0.
func ExtractFrontmatter(content string) (*Frontmatter, int, string, error) {
	loc := frontmatterPattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return nil, 0, content, nil
	}
	body := content[loc[1]:]
	offset := utf8.RuneCountInString(content[:loc[1]])

	fm, err := parseFrontmatterYAML(content[loc[2]:loc[3]])
	if err != nil {
		return nil, 0, content, err
	}
	return fm, offset, body, nil
}

func parseFrontmatterYAML(src string) (*Frontmatter, error) {
	var raw struct {
		Harper yaml.Node `yaml:"harper"`
	}
	if err := yaml.Unmarshal([]byte(src), &raw); err != nil {
		return nil, &FrontmatterParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	fm := &Frontmatter{}
	if raw.Harper.Kind == 0 {
		return fm, nil
	}
	if raw.Harper.Kind != yaml.MappingNode {
		return nil, &FrontmatterParseError{Message: "harper front matter must be a mapping"}
	}
	for i := 0; i < len(raw.Harper.Content); i += 2 {
		if key := raw.Harper.Content[i].Value; key != "disabled" {
			return nil, &FrontmatterParseError{Message: fmt.Sprintf("unknown field %q in harper front matter", key)}
		}
	}
	if err := raw.Harper.Decode(fm); err != nil {
		return nil, &FrontmatterParseError{Message: fmt.Sprintf("failed to parse harper front matter: %v", err)}
	}
	return fm, nil
}

// hasFrontmatter reports whether files at path may start with front matter.
func hasFrontmatter(path string) bool {
	return slices.Contains(markdownExtensions, strings.ToLower(filepath.Ext(path)))
}

// lintMarkdown lints a markdown file. When it starts with front matter only
// the body is linted; lints are shifted back into the coordinates of the
// full text and filtered by the front matter's disabled rules.
func (e *Engine) lintMarkdown(ctx context.Context, path, text string) (Result, error) {
	fm, offset, body, err := ExtractFrontmatter(text)
	if err != nil {
		var pe *FrontmatterParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return Result{Path: path, Text: text}, err
	}
	if fm == nil {
		return e.LintText(ctx, text)
	}

	e.logger.Debug("linting markdown body", "path", path, "offset", offset, "disabled", fm.Disabled)
	res, err := e.LintText(ctx, body)
	res.Text = text
	if err != nil {
		return res, err
	}

	lints := make([]lint.Lint, 0, len(res.Lints))
	for _, l := range res.Lints {
		if slices.Contains(fm.Disabled, l.Rule) {
			continue
		}
		l.Span = token.NewSpan(l.Span.Start+offset, l.Span.End+offset)
		lints = append(lints, l)
	}
	res.Lints = lints
	return res, nil
}
