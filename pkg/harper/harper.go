// Package harper is the embedding API: build documents, get the curated
// lint group and lint text in one call.
package harper

import (
	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lexicon"
	"github.com/lukasmwerner/harper/pkg/lint"

	// Registers the curated rules.
	_ "github.com/lukasmwerner/harper/pkg/lint/rules"
)

// version is overridden at build time with -ldflags "-X ...harper.version=".
var version = "0.1.0"

// Version returns the engine version.
func Version() string {
	return version
}

// NewDocument tokenizes text.
func NewDocument(text string) *document.Document {
	return document.New(text)
}

// NewLintGroup returns the curated rule set for the default dialect with
// every rule enabled.
func NewLintGroup() *lint.Group {
	g, err := NewLintGroupFor(dialect.Default, nil)
	if err != nil {
		// The curated rules are linked in by the import above.
		panic(err)
	}
	return g
}

// NewLintGroupFor returns the curated rule set for a dialect and
// configuration.
func NewLintGroupFor(d dialect.Dialect, cfg *lint.Config) (*lint.Group, error) {
	return lint.NewCurated(d, lexicon.Curated(), cfg)
}

// Lint tokenizes text and evaluates the curated group on it.
func Lint(text string) []lint.Lint {
	return NewLintGroup().Evaluate(NewDocument(text))
}
