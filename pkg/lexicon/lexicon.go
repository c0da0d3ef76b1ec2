// Package lexicon provides the word list used for spell checking.
//
// Words are stored normalised (NFC, case folded, typographic apostrophes
// replaced by ASCII ones) so lookups are insensitive to case and to the
// way the input was composed.
package lexicon

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

//go:embed words.txt
var curatedWords string

// ErrMalformed is returned by Validate for a lexicon that cannot be used.
var ErrMalformed = errors.New("malformed lexicon")

// Lexicon is an immutable set of known words.
type Lexicon struct {
	words map[string]struct{}
}

var (
	curated     *Lexicon
	curatedOnce sync.Once
)

// Curated returns the built-in lexicon. It is loaded once and shared.
func Curated() *Lexicon {
	curatedOnce.Do(func() {
		lex, err := Load(strings.NewReader(curatedWords))
		if err != nil {
			// The embedded list is plain text; reading it cannot fail.
			panic(fmt.Sprintf("lexicon: failed to load curated words: %v", err))
		}
		curated = lex
	})
	return curated
}

// New creates a lexicon from words.
func New(words ...string) *Lexicon {
	lex := &Lexicon{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if n := Normalize(w); n != "" {
			lex.words[n] = struct{}{}
		}
	}
	return lex
}

// Load reads one word per line. Blank lines and lines starting with # are
// skipped.
func Load(r io.Reader) (*Lexicon, error) {
	lex := &Lexicon{words: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if n := Normalize(line); n != "" {
			lex.words[n] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return lex, nil
}

// With returns a new lexicon holding the receiver's words plus extra. The
// receiver is not modified.
func (l *Lexicon) With(extra ...string) *Lexicon {
	out := &Lexicon{words: make(map[string]struct{}, l.Len()+len(extra))}
	if l != nil {
		for w := range l.words {
			out.words[w] = struct{}{}
		}
	}
	for _, w := range extra {
		if n := Normalize(w); n != "" {
			out.words[n] = struct{}{}
		}
	}
	return out
}

// Validate reports ErrMalformed for a nil or empty lexicon.
func (l *Lexicon) Validate() error {
	if l == nil || len(l.words) == 0 {
		return ErrMalformed
	}
	return nil
}

// Len returns the number of words.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// Contains reports whether word is in the lexicon exactly (after
// normalisation).
func (l *Lexicon) Contains(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.words[Normalize(word)]
	return ok
}

// inflections are suffixes stripped when looking for a known stem, with the
// letters to restore afterwards ("tries" -> "try").
var inflections = []struct{ suffix, restore string }{
	{"'s", ""},
	{"ies", "y"},
	{"es", ""},
	{"s", ""},
	{"ied", "y"},
	{"ed", ""},
	{"ed", "e"},
	{"ing", ""},
	{"ing", "e"},
	{"ly", ""},
	{"er", ""},
	{"est", ""},
}

// Knows reports whether word or a regular inflection of a known stem is in
// the lexicon ("walked", "cats", "quickly").
func (l *Lexicon) Knows(word string) bool {
	if l == nil {
		return false
	}
	n := Normalize(word)
	if _, ok := l.words[n]; ok {
		return true
	}
	for _, inf := range inflections {
		if !strings.HasSuffix(n, inf.suffix) {
			continue
		}
		stem := strings.TrimSuffix(n, inf.suffix)
		if len([]rune(stem)) < 2 {
			continue
		}
		if _, ok := l.words[stem+inf.restore]; ok {
			return true
		}
		// Doubled consonant: "running" -> "run".
		if r := []rune(stem); len(r) > 2 && r[len(r)-1] == r[len(r)-2] {
			if _, ok := l.words[string(r[:len(r)-1])]; ok {
				return true
			}
		}
	}
	return false
}

// Words returns all words in sorted order.
func (l *Lexicon) Words() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.words))
	for w := range l.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Normalize applies NFC, case folding and apostrophe unification.
func Normalize(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	word = norm.NFC.String(word)
	word = strings.NewReplacer("’", "'", "ʼ", "'").Replace(word)
	// Casers are stateful and not safe for concurrent use.
	return cases.Fold().String(word)
}
