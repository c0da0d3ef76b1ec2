package dialect

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed variants.yaml
var variantsYAML []byte

// Variant is one word spelled per dialect.
type Variant struct {
	American   string `yaml:"american"`
	British    string `yaml:"british"`
	Australian string `yaml:"australian"`
	Canadian   string `yaml:"canadian"`
}

// Spelling returns the variant's spelling for d.
func (v Variant) Spelling(d Dialect) string {
	switch d {
	case American:
		return v.American
	case British:
		return v.British
	case Australian:
		return v.Australian
	case Canadian:
		return v.Canadian
	default:
		return ""
	}
}

// VariantTable indexes variants by every spelling they contain.
type VariantTable struct {
	variants []Variant
	index    map[string]int
}

var (
	defaultTable     *VariantTable
	defaultTableErr  error
	defaultTableOnce sync.Once
)

// Variants returns the built-in variant table.
func Variants() (*VariantTable, error) {
	defaultTableOnce.Do(func() {
		defaultTable, defaultTableErr = ParseVariants(variantsYAML)
	})
	return defaultTable, defaultTableErr
}

// ParseVariants decodes a YAML list of variants.
func ParseVariants(data []byte) (*VariantTable, error) {
	var variants []Variant
	if err := yaml.Unmarshal(data, &variants); err != nil {
		return nil, fmt.Errorf("failed to parse variants: %w", err)
	}
	t := &VariantTable{
		variants: variants,
		index:    make(map[string]int, len(variants)*2),
	}
	for i, v := range variants {
		for _, d := range All() {
			s := strings.ToLower(v.Spelling(d))
			if s == "" {
				return nil, fmt.Errorf("variant %d has no %s spelling", i, d)
			}
			t.index[s] = i
		}
	}
	return t, nil
}

// Len returns the number of variants.
func (t *VariantTable) Len() int {
	return len(t.variants)
}

// Lookup returns the variant containing word, compared case-insensitively.
func (t *VariantTable) Lookup(word string) (Variant, bool) {
	if t == nil {
		return Variant{}, false
	}
	i, ok := t.index[strings.ToLower(word)]
	if !ok {
		return Variant{}, false
	}
	return t.variants[i], true
}

// Preferred returns d's spelling of word when word is spelled for another
// dialect. It reports false when the word is unknown or already correct.
// The result is lower case.
func (t *VariantTable) Preferred(word string, d Dialect) (string, bool) {
	v, ok := t.Lookup(word)
	if !ok {
		return "", false
	}
	want := strings.ToLower(v.Spelling(d))
	if want == strings.ToLower(word) {
		return "", false
	}
	return want, true
}

// Words returns every spelling in the table.
func (t *VariantTable) Words() []string {
	out := make([]string, 0, len(t.index))
	for w := range t.index {
		out = append(out, w)
	}
	return out
}
