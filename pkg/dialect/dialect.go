// Package dialect describes the English dialects the linter targets and the
// spelling variants that distinguish them.
package dialect

import (
	"fmt"
	"strings"
)

// Dialect is a regional variety of English.
type Dialect int

// Supported dialects.
const (
	American Dialect = iota
	British
	Australian
	Canadian
)

// Default is the dialect used when none is configured.
const Default = Australian

var names = map[Dialect]string{
	American:   "american",
	British:    "british",
	Australian: "australian",
	Canadian:   "canadian",
}

// aliases maps accepted spellings (including BCP 47 tags) to dialects.
var aliases = map[string]Dialect{
	"american":   American,
	"us":         American,
	"en-us":      American,
	"british":    British,
	"uk":         British,
	"gb":         British,
	"en-gb":      British,
	"australian": Australian,
	"au":         Australian,
	"en-au":      Australian,
	"canadian":   Canadian,
	"ca":         Canadian,
	"en-ca":      Canadian,
}

// String returns the lower-case dialect name.
func (d Dialect) String() string {
	if n, ok := names[d]; ok {
		return n
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// IsValid reports whether d is one of the supported dialects.
func (d Dialect) IsValid() bool {
	_, ok := names[d]
	return ok
}

// Parse converts a name such as "australian" or "en-AU" into a Dialect.
func Parse(s string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "_", "-")))
	if d, ok := aliases[key]; ok {
		return d, nil
	}
	return Default, fmt.Errorf("unknown dialect %q (expected one of %s)", s, strings.Join(Names(), ", "))
}

// All returns every supported dialect.
func All() []Dialect {
	return []Dialect{American, British, Australian, Canadian}
}

// Names returns the canonical names of every supported dialect.
func Names() []string {
	out := make([]string, 0, len(names))
	for _, d := range All() {
		out = append(out, d.String())
	}
	return out
}

// MarshalText encodes the dialect by name.
func (d Dialect) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a dialect name.
func (d *Dialect) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
