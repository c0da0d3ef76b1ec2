// Package script loads lint rules written in Starlark.
//
// A rule file defines a name, an optional description and severity, and a
// check(doc) function returning a list of dicts with start, end, message and
// optional suggestions. Spans are rune offsets into doc.text. Options set
// under lint.rules.<name> in configuration are visible as doc.options.
package script

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/lukasmwerner/harper/pkg/core"
)

// Loader scans a directory for .star rule files.
type Loader struct {
	dir    string
	pool   *ThreadPool
	logger *slog.Logger
}

// NewLoader creates a loader for dir. Rules it loads share one thread pool.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		dir:    dir,
		pool:   NewThreadPool(0, logger),
		logger: logger,
	}
}

// Load loads every .star file in the directory, sorted by file name.
// A missing directory yields no rules.
func (l *Loader) Load() ([]*Rule, error) {
	info, err := os.Stat(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to access scripts directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scripts path is not a directory: %s", l.dir)
	}

	files, err := filepath.Glob(filepath.Join(l.dir, "*.star"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scripts directory: %w", err)
	}

	var rules []*Rule
	seen := make(map[string]string)
	for _, file := range files {
		content, err := os.ReadFile(file) //nolint:gosec // G304: path comes from a glob within the scripts directory
		if err != nil {
			return nil, &LoadError{File: file, Message: fmt.Sprintf("failed to read file: %v", err)}
		}
		rule, err := l.LoadSource(file, content)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[rule.Name()]; dup {
			return nil, &LoadError{File: file, Message: fmt.Sprintf("rule %s already defined in %s", rule.Name(), filepath.Base(prev))}
		}
		seen[rule.Name()] = file
		rules = append(rules, rule)
	}
	return rules, nil
}

// LoadSource compiles one rule from source.
func (l *Loader) LoadSource(filename string, content []byte) (*Rule, error) {
	thread := &starlark.Thread{
		Name:  "load:" + filepath.Base(filename),
		Print: func(_ *starlark.Thread, _ string) {},
	}
	predeclared := starlark.StringDict{
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
	}

	globals, err := starlark.ExecFile(thread, filename, content, predeclared) //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
	if err != nil {
		return nil, &LoadError{File: filename, Message: fmt.Sprintf("starlark execution error: %v", err)}
	}

	name, err := stringGlobal(globals, "name", true)
	if err != nil {
		return nil, &LoadError{File: filename, Message: err.Error()}
	}
	if err := validateName(name); err != nil {
		return nil, &LoadError{File: filename, Message: err.Error()}
	}
	description, err := stringGlobal(globals, "description", false)
	if err != nil {
		return nil, &LoadError{File: filename, Message: err.Error()}
	}
	sevName, err := stringGlobal(globals, "severity", false)
	if err != nil {
		return nil, &LoadError{File: filename, Message: err.Error()}
	}
	severity := core.SeverityWarning
	if sevName != "" {
		sev, ok := core.ParseSeverity(sevName)
		if !ok {
			return nil, &LoadError{File: filename, Message: fmt.Sprintf("unknown severity %q", sevName)}
		}
		severity = sev
	}

	check, ok := globals["check"].(starlark.Callable)
	if !ok {
		return nil, &LoadError{File: filename, Message: "missing check(doc) function"}
	}

	return &Rule{
		name:        name,
		description: description,
		severity:    severity,
		path:        filename,
		check:       check,
		pool:        l.pool,
		logger:      l.logger,
	}, nil
}

func stringGlobal(globals starlark.StringDict, key string, required bool) (string, error) {
	v, ok := globals[key]
	if !ok {
		if required {
			return "", fmt.Errorf("missing %s", key)
		}
		return "", nil
	}
	s, ok := starlark.AsString(v)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %s", key, v.Type())
	}
	return s, nil
}

// validateName requires an identifier so script rules can be toggled from
// configuration keys.
func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	for i, r := range name {
		switch {
		case isLetter(r), r == '_':
		case isDigit(r) && i > 0:
		default:
			return fmt.Errorf("name contains invalid character: %s", name)
		}
	}
	return nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// LoadError reports a script that could not be loaded.
type LoadError struct {
	File    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("scripts/%s: %s", filepath.Base(e.File), e.Message)
}

// IsLoadError reports whether err is a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
