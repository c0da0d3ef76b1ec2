package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultExtensions are linted when walking directories.
var DefaultExtensions = []string{".txt", ".md", ".markdown", ".rst"}

// LintFile reads and lints one file.
func (e *Engine) LintFile(ctx context.Context, path string) (Result, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: paths are user supplied on purpose
	if err != nil {
		return Result{Path: path}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	res, err := e.LintFileText(ctx, path, string(data))
	if err != nil {
		return res, fmt.Errorf("failed to lint %s: %w", path, err)
	}
	return res, nil
}

// LintFileText lints text as the contents of path, so markdown front
// matter is honoured. The file itself is not read.
func (e *Engine) LintFileText(ctx context.Context, path, text string) (Result, error) {
	var (
		res Result
		err error
	)
	if hasFrontmatter(path) {
		res, err = e.lintMarkdown(ctx, path, text)
	} else {
		res, err = e.LintText(ctx, text)
	}
	res.Path = path
	return res, err
}

// LintPaths lints files and directories. Directories are walked for files
// with a known extension. Results are returned in path order.
func (e *Engine) LintPaths(ctx context.Context, paths []string) ([]Result, error) {
	files, err := e.ExpandPaths(paths)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(files))
	eg, egctx := errgroup.WithContext(ctx)
	limit := e.cfg.FileParallelism
	if limit <= 0 {
		limit = 4
	}
	eg.SetLimit(limit)
	for i, file := range files {
		eg.Go(func() error {
			res, err := e.LintFile(egctx, file)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ExpandPaths resolves directories into the files LintPaths would lint,
// sorted and without duplicates.
func (e *Engine) ExpandPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if e.HasExtension(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// HasExtension reports whether path has one of the configured extensions.
func (e *Engine) HasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(e.cfg.Extensions, ext)
}
