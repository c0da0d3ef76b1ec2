// Package watch reports changed files under a set of paths, debouncing
// bursts of file system events into a single batch.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the sorted, de-duplicated files changed in one batch.
type Handler func(ctx context.Context, files []string)

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period before a batch is delivered
	Debounce time.Duration
	// Match filters files found under watched directories (nil matches all)
	Match func(path string) bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Watcher watches files and directories.
type Watcher struct {
	opts  Options
	files map[string]bool
	dirs  []string
}

// New creates a watcher for paths. Files are watched through their parent
// directory; directories are watched recursively.
func New(paths []string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	w := &Watcher{opts: opts, files: make(map[string]bool)}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("cannot watch %s: %w", p, err)
		}
		if info.IsDir() {
			w.dirs = append(w.dirs, abs)
			continue
		}
		w.files[abs] = true
	}
	if len(w.dirs) == 0 && len(w.files) == 0 {
		return nil, errors.New("nothing to watch")
	}
	return w, nil
}

// wanted reports whether a change to path should be delivered.
func (w *Watcher) wanted(path string) bool {
	if w.files[path] {
		return true
	}
	for _, dir := range w.dirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return w.opts.Match == nil || w.opts.Match(path)
		}
	}
	return false
}

// Run watches until ctx is cancelled, calling handle for each batch.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range w.dirs {
		if err := watchDirRecursive(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	for file := range w.files {
		if err := watcher.Add(filepath.Dir(file)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", file, err)
		}
	}

	logger := w.opts.Logger
	pending := make(map[string]bool)
	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.wanted(event.Name) {
					if err := watchDirRecursive(watcher, event.Name); err != nil {
						logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.wanted(event.Name) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(w.opts.Debounce)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			clear(pending)
			slices.Sort(files)
			logger.Debug("files changed", "count", len(files))
			handle(ctx, files)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
// Hidden directories are skipped.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
