// Package watch re-lints markup files when they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/logging"
	"github.com/lex00/nghint/source"
)

// DefaultDelay is how long the watcher waits for further events before
// re-linting a batch.
const DefaultDelay = 300 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Patterns are files, directories or globs, as accepted by source.Expand.
	Patterns []string
	Rules    []lint.Rule
	Lint     *lint.Config
	Walk     source.WalkOptions
	// Delay debounces bursts of events. Default: DefaultDelay.
	Delay time.Duration
	// OnResults receives the results of the initial run and of every batch.
	OnResults func([]lint.FileResult)
	Log       *logging.Logger
}

// Watcher lints a set of files once, then again whenever they change.
type Watcher struct {
	cfg   Config
	files map[string]bool // files matched by a pattern
	dirs  []string        // directories watched recursively

	// Batch processing
	pendingMu sync.Mutex
	pending   map[string]struct{}
	timer     *time.Timer
	ctx       context.Context

	done     chan struct{}
	stopOnce sync.Once
	log      *logging.Logger
}

// New resolves cfg.Patterns and returns a watcher for them.
func New(cfg Config) (*Watcher, error) {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.OnResults == nil {
		cfg.OnResults = func([]lint.FileResult) {}
	}
	log := cfg.Log
	if log == nil {
		log = logging.Discard()
	}

	w := &Watcher{
		cfg:     cfg,
		files:   make(map[string]bool),
		pending: make(map[string]struct{}),
		ctx:     context.Background(),
		done:    make(chan struct{}),
		log:     log.WithComponent("watch"),
	}

	for _, pattern := range cfg.Patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", source.ErrNoMatch, pattern)
		}
		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, err
			}
			info, err := os.Stat(abs)
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				w.dirs = append(w.dirs, abs)
			} else {
				w.files[abs] = true
			}
		}
	}
	return w, nil
}

// Paths returns the markup files currently covered by the watcher, sorted.
func (w *Watcher) Paths() ([]string, error) {
	seen := make(map[string]bool)
	for f := range w.files {
		seen[f] = true
	}
	for _, dir := range w.dirs {
		err := source.WalkDir(dir, w.cfg.Walk, func(path string) error {
			seen[path] = true
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// Run lints every covered file, then watches for changes until ctx is
// cancelled or Stop is called.
func (w *Watcher) Run(ctx context.Context) error {
	w.pendingMu.Lock()
	w.ctx = ctx
	w.pendingMu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()
	defer w.cancelTimer()

	// Watches go in before the initial run so no change is missed.
	if err := w.addWatches(fsw); err != nil {
		return err
	}

	paths, err := w.Paths()
	if err != nil {
		return err
	}
	w.log.Info("initial lint", "files", len(paths))
	w.cfg.OnResults(lint.LintFiles(ctx, paths, w.cfg.Rules, w.cfg.Lint, w.log))
	w.log.Info("watching for changes", "dirs", len(w.dirs), "files", len(w.files))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, fsw)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Error("watcher error")
		}
	}
}

// Stop ends Run.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
}

func (w *Watcher) addWatches(fsw *fsnotify.Watcher) error {
	// Single files are watched through their directory so that editors
	// replacing the file by rename keep being seen.
	parents := make(map[string]bool)
	for f := range w.files {
		parents[filepath.Dir(f)] = true
	}
	for dir := range parents {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	for _, root := range w.dirs {
		if err := w.addTree(fsw, root); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.log.WithError(err).Warn("error walking path", "path", path)
			return filepath.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && source.SkipDir(d.Name(), w.cfg.Walk) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

// wants reports whether a change to path should trigger a re-lint.
func (w *Watcher) wants(path string) bool {
	if w.files[path] {
		return true
	}
	return source.IsMarkup(path) && w.inTree(filepath.Dir(path))
}

// inTree reports whether dir lies in a watched directory tree without
// crossing a directory the walk options exclude.
func (w *Watcher) inTree(dir string) bool {
	for _, root := range w.dirs {
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		excluded := false
		for _, name := range strings.Split(rel, string(filepath.Separator)) {
			if name != "." && source.SkipDir(name, w.cfg.Walk) {
				excluded = true
				break
			}
		}
		if !excluded {
			return true
		}
	}
	return false
}

func (w *Watcher) handleEvent(event fsnotify.Event, fsw *fsnotify.Watcher) {
	path := filepath.Clean(event.Name)

	// New directories under a watched tree are watched too.
	if event.Has(fsnotify.Create) && fsw != nil {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if w.inTree(path) {
				if err := w.addTree(fsw, path); err != nil {
					w.log.WithError(err).Warn("failed to watch directory", "path", path)
				}
			}
			return
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if !w.wants(path) {
		return
	}
	w.log.Debug("change", "path", path, "op", event.Op.String())
	w.queue(path)
}

// queue adds path to the pending batch and restarts the debounce timer.
func (w *Watcher) queue(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.cfg.Delay, w.flush)
}

func (w *Watcher) cancelTimer() {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// flush re-lints the pending batch. Removed files are dropped.
func (w *Watcher) flush() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	ctx := w.ctx
	w.pendingMu.Unlock()

	if ctx.Err() != nil {
		return
	}

	sort.Strings(paths)
	present := paths[:0]
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			w.log.WithFile(path).Debug("file removed")
			continue
		}
		present = append(present, path)
	}
	if len(present) == 0 {
		return
	}

	w.log.Info("re-linting", "count", len(present))
	w.cfg.OnResults(lint.LintFiles(ctx, present, w.cfg.Rules, w.cfg.Lint, w.log))
}
