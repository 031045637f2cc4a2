package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 50 * time.Millisecond

// skipDirectories are never watched.
var skipDirectories = map[string]bool{
	".git":                true,
	".jj":                 true,
	domain.NodeModulesDir: true,
}

const batchChannelBuffer = 16

// Watcher implements ports.Watcher on fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	filter    *ContentFilter
	window    time.Duration
	ignore    []string
	batches   chan []string

	mu     sync.Mutex
	closed bool
}

// NewWatcher creates a new file system watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}
	return &Watcher{
		fsWatcher: fsw,
		logger:    logger,
		filter:    NewContentFilter(),
		window:    DefaultDebounceWindow,
		batches:   make(chan []string, batchChannelBuffer),
	}, nil
}

// WithWindow overrides the debounce window.
func (w *Watcher) WithWindow(window time.Duration) *Watcher {
	w.window = window
	return w
}

// Start watches root recursively, skipping the ignored paths.
func (w *Watcher) Start(ctx context.Context, root string, ignore []string) error {
	w.ignore = make([]string, 0, len(ignore))
	for _, p := range ignore {
		w.ignore = append(w.ignore, filepath.Clean(p))
	}

	for dir := range w.walk(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
		}
	}

	debouncer := NewDebouncer(w.window, func(paths []string) {
		w.emit(ctx, w.filter.Filter(paths))
	})

	go w.processEvents(ctx, debouncer)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Changes returns an iterator of changed file batches.
// It ends when the watcher stops or the start context is canceled.
func (w *Watcher) Changes() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for batch := range w.batches {
			if !yield(batch) {
				return
			}
		}
	}
}

// emit delivers a batch unless the watcher has shut down.
func (w *Watcher) emit(ctx context.Context, changed []string) {
	if len(changed) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.batches <- changed:
	case <-ctx.Done():
	}
}

func (w *Watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.batches)
	}
}

func (w *Watcher) walk(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && (skipDirectories[d.Name()] || w.ignored(path)) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// ignored reports whether path is an ignored path or lies below one.
func (w *Watcher) ignored(path string) bool {
	for _, p := range w.ignore {
		if path == p || strings.HasPrefix(path, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) processEvents(ctx context.Context, debouncer *Debouncer) {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				debouncer.Flush()
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if w.ignored(event.Name) {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !skipDirectories[info.Name()] {
						for dir := range w.walk(event.Name) {
							_ = w.fsWatcher.Add(dir)
						}
					}
					continue
				}
			}

			debouncer.Add(event.Name)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("file watcher: " + err.Error())
			}
		}
	}
}
