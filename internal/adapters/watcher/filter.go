package watcher

import (
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ContentFilter drops events for files whose bytes did not change,
// such as a save without edits or a touch.
type ContentFilter struct {
	mu      sync.Mutex
	digests map[string]uint64
}

// NewContentFilter creates an empty filter.
func NewContentFilter() *ContentFilter {
	return &ContentFilter{digests: make(map[string]uint64)}
}

// Seed records the current digest of path without reporting it.
func (f *ContentFilter) Seed(path string) {
	sum, err := digest(path)
	if err != nil {
		return
	}
	f.mu.Lock()
	f.digests[path] = sum
	f.mu.Unlock()
}

// Changed reports whether path differs from the last digest seen.
// Unknown, removed and unreadable files always count as changed.
func (f *ContentFilter) Changed(path string) bool {
	sum, err := digest(path)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		delete(f.digests, path)
		return true
	}
	prev, seen := f.digests[path]
	f.digests[path] = sum
	return !seen || prev != sum
}

// Filter returns the changed subset of paths, keeping their order.
func (f *ContentFilter) Filter(paths []string) []string {
	changed := paths[:0:0]
	for _, p := range paths {
		if f.Changed(p) {
			changed = append(changed, p)
		}
	}
	return changed
}

func digest(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return xxhash.Sum64String(info.Name()), nil
	}

	f, err := os.Open(path) //nolint:gosec // paths come from the watched tree
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
