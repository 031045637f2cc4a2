package ports

import (
	"context"
	"iter"
)

// Watcher defines the interface for watching file system changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given root directory recursively.
	// Directories whose absolute path is in ignore are not watched.
	Start(ctx context.Context, root string, ignore []string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Changes returns an iterator of debounced batches of changed files.
	// Files whose content did not change are filtered out.
	Changes() iter.Seq[[]string]
}
