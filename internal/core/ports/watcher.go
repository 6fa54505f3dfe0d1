package ports

import (
	"context"
	"iter"
)

//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks

// WatchEvent reports that one or more watched files changed.
type WatchEvent struct {
	// Paths lists the changed files as absolute paths, sorted.
	Paths []string
}

// Watcher reports changes to a fixed set of files.
type Watcher interface {
	// Start begins watching paths until ctx is done or Stop is called.
	Start(ctx context.Context, paths []string) error
	// Stop stops watching and releases all resources.
	Stop() error
	// Events yields coalesced change events until the watcher stops.
	Events() iter.Seq[WatchEvent]
}
