// Package watcher reports changes to the files a workspace reads, using fsnotify.
package watcher

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/trail/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 16

// DefaultDebounceWindow is the quiet period after the last change before an event is emitted.
const DefaultDebounceWindow = 100 * time.Millisecond

// Watcher watches individual files through their parent directories, so a file replaced by
// rename is still seen.
type Watcher struct {
	mu        sync.Mutex
	window    time.Duration
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
	done      chan struct{}
}

// NewWatcher creates a Watcher. The underlying fsnotify watcher is only created by Start.
func NewWatcher(window time.Duration) *Watcher {
	return &Watcher{window: window}
}

// Start begins watching paths. It fails when the watcher is already running.
func (w *Watcher) Start(ctx context.Context, paths []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher != nil {
		return zerr.New("watcher already started")
	}

	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve watched path"), "path", p)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir)
		}
	}

	events := make(chan ports.WatchEvent, eventChannelBuffer)
	done := make(chan struct{})
	debouncer := NewDebouncer(w.window, func(changed []string) {
		select {
		case events <- ports.WatchEvent{Paths: changed}:
		case <-done:
		}
	})

	w.fsWatcher = fsw
	w.events = events
	w.done = done

	go w.processEvents(ctx, fsw, files, debouncer)
	return nil
}

// Stop stops the running watcher. Stopping an idle watcher does nothing.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopLocked(w.fsWatcher)
}

// stopLocked stops the session owning fsw, unless a newer session replaced it.
func (w *Watcher) stopLocked(fsw *fsnotify.Watcher) error {
	if w.fsWatcher == nil || w.fsWatcher != fsw {
		return nil
	}
	close(w.done)
	w.fsWatcher = nil
	if err := fsw.Close(); err != nil {
		return zerr.Wrap(err, "failed to close file watcher")
	}
	return nil
}

// Events yields change events of the current session until it stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	w.mu.Lock()
	events, done := w.events, w.done
	w.mu.Unlock()

	return func(yield func(ports.WatchEvent) bool) {
		if events == nil {
			return
		}
		for {
			select {
			case ev := <-events:
				if !yield(ev) {
					return
				}
			case <-done:
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context, fsw *fsnotify.Watcher, files map[string]struct{}, d *Debouncer) {
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			_ = w.stopLocked(fsw)
			w.mu.Unlock()
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if _, watched := files[filepath.Clean(event.Name)]; watched {
				d.Add(filepath.Clean(event.Name))
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			_, _ = fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

// relevant reports whether event may have changed file contents.
func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
