package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadEvent signals that the configuration file changed on disk.
type ReloadEvent struct {
	// Path is the absolute path of the changed file.
	Path string

	// Time is when the change was observed.
	Time time.Time
}

// Watcher monitors a configuration file and signals writes so the
// application can reload bindings live.
type Watcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	path    string

	events chan ReloadEvent
	errors chan error

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher starts watching the configuration file at path.
// fsnotify watches the containing directory so that editors which
// replace the file on save (write to temp, rename over) are still seen.
func NewWatcher(path string) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		path:    absPath,
		events:  make(chan ReloadEvent, 8),
		errors:  make(chan error, 8),
		closeCh: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Events returns the reload event channel.
func (w *Watcher) Events() <-chan ReloadEvent {
	return w.events
}

// Errors returns the watcher error channel.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()

	close(w.events)
	close(w.errors)

	return err
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handleFSEvent filters directory events down to writes of the watched
// file.
func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	if filepath.Clean(fsEvent.Name) != w.path {
		return
	}
	if !fsEvent.Op.Has(fsnotify.Write) && !fsEvent.Op.Has(fsnotify.Create) {
		return
	}

	select {
	case w.events <- ReloadEvent{Path: w.path, Time: time.Now()}:
	default:
		// Channel full; the pending reload already covers this change.
	}
}

// sendError sends an error without blocking.
func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
