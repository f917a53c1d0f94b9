// Package notify watches the task database for writes made by other
// processes, so an open TUI can re-list when `todo add` runs elsewhere.
package notify

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls a function when the database file or its journal changes.
type Watcher struct {
	dir      string
	base     string
	debounce time.Duration
	onChange func()

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

// NewWatcher starts watching the directory holding dbPath. Events on the
// database file and its -wal/-journal siblings invoke onChange at most once
// per debounce window. A zero debounce calls onChange on every event.
func NewWatcher(dbPath string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(dbPath)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		base:     filepath.Base(dbPath),
		debounce: debounce,
		onChange: onChange,
		watcher:  fw,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.watch()

	return w, nil
}

// Close stops the watcher. Pending debounced calls are dropped.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()

		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

// watch forwards relevant events until Close.
func (w *Watcher) watch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.trigger()
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore errors, keep watching
		}
	}
}

// relevant reports whether event touches the database.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	switch filepath.Base(event.Name) {
	case w.base, w.base + "-wal", w.base + "-journal":
		return true
	default:
		return false
	}
}

func (w *Watcher) trigger() {
	if w.debounce <= 0 {
		w.fire()
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}
	w.onChange()
}
