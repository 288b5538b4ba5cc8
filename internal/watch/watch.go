// Package watch reports changes to settings documents on disk.
package watch

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kobzarvs/nppcfg/internal/logger"
)

// DefaultDelay is how long a burst of writes to one document is coalesced.
const DefaultDelay = 100 * time.Millisecond

// ErrClosed is returned by Add once the watcher is closed.
var ErrClosed = errors.New("watcher closed")

// Watcher sends the base name of each watched document that was written,
// created or renamed into place. Writes that arrive within the delay of
// each other are reported once.
type Watcher struct {
	mu     sync.Mutex
	fsw    *fsnotify.Watcher
	names  map[string]bool
	delay  time.Duration
	events chan string
	errors chan error

	pending map[string]bool
	timer   *time.Timer

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New watches dir. With no names every .xml file in dir is reported.
func New(dir string, names ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		names:   make(map[string]bool, len(names)),
		delay:   DefaultDelay,
		events:  make(chan string, 16),
		errors:  make(chan error, 4),
		pending: make(map[string]bool),
		closeCh: make(chan struct{}),
	}
	for _, n := range names {
		w.names[n] = true
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Add watches one more directory, e.g. the plugin lexer directory.
func (w *Watcher) Add(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	return w.fsw.Add(dir)
}

// SetDelay changes the coalescing window. Zero reports every event.
func (w *Watcher) SetDelay(d time.Duration) {
	w.mu.Lock()
	w.delay = d
	w.mu.Unlock()
}

// Events returns the channel of changed document names.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("settings watcher error", "err", err)
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return
	}
	name := filepath.Base(ev.Name)
	if !w.wants(name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.delay <= 0 {
		w.send(name)
		return
	}
	w.pending[name] = true
	if w.timer == nil {
		w.timer = time.AfterFunc(w.delay, w.flush)
	} else {
		w.timer.Reset(w.delay)
	}
}

func (w *Watcher) wants(name string) bool {
	if len(w.names) == 0 {
		return filepath.Ext(name) == ".xml"
	}
	return w.names[name]
}

func (w *Watcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	for name := range w.pending {
		w.send(name)
		delete(w.pending, name)
	}
}

// send must be called with mu held.
func (w *Watcher) send(name string) {
	select {
	case w.events <- name:
	default:
		logger.Debug("settings watcher dropped event", "doc", name)
	}
}
