// Package watch reports changes to a single file.
//
// The parent directory is watched rather than the file itself, so editors
// and atomic saves that replace the file by rename keep being noticed.
// When fsnotify is unavailable the watcher polls the file's mtime.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is the stat interval used in polling mode.
const DefaultPollInterval = 2 * time.Second

// Watcher signals on Events each time the watched file is written,
// created or renamed into place.
type Watcher struct {
	path string
	name string

	// events is buffered to 1 so back-to-back writes coalesce.
	events chan struct{}
	done   chan struct{}
	once   sync.Once

	fsw          *fsnotify.Watcher
	polling      atomic.Bool
	pollInterval time.Duration
	logger       *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithPollInterval sets the interval used when polling.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// WithLogger sets the logger for fallback and error reports.
// Without it the watcher is silent, like the backdrop packages.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithPolling forces stat-based polling instead of fsnotify.
func WithPolling() Option {
	return func(w *Watcher) {
		w.polling.Store(true)
	}
}

// New starts watching path. The file does not need to exist yet, but its
// directory does.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	dir := filepath.Dir(abs)
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", dir)
	}

	w := &Watcher{
		path:         abs,
		name:         filepath.Base(abs),
		events:       make(chan struct{}, 1),
		done:         make(chan struct{}),
		pollInterval: DefaultPollInterval,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.polling.Load() {
		go w.poll()
		return w, nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Info("fsnotify unavailable, falling back to polling", "err", err)
		w.polling.Store(true)
		go w.poll()
		return w, nil
	}
	if err := fsw.Add(dir); err != nil {
		w.logger.Info("cannot watch directory, falling back to polling", "dir", dir, "err", err)
		_ = fsw.Close()
		w.polling.Store(true)
		go w.poll()
		return w, nil
	}

	w.fsw = fsw
	go w.watch(fsw)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Events returns a channel that receives a signal when the file changes.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Polling reports whether the watcher is using polling instead of fsnotify.
func (w *Watcher) Polling() bool { return w.polling.Load() }

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		if w.fsw != nil {
			if cerr := w.fsw.Close(); cerr != nil {
				err = fmt.Errorf("watch: close fsnotify watcher: %w", cerr)
			}
		}
	})
	return err
}

func (w *Watcher) watch(fsw *fsnotify.Watcher) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.notify()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Info("fsnotify error, switching to polling", "err", err)
			w.polling.Store(true)
			go w.poll()
			return
		}
	}
}

// poll stats the file and signals when its modification time or size
// changes.
func (w *Watcher) poll() {
	lastMod, lastSize := w.stat()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			mod, size := w.stat()
			if !mod.Equal(lastMod) || size != lastSize {
				lastMod, lastSize = mod, size
				w.notify()
			}
		}
	}
}

func (w *Watcher) stat() (time.Time, int64) {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}, -1
	}
	return info.ModTime(), info.Size()
}

// notify sends one signal, dropping it if one is already pending.
func (w *Watcher) notify() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}
