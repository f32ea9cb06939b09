// Package watch reloads a configuration file whenever it changes on disk.
//
// The watcher observes the file's parent directory rather than the file
// itself so that editors which save by writing a temporary file and renaming
// it over the original are still detected. Extra directories registered with
// WatchDir trigger the same reload.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/stylekit/internal/config"
)

// DefaultDebounce coalesces bursts of events from a single save.
const DefaultDebounce = 100 * time.Millisecond

// Snapshot is the result of one load of the watched file.
type Snapshot struct {
	ID       ulid.ULID
	LoadedAt time.Time
	Config   *config.Config // Nil when Err is set
	Err      error
}

// Age returns a human readable time since the snapshot was taken.
func (s Snapshot) Age() string {
	return humanize.Time(s.LoadedAt)
}

// LoadFunc loads and validates the configuration at path.
type LoadFunc func(path string) (*config.Config, error)

// Watcher watches a configuration file and reloads it on change.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	path     string
	load     LoadFunc
	debounce time.Duration
	dirs     map[string]string // Extra directory -> base name glob

	current  Snapshot
	onChange func(Snapshot)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// New creates a watcher for the configuration file at path.
func New(path string, load LoadFunc, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if load == nil {
		load = config.LoadConfig
	}
	return &Watcher{
		logger:   logger,
		path:     path,
		load:     load,
		debounce: DefaultDebounce,
	}
}

// SetDebounce sets how long to wait after the last event before reloading.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// WatchDir also reloads when a file in dir whose base name matches pattern
// changes, for inputs the load function reads besides the config file.
// A directory that does not exist when Start runs is skipped.
func (w *Watcher) WatchDir(dir, pattern string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dirs == nil {
		w.dirs = make(map[string]string)
	}
	w.dirs[filepath.Clean(dir)] = pattern
}

// SetChangeCallback sets the callback invoked with every new snapshot.
func (w *Watcher) SetChangeCallback(callback func(Snapshot)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Current returns the latest snapshot. The config is a copy.
func (w *Watcher) Current() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return cloneSnapshot(w.current)
}

// Reload loads the file immediately and records the resulting snapshot.
// The callback is not invoked.
func (w *Watcher) Reload() Snapshot {
	snap := w.take()
	w.mu.Lock()
	w.current = snap
	w.mu.Unlock()
	return cloneSnapshot(snap)
}

// Start performs an initial load and begins watching for changes.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	dir := filepath.Clean(filepath.Dir(w.path))
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		w.mu.Unlock()
		return err
	}

	extra := make(map[string]string, len(w.dirs))
	for d, pattern := range w.dirs {
		if d == dir {
			extra[d] = pattern
			continue
		}
		if err := fw.Add(d); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				w.logger.Debug("skipping missing watch directory", "dir", d)
			} else {
				w.logger.Warn("failed to watch directory", "dir", d, "error", err)
			}
			continue
		}
		extra[d] = pattern
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	debounce := w.debounce
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	w.Reload()

	go w.watchLoop(ctx, fw, debounce, extra, stopCh, doneCh)

	w.logger.Debug("config watcher started", "path", w.path, "dir", dir)
	return nil
}

// Stop stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	doneCh := w.doneCh
	if w.running {
		w.running = false
		close(w.stopCh)
	}
	w.mu.Unlock()

	// The loop may already be exiting because its context ended.
	if doneCh != nil {
		<-doneCh
	}
	w.logger.Debug("config watcher stopped")
}

// watchLoop is the main event loop.
func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher, debounce time.Duration, extra map[string]string, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	defer fw.Close()

	configDir, filename := filepath.Clean(filepath.Dir(w.path)), filepath.Base(w.path)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.markStopped(stopCh)
			return
		case <-stopCh:
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			dir, base := filepath.Split(event.Name)
			dir = filepath.Clean(dir)
			if dir == configDir && base == filename {
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					w.logger.Debug("config file event", "file", event.Name, "op", event.Op.String())
					timer.Reset(debounce)
				}
				continue
			}
			if pattern, ok := extra[dir]; ok {
				if match, _ := doublestar.Match(pattern, base); match {
					w.logger.Debug("watched file event", "file", event.Name, "op", event.Op.String())
					timer.Reset(debounce)
				}
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-timer.C:
			w.publish(w.Reload())
		}
	}
}

// markStopped clears the running flag when the context ends the loop.
func (w *Watcher) markStopped(stopCh <-chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running && w.stopCh == stopCh {
		w.running = false
		close(w.stopCh)
	}
}

func (w *Watcher) take() Snapshot {
	cfg, err := w.load(w.path)
	snap := Snapshot{
		ID:       ulid.Make(),
		LoadedAt: time.Now(),
		Config:   cfg,
		Err:      err,
	}
	if err != nil {
		snap.Config = nil
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			w.logger.Warn("config reload rejected", "path", w.path, "issues", len(verr.Issues), "error", err)
		} else {
			w.logger.Warn("config reload failed", "path", w.path, "error", err)
		}
	} else {
		w.logger.Info("config reloaded", "path", w.path, "snapshot", snap.ID.String())
	}
	return snap
}

func (w *Watcher) publish(snap Snapshot) {
	w.mu.RLock()
	callback := w.onChange
	w.mu.RUnlock()

	if callback != nil {
		callback(snap)
	}
}

func cloneSnapshot(s Snapshot) Snapshot {
	if s.Config != nil {
		s.Config = s.Config.Clone()
	}
	return s
}
