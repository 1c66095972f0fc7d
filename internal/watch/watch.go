// Package watch reports changes to the custom games directory and the
// library file so the launcher can rescan or reload.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long the watcher waits for changes to stop before
// reporting them.
const DefaultDelay = 500 * time.Millisecond

// Event lists the watched paths that changed during one quiet period.
type Event struct {
	Paths []string
}

// Has reports whether path changed, or anything inside it when path is a
// directory.
func (e Event) Has(path string) bool {
	path = filepath.Clean(path)
	for _, p := range e.Paths {
		if p == path || filepath.Dir(p) == path {
			return true
		}
	}
	return false
}

// Watcher debounces fsnotify events for a fixed set of files and
// directories.
type Watcher struct {
	logger *slog.Logger
	delay  time.Duration
	fs     *fsnotify.Watcher
	files  map[string]bool
	dirs   map[string]bool
	events chan Event
}

// New watches paths. Files are watched through their parent directory.
// Paths that do not exist yet are skipped.
func New(logger *slog.Logger, delay time.Duration, paths ...string) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		logger: logger,
		delay:  delay,
		fs:     fsw,
		files:  map[string]bool{},
		dirs:   map[string]bool{},
		events: make(chan Event, 1),
	}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	if path == "" {
		return nil
	}
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// The file may appear later; watch its directory if that exists.
			if _, derr := os.Stat(filepath.Dir(path)); derr == nil {
				w.files[path] = true
				return w.fs.Add(filepath.Dir(path))
			}
			w.logger.Debug("not watching missing path", "path", path)
			return nil
		}
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if info.IsDir() {
		w.dirs[path] = true
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
	} else {
		w.files[path] = true
		if err := w.fs.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}
	w.logger.Debug("added watch", "path", path)
	return nil
}

// Events delivers one Event per quiet period. It is closed when Run
// returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run processes fsnotify events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)
	defer w.fs.Close()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = map[string]bool{}
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = true
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			ev := Event{Paths: make([]string, 0, len(pending))}
			for p := range pending {
				ev.Paths = append(ev.Paths, p)
			}
			slices.Sort(ev.Paths)
			clear(pending)
			w.logger.Debug("change settled", "paths", ev.Paths)
			select {
			case w.events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// relevant drops attribute-only changes, dotfiles and the temporary files
// left by atomic saves.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".tmp") {
		return false
	}
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)]
}
