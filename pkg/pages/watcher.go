package pages

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports pages of a directory that were written or created.
// Bursts of events for the same file are coalesced.
type Watcher struct {
	dir      string
	match    func(name string) bool
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
}

// NewWatcher starts watching dir. match filters base names; a nil match
// accepts every page name.
func NewWatcher(dir string, match func(name string) bool, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err = fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if match == nil {
		match = IsPageName
	}
	return &Watcher{
		dir:      dir,
		match:    match,
		debounce: 500 * time.Millisecond,
		watcher:  fw,
		logger:   logger,
	}, nil
}

// SetDebounce changes the quiet period before changes are reported.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is done, calling onChange once per changed path after
// each quiet period. onChange runs on the Run goroutine, so calls never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	w.logger.Debug("Watching directory", "dir", w.dir, "debounce", w.debounce)
	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.match(filepath.Base(event.Name)) {
				continue
			}
			w.logger.Debug("Change detected", "path", event.Name, "op", event.Op.String())
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			sort.Strings(paths)
			for _, p := range paths {
				onChange(p)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
