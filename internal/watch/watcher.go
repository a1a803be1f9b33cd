// Package watch re-runs generation when its input files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/workspacegen/internal/logfields"
)

// Watcher monitors a set of files and calls onChange after a quiet period.
// Events, debouncing and onChange all run on the goroutine calling Run, so
// runs never overlap.
type Watcher struct {
	files        map[string]struct{}
	dirs         []string
	debounceTime time.Duration
	onChange     func(ctx context.Context) error
	watcher      *fsnotify.Watcher
}

// New creates a watcher for files. Directories containing the files are
// watched rather than the files themselves so editors that replace files
// on save are handled.
func New(files []string, debounce time.Duration, onChange func(ctx context.Context) error) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	w := &Watcher{
		files:        make(map[string]struct{}, len(files)),
		debounceTime: debounce,
		onChange:     onChange,
	}
	seenDirs := map[string]struct{}{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seenDirs[dir]; !ok {
			seenDirs[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	w.watcher = fw
	return w, nil
}

// Run processes events until ctx is done. Errors from onChange are logged
// and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()
	slog.Info("Watching for changes", logfields.Count(len(w.files)))

	timer := time.NewTimer(w.debounceTime)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Op&fsnotify.Remove == fsnotify.Remove {
				slog.Warn("Watched file removed", logfields.File(event.Name))
				continue
			}
			slog.Debug("Change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounceTime)

		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				slog.Error("Regeneration failed", logfields.Error(err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}
