// Package watcher notifies when a single file changes on disk.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"gcodegen/internal/logging"
)

// DefaultDebounce is the quiet period before a change is reported
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a file for changes
type Watcher struct {
	path     string
	onChange func()
	debounce time.Duration
}

// New creates a new file watcher
func New(path string, onChange func()) *Watcher {
	return &Watcher{
		path:     path,
		onChange: onChange,
		debounce: DefaultDebounce,
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Path returns the watched file path
func (w *Watcher) Path() string {
	return w.path
}

// Watch starts watching the file for changes.
// It blocks until the context is cancelled or an error occurs.
// onChange runs on the Watch goroutine, never concurrently with itself.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	// Watch the directory containing the file.
	// Atomic saves replace the file, which drops a watch on the file itself.
	dir := filepath.Dir(w.path)
	filename := filepath.Base(w.path)

	if err := fw.Add(dir); err != nil {
		return err
	}

	log := logging.L().With("path", w.path)
	log.Info("watching for changes", "debounce", w.debounce)

	fire := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			log.Debug("file event", "op", event.Op.String())

			// Debounce rapid changes
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			log.Info("file changed")
			w.onChange()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
