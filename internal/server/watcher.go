package server

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports changes to catalog files in the watched directories.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	onChange func(path string)
}

// NewWatcher creates a watcher that calls onChange for every catalog file
// that is created, written, removed or renamed.
func NewWatcher(logger *zap.Logger, onChange func(path string)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{watcher: w, logger: logger, onChange: onChange}, nil
}

// Add watches dir. Adding the same directory twice is harmless.
func (w *Watcher) Add(dir string) error {
	return w.watcher.Add(dir)
}

// Run delivers events until ctx is cancelled or the watcher is closed, and
// closes the watcher on return.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !isCatalogFile(event.Name) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	w.logger.Debug("Catalog file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
	if w.onChange != nil {
		w.onChange(event.Name)
	}
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}
