package herofx

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDebounce collapses the burst of events editors emit on save.
const reloadDebounce = 150 * time.Millisecond

// WatchConfig watches the config file at path and sends every valid
// reloaded config on the returned channel. Invalid edits are logged and
// skipped. The channel is closed when ctx is cancelled.
//
// The parent directory is watched; events for other files are ignored.
func WatchConfig(ctx context.Context, path string, log *zap.Logger) (<-chan *Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan *Config, 1)
	go runConfigWatch(ctx, w, abs, out, log)
	return out, nil
}

func runConfigWatch(ctx context.Context, w *fsnotify.Watcher, path string, out chan<- *Config, log *zap.Logger) {
	defer close(out)
	defer w.Close()

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(reloadDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("config watcher error", zap.Error(err))

		case <-timer.C:
			cfg, err := LoadConfig(path)
			if err != nil {
				log.Warn("config reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			log.Info("config reloaded", zap.String("path", path))
			select {
			case out <- cfg:
			case <-ctx.Done():
				return
			}
		}
	}
}
