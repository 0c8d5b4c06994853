package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for the schema file to settle.
const DefaultDebounce = 100 * time.Millisecond

// WatchFunc receives the outcome of each regeneration.
type WatchFunc func(*Report, error)

// Watch runs once, then regenerates every time the schema file changes until
// ctx is cancelled. Generation errors go to fn and do not stop the watch.
func (e *Engine) Watch(ctx context.Context, debounce time.Duration, fn WatchFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	schema, err := filepath.Abs(e.cfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(schema)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(schema), err)
	}

	fn(e.Run(ctx))
	e.logger.Info("watching schema", "path", schema)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != schema {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			e.logger.Debug("schema changed", "op", event.Op.String())
			timer.Reset(debounce)

		case <-timer.C:
			fn(e.Run(ctx))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watcher error", "error", err)
		}
	}
}
