package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reports changes to the config file. It returns a channel that
// receives a (coalesced) signal whenever the file is written or recreated;
// watch mode uses it to revalidate active subscriptions after the operator
// edits the base route. The watcher runs until ctx is canceled.
//
// The parent directory is watched rather than the file itself so the common
// editor pattern of rename-and-replace keeps working.
func Watch(ctx context.Context, path string, logger *slog.Logger) (<-chan struct{}, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: creating watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()

		return nil, fmt.Errorf("config: watching %s: %w", dir, err)
	}

	changes := make(chan struct{}, 1)

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}

				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				logger.Info("config file changed", slog.String("path", path))

				select {
				case changes <- struct{}{}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				logger.Warn("config watcher error", slog.String("error", err.Error()))
			}
		}
	}()

	return changes, nil
}
