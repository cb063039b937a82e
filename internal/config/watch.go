package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadDebounce coalesces bursts of writes from editors that save in
// several steps.
const ReloadDebounce = 50 * time.Millisecond

// ReloadFunc receives the reloaded configuration, or the error that
// prevented loading it.
type ReloadFunc func(cfg Config, err error)

// Watch reloads the config file at path whenever it changes and passes the
// result to fn. The containing directory is watched so atomic-rename saves
// are seen. Watching stops when ctx is done. fn runs on the watcher
// goroutine.
func Watch(ctx context.Context, path string, fn ReloadFunc) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()

		timer := time.NewTimer(ReloadDebounce)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				timer.Reset(ReloadDebounce)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				fn(Config{}, fmt.Errorf("watching %s: %w", abs, err))
			case <-timer.C:
				fn(Load(abs))
			}
		}
	}()
	return nil
}
