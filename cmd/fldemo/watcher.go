package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long the config file must stay quiet before a
// change is acted on.
const watchDebounce = 300 * time.Millisecond

// watchConfig calls onChange each time the file at path is written, until
// ctx is done. The directory is watched rather than the file so editors
// that save by renaming are seen.
func watchConfig(ctx context.Context, path string, onChange func(), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	absPath, _ := filepath.Abs(path)

	var debounce <-chan time.Time
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			evAbs, _ := filepath.Abs(ev.Name)
			if evAbs != absPath || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(watchDebounce)
			debounce = timer.C

		case <-debounce:
			timer, debounce = nil, nil
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onError(err)
		}
	}
}
