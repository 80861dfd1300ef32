package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

// Watcher calls onChange whenever one of the watched files is written.
type Watcher struct {
	mu                          sync.Mutex
	watchingDirs, watchingFiles map[string]struct{}

	watcher  *fsnotify.Watcher
	onChange func(path string)
	log      commonlog.Logger
}

func NewWatcher(onChange func(path string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watchingDirs:  make(map[string]struct{}),
		watchingFiles: make(map[string]struct{}),
		watcher:       watcher,
		onChange:      onChange,
		log:           commonlog.GetLogger("golean.watch"),
	}
	go w.eventLoop()

	return w, nil
}

// WatchFile watches path through its parent directory.
func (w *Watcher) WatchFile(path string) error {
	fullPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.watchingFiles[fullPath] = struct{}{}

	dir := filepath.Dir(fullPath)
	if _, ok := w.watchingDirs[dir]; ok {
		return nil
	}

	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	w.watchingDirs[dir] = struct{}{}

	return nil
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) isWatched(fullPath string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watchingFiles[fullPath]
	return ok
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			fname, _ := filepath.Abs(event.Name)
			if !w.isWatched(fname) {
				continue
			}

			w.log.Infof("file %q modified, checking again...", filepath.Base(fname))
			w.onChange(fname)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watch: %s", err)
		}
	}
}

// watchFiles checks files once, then again on every write until ctx is done.
// Each re-check replaces the earlier result for that file only.
func (app *LeanApp) watchFiles(ctx context.Context, files []string) error {
	app.runFiles(files)

	given := make(map[string]string, len(files))
	for _, f := range files {
		fullPath, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		given[fullPath] = f
	}

	var (
		mu      sync.Mutex
		stopped bool
	)
	watcher, err := NewWatcher(func(fullPath string) {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		if f, ok := given[fullPath]; ok {
			app.runFile(f)
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Close()
	defer func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
	}()

	for _, f := range files {
		if err := watcher.WatchFile(f); err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	app.log.Notice("watching files for changes...")
	<-ctx.Done()
	return nil
}
