package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// debounce is how long the watcher waits for a burst of events to settle.
const debounce = 300 * time.Millisecond

// watcher reruns a job whenever one of its input files changes.
type watcher struct {
	job     *job
	fs      *fsnotify.Watcher
	files   map[string]bool
	mu      sync.Mutex
	pending *time.Timer
	runs    chan struct{}
}

// runWatch runs the job once and then again on every change of its inputs
// until interrupted.
func runWatch(j *job) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fs.Close()

	w, err := newWatcher(j, fs)
	if err != nil {
		return err
	}

	return w.loop(ctx)
}

func newWatcher(j *job, fs *fsnotify.Watcher) (*watcher, error) {
	w := &watcher{job: j, fs: fs, files: make(map[string]bool), runs: make(chan struct{}, 1)}

	for _, f := range j.inputs() {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}

		w.files[abs] = true
	}

	// Directories are watched so that editors replacing a file are noticed.
	dirs := lo.Uniq(lo.Map(lo.Keys(w.files), func(f string, _ int) string { return filepath.Dir(f) }))
	for _, dir := range dirs {
		err := fs.Add(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return w, nil
}

func (w *watcher) loop(ctx context.Context) error {
	log := w.job.log

	w.rerun()

	defer func() {
		w.mu.Lock()
		if w.pending != nil {
			w.pending.Stop()
		}
		w.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			if w.relevant(event) {
				w.schedule()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}

			log.Warn("file watcher error", zap.Error(err))
		case <-w.runs:
			w.rerun()
		}
	}
}

func (w *watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	abs, err := filepath.Abs(event.Name)

	return err == nil && w.files[abs]
}

// schedule queues one rerun after the debounce interval.
func (w *watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}

	w.pending = time.AfterFunc(debounce, func() {
		select {
		case w.runs <- struct{}{}:
		default:
		}
	})
}

func (w *watcher) rerun() {
	err := w.job.run()
	if err != nil {
		w.job.log.Error("wrapper pass failed", zap.Error(err))
		return
	}

	w.job.log.Info("waiting for changes", zap.Strings("files", lo.Keys(w.files)))
}
