package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk.
//
// The parent directory is watched rather than the file, so editors that save
// by renaming a temp file over the original are picked up too.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan *Config
	errors  chan error
	done    chan struct{}
	stopped chan struct{}
}

// Watch starts watching path. Reloaded configs arrive on Updates, load and
// validation failures on Errors; neither stops the watcher.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fsWatch,
		updates: make(chan *Config, 1),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Updates delivers the most recent successfully loaded config.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Errors delivers reload failures.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fs.Close()
	<-w.stopped
	return err
}

func (w *Watcher) run() {
	defer close(w.stopped)
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path || e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadFile(w.path)
			if err != nil {
				publish(w.errors, err, w.done)
				continue
			}
			publish(w.updates, cfg, w.done)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			publish(w.errors, err, w.done)

		case <-w.done:
			return
		}
	}
}

// publish replaces any value still waiting in ch with v, so a slow reader
// only ever sees the latest state.
func publish[T any](ch chan T, v T, done <-chan struct{}) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	case <-done:
	}
}
