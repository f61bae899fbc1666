package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a configuration file when it changes on disk.
//
// The directory is watched rather than the file so that editors which
// save by renaming a new file over the old one keep triggering reloads.
// Only the newest result is kept: a reload that nobody has received yet
// is replaced by the next one.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	reloads chan *Config
	errors  chan error

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewWatcher starts watching the configuration file at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		fsw:     fsw,
		reloads: make(chan *Config, 1),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Reloads delivers each successfully parsed configuration.
func (w *Watcher) Reloads() <-chan *Config {
	return w.reloads
}

// Errors delivers load and watch failures.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				replace(w.errors, err)
				continue
			}
			replace(w.reloads, cfg)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			replace(w.errors, err)
		}
	}
}

// replace sends v on a capacity-1 channel, dropping an unreceived value.
func replace[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
