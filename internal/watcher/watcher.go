// Package watcher re-runs work when a file changes on disk.
//
// The watch targets a single file. fsnotify watches the parent directory and
// events are filtered by name, which keeps the watch alive across editors
// that save via rename-and-replace.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher follows one file and invokes a callback after a burst of
// changes settles.
type FileWatcher struct {
	path      string
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	onChange  func()
	onError   func(error)

	mu     sync.Mutex
	closed bool
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce sets the quiet period changes must settle for before the
// callback fires.
func WithDebounce(d time.Duration) Option {
	return func(f *FileWatcher) {
		if d > 0 {
			f.debouncer = NewDebouncer(d)
		}
	}
}

// WithErrorHandler routes watch errors to fn instead of dropping them.
func WithErrorHandler(fn func(error)) Option {
	return func(f *FileWatcher) {
		f.onError = fn
	}
}

// Follow starts watching path. The file must exist when the watch starts.
// onChange runs on the watcher goroutine after each settled burst of create,
// write, or rename events touching the file; chmod-only events are ignored.
func Follow(path string, onChange func(), opts ...Option) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("watcher: %s is a directory, want a file", path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	f := &FileWatcher{
		path:      abs,
		fsWatcher: fsw,
		debouncer: NewDebouncer(DefaultDebounceDuration),
		onChange:  onChange,
	}
	for _, opt := range opts {
		opt(f)
	}

	go f.run()
	return f, nil
}

// Path returns the absolute path being followed.
func (f *FileWatcher) Path() string {
	return f.path
}

// Close stops the watch and cancels any pending callback. Safe to call more
// than once.
func (f *FileWatcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	f.debouncer.Cancel()
	return f.fsWatcher.Close()
}

func (f *FileWatcher) run() {
	for {
		select {
		case ev, ok := <-f.fsWatcher.Events:
			if !ok {
				return
			}
			f.handle(ev)
		case err, ok := <-f.fsWatcher.Errors:
			if !ok {
				return
			}
			if f.onError != nil {
				f.onError(err)
			}
		}
	}
}

// handle filters directory-level events down to the followed file.
func (f *FileWatcher) handle(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil || abs != f.path {
		return
	}

	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return
	}

	f.debouncer.Trigger(f.onChange)
}
