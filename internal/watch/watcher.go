// Package watch re-runs a callback when files under a set of directories
// change.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Watcher monitors directory trees and invokes a callback after changes
// settle. Events are debounced so a burst of writes (editor save, git
// checkout) triggers a single callback.
type Watcher struct {
	fsw      *fsnotify.Watcher
	suffixes []string
	onChange func()
	done     chan struct{}
}

// Start watches each directory tree in dirs for changes to files matching
// one of the given name suffixes. The callback runs on the watcher
// goroutine; it must not block indefinitely.
func Start(dirs []string, suffixes []string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		suffixes: suffixes,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
		// Watch all subdirectories (best effort - don't fail if any can't be watched)
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() || path == dir {
				return nil
			}
			_ = fsw.Add(path)
			return nil
		})
	}

	go w.loop()
	return w, nil
}

// Stop ends watching and releases the underlying watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

func (w *Watcher) loop() {
	defer w.fsw.Close()

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	fire := make(chan struct{}, 1)

	for {
		select {
		case <-w.done:
			return

		case <-fire:
			w.onChange()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			// New subdirectories need their own watch to see files
			// created inside them later.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.fsw.Add(event.Name)
				}
			}

			if !w.relevant(event) {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	for _, suffix := range w.suffixes {
		if strings.HasSuffix(event.Name, suffix) {
			return true
		}
	}
	return false
}
