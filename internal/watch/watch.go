// Package watch reports changes to a single file.
package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/phanxgames/easel"
)

// File watches one file. The parent directory is watched so that editors
// that save by renaming a temporary file are seen.
type File struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

// NewFile starts watching path.
func NewFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch: %w", err)
	}
	f := &File{
		path:    abs,
		watcher: w,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go f.run()
	return f, nil
}

// Changes delivers a value after the file changed. Changes that happen
// before the previous one was received are merged.
func (f *File) Changes() <-chan struct{} {
	return f.changes
}

// Close stops watching.
func (f *File) Close() error {
	close(f.done)
	return f.watcher.Close()
}

func (f *File) run() {
	for {
		select {
		case <-f.done:
			return
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if !f.relevant(event) {
				continue
			}
			select {
			case f.changes <- struct{}{}:
			default:
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			easel.Logger().Warn("watch: error", "path", f.path, "err", err)
		}
	}
}

func (f *File) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != f.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
