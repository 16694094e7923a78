package file

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

type FileEvent struct {
	Filepath    string
	FileCreated bool
}

type Listener func(FileEvent)

// Watcher reports writes and creations of a single file. The parent
// directory is watched so that atomic replace-by-rename is observed too.
type Watcher struct {
	name    string
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching the directory of name. The directory must exist.
func NewWatcher(name string) (*Watcher, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", name)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}
	if err = w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}
	return &Watcher{name: abs, watcher: w}, nil
}

// Run dispatches events to listener until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context, listener Listener) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			logger.Error(err)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.name {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				logger.Infof("file created %s", event.Name)
				listener(FileEvent{Filepath: w.name, FileCreated: true})
			} else if event.Op&fsnotify.Write == fsnotify.Write {
				logger.Debugf("file modified %s", event.Name)
				listener(FileEvent{Filepath: w.name, FileCreated: false})
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watch %s error: %s", w.name, err)
		}
	}
}
