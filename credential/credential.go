// Package credential keeps the binlist API key. An empty key means the free
// tier; the value is never validated here, upstream decides.
package credential

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"git.thinkinpower.net/bincheck/file"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

type Store interface {
	Get(ctx context.Context) (string, error)
	Save(ctx context.Context, apiKey string) error
}

type MemoryStore struct {
	mu     sync.RWMutex
	apiKey string
}

func NewMemoryStore(apiKey string) *MemoryStore {
	return &MemoryStore{apiKey: apiKey}
}

func (m *MemoryStore) Get(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.apiKey, nil
}

func (m *MemoryStore) Save(ctx context.Context, apiKey string) error {
	m.mu.Lock()
	m.apiKey = apiKey
	m.mu.Unlock()
	return nil
}

type prefs struct {
	ApiKey string `json:"api_key"`
}

// FileStore persists the key in a small JSON preferences file. The file is
// re-read whenever it changes on disk while Watch is running.
type FileStore struct {
	path   string
	mu     sync.RWMutex
	apiKey string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, "create credential directory for %s", path)
	}
	s := &FileStore{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Get(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey, nil
}

func (s *FileStore) Save(ctx context.Context, apiKey string) error {
	body, err := json.Marshal(prefs{ApiKey: apiKey})
	if err != nil {
		return errors.Wrap(err, "encode preferences")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	//先写临时文件再rename, 避免读到半个文件
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*")
	if err != nil {
		return errors.Wrap(err, "create temp preferences file")
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(body); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write preferences")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close preferences")
	}
	if err = os.Chmod(tmp.Name(), 0600); err != nil {
		return errors.Wrap(err, "chmod preferences")
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "replace %s", s.path)
	}
	s.apiKey = apiKey
	return nil
}

// Reload reads the preferences file. A missing file means no key.
func (s *FileStore) Reload() error {
	body, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.set("")
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "read %s", s.path)
	}
	if len(body) == 0 {
		s.set("")
		return nil
	}
	var p prefs
	if err = json.Unmarshal(body, &p); err != nil {
		return errors.Wrapf(err, "decode %s", s.path)
	}
	s.set(p.ApiKey)
	return nil
}

func (s *FileStore) set(apiKey string) {
	s.mu.Lock()
	s.apiKey = apiKey
	s.mu.Unlock()
}

// Watch reloads the key on external edits until ctx is done.
func (s *FileStore) Watch(ctx context.Context) error {
	w, err := file.NewWatcher(s.path)
	if err != nil {
		return err
	}
	return w.Run(ctx, func(e file.FileEvent) {
		log := logger.WithField("path", e.Filepath)
		if err := s.Reload(); err != nil {
			log.Warnf("reload credential failed: %s", err)
			return
		}
		if e.FileCreated {
			log.Info("credential file created")
		} else {
			log.Debug("credential file reloaded")
		}
	})
}
