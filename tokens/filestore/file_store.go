// Package filestore persists a client session as a small JSON document so a
// login survives process restarts, the way browser localStorage does for the
// web front end.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	rperrors "github.com/jrsteele09/research-platform-client/internal/errors"
	"github.com/jrsteele09/research-platform-client/tokens"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

var _ tokens.Store = (*FileStore)(nil)

// FileStore is a tokens.Store backed by a JSON object on an afero filesystem.
// Writes go to a sibling temp file which is then renamed over the target.
type FileStore struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// New creates a store at path on fs. Nothing is written until the first Set.
func New(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// NewOS creates a store on the real filesystem.
func NewOS(path string) *FileStore {
	return New(afero.NewOsFs(), path)
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", rperrors.ErrNotFound
	}
	return v, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)

	if len(values) == 0 {
		if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "FileStore.Remove")
		}
		return nil
	}
	return s.save(values)
}

// Reset deletes the backing file, discarding whatever it holds.
func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "FileStore.Reset")
	}
	return nil
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "FileStore.load ReadFile")
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", rperrors.ErrCorruptStore, s.path, err)
	}
	return values, nil
}

func (s *FileStore) save(values map[string]string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return errors.Wrap(err, "FileStore.save MkdirAll")
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "FileStore.save Marshal")
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, fileMode); err != nil {
		return errors.Wrap(err, "FileStore.save WriteFile")
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrap(err, "FileStore.save Rename")
	}
	return nil
}
