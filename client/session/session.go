// Package session persists the logged-in user on the device.
// One serialized record is held under a single storage key; it is written at
// login/signup, read on every screen mount and cleared at logout.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/user"
)

var ErrNoSession = errors.New("no session stored")

type (
	// Session is the current-user record.
	Session struct {
		User  user.User `json:"user"`
		Token string    `json:"token"`
	}

	Store interface {
		Save(s Session) error
		Load() (Session, error)
		Clear() error
	}
)

// FileStore keeps the session in a single JSON file.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Save(s Session) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshalling session")
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	return errors.Wrap(os.WriteFile(fs.path, data, 0o600), "writing session")
}

func (fs *FileStore) Load() (Session, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNoSession
		}
		return Session{}, errors.Wrap(err, "reading session")
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// a corrupt record is as good as no record
		return Session{}, ErrNoSession
	}
	return s, nil
}

func (fs *FileStore) Clear() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "clearing session")
	}
	return nil
}

// MemStore keeps the session in memory; used in tests.
type MemStore struct {
	s     *Session
	mutex sync.Mutex
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore { return &MemStore{} }

func (ms *MemStore) Save(s Session) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.s = &s
	return nil
}

func (ms *MemStore) Load() (Session, error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	if ms.s == nil {
		return Session{}, ErrNoSession
	}
	return *ms.s, nil
}

func (ms *MemStore) Clear() error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.s = nil
	return nil
}
