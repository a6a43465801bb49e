package webclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/noteleaf/noteleaf/models"
)

// ErrNoStoredSession means no session record has been persisted yet.
var ErrNoStoredSession = errors.New("no stored session")

// SessionStore persists the paired session between launches. The presence
// of a record alone is sufficient to attempt restoration.
type SessionStore interface {
	Load() (models.WebSessionRecord, error)
	Save(record models.WebSessionRecord) error
	Wipe() error
}

// FileSessionStore keeps the session record in a single JSON file.
type FileSessionStore struct {
	path string
}

// NewFileSessionStore stores the record at path, creating parent
// directories on first save.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Load() (models.WebSessionRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.WebSessionRecord{}, ErrNoStoredSession
		}
		return models.WebSessionRecord{}, fmt.Errorf("read session record: %w", err)
	}

	var record models.WebSessionRecord
	if err = json.Unmarshal(data, &record); err != nil {
		// повреждённый файл равнозначен отсутствию сессии
		return models.WebSessionRecord{}, ErrNoStoredSession
	}
	if record.PhoneURL == "" || record.Token == "" {
		return models.WebSessionRecord{}, ErrNoStoredSession
	}

	return record, nil
}

func (s *FileSessionStore) Save(record models.WebSessionRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

func (s *FileSessionStore) Wipe() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session record: %w", err)
	}
	return nil
}
