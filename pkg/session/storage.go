package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// Storage persists the credential pair and identity across restarts.
type Storage interface {
	// Load returns the persisted session and whether one was found.
	// A decode failure is an error; absence is not.
	Load() (models.Session, bool, error)
	Save(models.Session) error
	Clear() error
}

// FileStorage keeps the session in a single JSON file. The whole
// session is written in one atomic rename so a reader can never see a
// token without its role or vice versa.
type FileStorage struct {
	Path string
}

// NewFileStorage returns file-backed session storage at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{Path: path}
}

// DefaultSessionPath places the session file under the user config
// directory, falling back to the working directory when the platform
// reports none.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".goldfront-session.json"
	}
	return filepath.Join(dir, "goldfront", "session.json")
}

func (f *FileStorage) Load() (models.Session, bool, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, fmt.Errorf("failed to read session file: %w", err)
	}
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return models.Session{}, false, fmt.Errorf("failed to decode session file: %w", err)
	}
	return s, true, nil
}

func (f *FileStorage) Save(s models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (f *FileStorage) Clear() error {
	err := os.Remove(f.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// NullStorage is a Storage that persists nothing.
type NullStorage struct{}

func (NullStorage) Load() (models.Session, bool, error) { return models.Session{}, false, nil }
func (NullStorage) Save(models.Session) error           { return nil }
func (NullStorage) Clear() error                        { return nil }
