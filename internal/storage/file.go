package storage

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileStore persists the room list as a JSON string array in a single flat
// file, rewritten wholesale on every save. Rooms are the only durable state
// this service keeps.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the room list. A missing file is not an error: it returns an
// empty list so the caller can seed defaults.
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var rooms []string
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return rooms, nil
}

func (s *FileStore) Save(rooms []string) error {
	data, err := json.MarshalIndent(rooms, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
