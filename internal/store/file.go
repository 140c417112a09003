package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// FileStore keeps all slots in a single JSON file under the user's
// config dir. Every write rewrites the file via a temp-file rename.
type FileStore struct {
	path string
	log  zerolog.Logger

	mu    sync.Mutex
	slots map[string]string
}

func NewFile(path string, log zerolog.Logger) (*FileStore, error) {
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(base, "asali", "state.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	s := &FileStore{
		path:  path,
		log:   log,
		slots: map[string]string{},
	}
	s.load()
	return s, nil
}

func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("state file unreadable, starting empty")
		}
		return
	}

	var slots map[string]string
	if err := json.Unmarshal(data, &slots); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("state file corrupt, starting empty")
		return
	}
	s.slots = slots
}

func (s *FileStore) Read(slot string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.slots[slot]
	return value, ok
}

func (s *FileStore) Write(slot string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[slot] = value
	return s.flush()
}

func (s *FileStore) Erase(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slots[slot]; !ok {
		return nil
	}
	delete(s.slots, slot)
	return s.flush()
}

func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
