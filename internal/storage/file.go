package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"kharcha/internal/core"
)

// FileStore keeps each document in its own JSON file under dir.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a half-written document behind.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) LoadExpenses() ([]core.Expense, error) {
	var records []core.Expense
	if !s.load(KeyExpenses, &records) {
		return nil, nil
	}
	return records, nil
}

func (s *FileStore) SaveExpenses(records []core.Expense) error {
	if records == nil {
		records = []core.Expense{}
	}
	return s.save(KeyExpenses, records)
}

func (s *FileStore) LoadPreferences() (core.Preferences, error) {
	prefs := core.DefaultPreferences()
	s.load(KeyPreferences, &prefs)
	return prefs, nil
}

func (s *FileStore) SavePreferences(prefs core.Preferences) error {
	return s.save(KeyPreferences, prefs)
}

func (s *FileStore) Close() error { return nil }

// load reports whether the document was read and decoded. A missing
// file is the normal first-run state; a corrupt file is logged and
// treated the same way.
func (s *FileStore) load(key string, v any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Unreadable document, starting empty", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("Corrupt document, starting empty", "key", key, "error", err)
		return false
	}
	return true
}

func (s *FileStore) save(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}
