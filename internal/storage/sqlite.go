package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"kharcha/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps both documents as JSON bodies in a single
// documents table, one row per key.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := migrateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) LoadExpenses() ([]core.Expense, error) {
	var records []core.Expense
	if !s.load(KeyExpenses, &records) {
		return nil, nil
	}
	return records, nil
}

func (s *SQLiteStore) SaveExpenses(records []core.Expense) error {
	if records == nil {
		records = []core.Expense{}
	}
	return s.save(KeyExpenses, records)
}

func (s *SQLiteStore) LoadPreferences() (core.Preferences, error) {
	prefs := core.DefaultPreferences()
	s.load(KeyPreferences, &prefs)
	return prefs, nil
}

func (s *SQLiteStore) SavePreferences(prefs core.Preferences) error {
	return s.save(KeyPreferences, prefs)
}

func (s *SQLiteStore) load(key string, v any) bool {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("Unreadable document, starting empty", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		slog.Warn("Corrupt document, starting empty", "key", key, "error", err)
		return false
	}
	return true
}

func (s *SQLiteStore) save(key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO documents (key, body, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		key, body)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
