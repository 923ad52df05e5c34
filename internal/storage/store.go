// Package storage persists the two application documents: the expense
// collection and the preference record. The two are independent keys;
// saving one never touches the other.
//
// Two backends exist. The file backend keeps one JSON document per key
// in a data directory and is the default. The SQLite backend keeps both
// documents in a single database, which is handy when the data dir
// lives on a synced filesystem where atomic renames are unreliable.
package storage

import (
	"kharcha/internal/core"
)

const (
	KeyExpenses    = "expenses"
	KeyPreferences = "prefs"
)

// Store reads and writes the persisted application state. Loads are
// tolerant: absent or corrupt data yields the zero value and no error.
// Saves are fallible and callers must surface failures.
type Store interface {
	LoadExpenses() ([]core.Expense, error)
	SaveExpenses([]core.Expense) error
	LoadPreferences() (core.Preferences, error)
	SavePreferences(core.Preferences) error
	Close() error
}
