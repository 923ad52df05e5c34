// Package ledger owns the authoritative in-memory expense collection
// and the preference record. Every mutation goes through a Ledger
// method: validate, apply, persist, bump the revision counter. Nothing
// else writes to the store.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"dario.cat/mergo"
	"github.com/oklog/ulid/v2"

	"kharcha/internal/core"
	"kharcha/internal/storage"
)

var ErrNotFound = errors.New("expense not found")

// Patch carries the fields of an update. Zero-valued fields are left
// untouched on the target record; the ID never changes.
type Patch struct {
	Title    string
	Amount   *core.Money
	Category string
	Date     core.Date
}

// Ledger is the single state container for the application. It is safe
// for concurrent use, although in practice there is one logical writer.
type Ledger struct {
	mu       sync.RWMutex
	store    storage.Store
	records  []core.Expense
	prefs    core.Preferences
	revision uint64
}

// Open loads both persisted documents. Absent or corrupt data is the
// empty ledger and default preferences; that is not an error.
func Open(store storage.Store) (*Ledger, error) {
	records, err := store.LoadExpenses()
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	prefs, err := store.LoadPreferences()
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	// Backfill anything a partially-written preference record left out.
	_ = mergo.Merge(&prefs, core.DefaultPreferences())

	return &Ledger{store: store, records: records, prefs: prefs}, nil
}

// Add validates the record, assigns an ID when absent and persists.
// IDs are ULIDs, so records created later always sort later on equal
// dates, which keeps display order deterministic.
func (l *Ledger) Add(e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, e)
	if err := l.persistLocked(); err != nil {
		l.records = l.records[:len(l.records)-1]
		return core.Expense{}, err
	}
	return e, nil
}

// Update merges the patch into the matching record. Returns
// ErrNotFound when no record has the id.
func (l *Ledger) Update(id string, patch Patch) (core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.records {
		if e.ID != id {
			continue
		}
		merged := e
		overlay := core.Expense{Title: patch.Title, Category: patch.Category}
		if err := mergo.Merge(&merged, overlay, mergo.WithOverride); err != nil {
			return core.Expense{}, fmt.Errorf("merge patch: %w", err)
		}
		// mergo leaves time-valued and pointer-guarded fields alone;
		// they carry their own "unset" signal.
		if patch.Amount != nil {
			merged.Amount = *patch.Amount
		}
		if !patch.Date.IsZero() {
			merged.Date = patch.Date
		}
		merged.ID = id
		if err := merged.Validate(); err != nil {
			return core.Expense{}, err
		}
		prev := l.records[i]
		l.records[i] = merged
		if err := l.persistLocked(); err != nil {
			l.records[i] = prev
			return core.Expense{}, err
		}
		return merged, nil
	}
	return core.Expense{}, ErrNotFound
}

// Remove deletes every record matching the id (expected exactly one).
// A miss removes nothing and is not an error.
func (l *Ledger) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := make([]core.Expense, 0, len(l.records))
	removed := false
	for _, e := range l.records {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return nil
	}
	prev := l.records
	l.records = kept
	if err := l.persistLocked(); err != nil {
		l.records = prev
		return err
	}
	return nil
}

// ReplaceAll overwrites the collection wholesale. This is the restore
// path: entries are record-shaped but not validated, so malformed
// values flow through into later computations unchanged.
func (l *Ledger) ReplaceAll(records []core.Expense) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.records
	l.records = records
	if err := l.persistLocked(); err != nil {
		l.records = prev
		return err
	}
	return nil
}

// Clear empties the ledger.
func (l *Ledger) Clear() error {
	return l.ReplaceAll(nil)
}

// All returns a copy of the full collection in insertion order.
func (l *Ledger) All() []core.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.Expense, len(l.records))
	copy(out, l.records)
	return out
}

// Query returns the records matching pred. The underlying collection
// is never mutated by queries.
func (l *Ledger) Query(pred func(core.Expense) bool) []core.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []core.Expense
	for _, e := range l.records {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of records.
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Preferences returns the current preference record.
func (l *Ledger) Preferences() core.Preferences {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.prefs
}

// SetPreferences validates and persists the preference record,
// independently of the expense document.
func (l *Ledger) SetPreferences(p core.Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Theme == "" {
		p.Theme = core.ThemeAuto
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.prefs
	l.prefs = p
	if err := l.store.SavePreferences(p); err != nil {
		l.prefs = prev
		return fmt.Errorf("persist preferences: %w", err)
	}
	l.revision++
	return nil
}

// Revision is a monotonic counter bumped on every successful mutation,
// reported by the health endpoint so external checks can notice change.
func (l *Ledger) Revision() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revision
}

func (l *Ledger) persistLocked() error {
	if err := l.store.SaveExpenses(l.records); err != nil {
		return fmt.Errorf("persist expenses: %w", err)
	}
	l.revision++
	return nil
}
