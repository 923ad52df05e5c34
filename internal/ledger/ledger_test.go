package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kharcha/internal/core"
	"kharcha/internal/storage"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	l, err := Open(store)
	require.NoError(t, err)
	return l
}

func expense(title string, cents int64, category, date string) core.Expense {
	d, _ := core.ParseDate(date)
	return core.Expense{Title: title, Amount: core.Money{Cents: cents}, Category: category, Date: d}
}

func total(l *Ledger) int64 {
	var sum int64
	for _, e := range l.All() {
		sum += e.Amount.Cents
	}
	return sum
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	l := newTestLedger(t)

	a, err := l.Add(expense("Coffee", 5000, "Food", "2024-01-15"))
	require.NoError(t, err)
	b, err := l.Add(expense("Bus", 1000, "Transport", "2024-01-16"))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, l.Count())
}

func TestAddRejectsInvalidRecords(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.Add(expense("", 100, "Food", "2024-01-15"))
	assert.ErrorIs(t, err, core.ErrEmptyTitle)

	_, err = l.Add(core.Expense{Title: "x", Amount: core.Money{Cents: 1}, Category: "c"})
	assert.ErrorIs(t, err, core.ErrInvalidDate)

	assert.Equal(t, 0, l.Count())
}

func TestUpdateMergesPartialFields(t *testing.T) {
	l := newTestLedger(t)
	a, err := l.Add(expense("Coffee", 5000, "Food", "2024-01-15"))
	require.NoError(t, err)

	amt := core.Money{Cents: 7500}
	got, err := l.Update(a.ID, Patch{Amount: &amt})
	require.NoError(t, err)

	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "Coffee", got.Title)
	assert.Equal(t, "Food", got.Category)
	assert.Equal(t, "2024-01-15", got.Date.String())
	assert.Equal(t, int64(7500), got.Amount.Cents)

	got, err = l.Update(a.ID, Patch{Title: "Espresso", Category: "Drinks"})
	require.NoError(t, err)
	assert.Equal(t, "Espresso", got.Title)
	assert.Equal(t, "Drinks", got.Category)
	assert.Equal(t, int64(7500), got.Amount.Cents)
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	l := newTestLedger(t)
	_, err := l.Update("missing", Patch{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	l := newTestLedger(t)
	a, err := l.Add(expense("Coffee", 5000, "Food", "2024-01-15"))
	require.NoError(t, err)

	require.NoError(t, l.Remove(a.ID))
	assert.Equal(t, 0, l.Count())

	// Unknown id removes zero records and is not an error.
	require.NoError(t, l.Remove("missing"))
}

func TestTotalNeverDrifts(t *testing.T) {
	l := newTestLedger(t)

	a, _ := l.Add(expense("a", 3000, "Food", "2024-01-01"))
	b, _ := l.Add(expense("b", 2000, "Food", "2024-01-02"))
	l.Add(expense("c", 1000, "Transport", "2024-01-03"))
	assert.Equal(t, int64(6000), total(l))

	amt := core.Money{Cents: 500}
	_, err := l.Update(b.ID, Patch{Amount: &amt})
	require.NoError(t, err)
	assert.Equal(t, int64(4500), total(l))

	require.NoError(t, l.Remove(a.ID))
	assert.Equal(t, int64(1500), total(l))
}

func TestReplaceAllAndClear(t *testing.T) {
	l := newTestLedger(t)
	l.Add(expense("old", 100, "Food", "2024-01-01"))

	records := []core.Expense{
		{ID: "r1", Title: "restored", Amount: core.Money{Cents: 42}, Category: "Misc", Date: core.NewDate(2023, 5, 5)},
	}
	require.NoError(t, l.ReplaceAll(records))
	all := l.All()
	require.Len(t, all, 1)
	assert.Equal(t, "r1", all[0].ID)

	require.NoError(t, l.Clear())
	assert.Equal(t, 0, l.Count())
}

func TestQueryDoesNotMutate(t *testing.T) {
	l := newTestLedger(t)
	l.Add(expense("a", 100, "Food", "2024-01-01"))
	l.Add(expense("b", 200, "Transport", "2024-01-02"))

	food := l.Query(func(e core.Expense) bool { return e.Category == "Food" })
	require.Len(t, food, 1)
	food[0].Title = "mutated"

	assert.Equal(t, "a", l.All()[0].Title)
	assert.Equal(t, 2, l.Count())
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	l, err := Open(store)
	require.NoError(t, err)

	a, err := l.Add(expense("Coffee", 5000, "Food", "2024-01-15"))
	require.NoError(t, err)
	require.NoError(t, l.SetPreferences(core.Preferences{
		Budget: core.Money{Cents: 10000},
		Income: core.Money{Cents: 50000},
		Theme:  core.ThemeDark,
	}))

	store2, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	l2, err := Open(store2)
	require.NoError(t, err)

	all := l2.All()
	require.Len(t, all, 1)
	assert.Equal(t, a, all[0])
	assert.Equal(t, core.ThemeDark, l2.Preferences().Theme)
	assert.Equal(t, int64(10000), l2.Preferences().Budget.Cents)
}

func TestOpenBackfillsTheme(t *testing.T) {
	l := newTestLedger(t)
	assert.Equal(t, core.ThemeAuto, l.Preferences().Theme)
}

func TestRevisionBumpsOnMutation(t *testing.T) {
	l := newTestLedger(t)
	r0 := l.Revision()

	a, err := l.Add(expense("a", 100, "Food", "2024-01-01"))
	require.NoError(t, err)
	r1 := l.Revision()
	assert.Greater(t, r1, r0)

	require.NoError(t, l.Remove(a.ID))
	assert.Greater(t, l.Revision(), r1)
}

type failingStore struct{ storage.Store }

func (failingStore) SaveExpenses([]core.Expense) error { return errors.New("disk full") }

func TestPersistFailureRollsBack(t *testing.T) {
	inner, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	l, err := Open(failingStore{inner})
	require.NoError(t, err)

	_, err = l.Add(expense("a", 100, "Food", "2024-01-01"))
	require.Error(t, err)
	assert.Equal(t, 0, l.Count())
}

func TestRemovePersistFailureRollsBack(t *testing.T) {
	inner, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	l, err := Open(inner)
	require.NoError(t, err)
	a, err := l.Add(expense("a", 100, "Food", "2024-01-01"))
	require.NoError(t, err)

	broken := &Ledger{store: failingStore{inner}, records: l.All(), prefs: l.Preferences()}
	require.Error(t, broken.Remove(a.ID))
	assert.Equal(t, 1, broken.Count(), "record stays after a failed persist")
	assert.Equal(t, a.ID, broken.All()[0].ID)
}
