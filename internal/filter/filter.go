// Package filter narrows the ledger's records down to the visible
// subset: category, month and free-text criteria applied in that
// order, then sorted for display.
package filter

import (
	"sort"
	"strings"

	"kharcha/internal/core"
)

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// Criteria describes the active filter controls.
type Criteria struct {
	Category string // exact category, or CategoryAll/empty
	Month    string // "2006-01", empty means any month
	Search   string // free text, matched case-insensitively
}

// IsZero reports whether no narrowing is active.
func (c Criteria) IsZero() bool {
	return (c.Category == "" || c.Category == CategoryAll) && c.Month == "" && strings.TrimSpace(c.Search) == ""
}

// Apply returns the records passing the criteria, sorted by date
// descending. The search term matches the lowercased title, the
// stringified amount or the lowercased category, and is applied as a
// final narrowing step after the category and month gates. Ties on
// equal dates fall back to ID descending; IDs are time-ordered, so
// newer records come first. Apply is idempotent and never mutates its
// input.
func Apply(records []core.Expense, c Criteria) []core.Expense {
	q := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]core.Expense, 0, len(records))
	for _, e := range records {
		if c.Category != "" && c.Category != CategoryAll && e.Category != c.Category {
			continue
		}
		if c.Month != "" && e.Date.YearMonth() != c.Month {
			continue
		}
		if q != "" && !matchesSearch(e, q) {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func matchesSearch(e core.Expense, q string) bool {
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(e.Amount.Decimal(), q) ||
		strings.Contains(strings.ToLower(e.Category), q)
}

// Categories returns the distinct categories in first-seen order, for
// the filter dropdown.
func Categories(records []core.Expense) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, e := range records {
		if e.Category == "" {
			continue
		}
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	return out
}
