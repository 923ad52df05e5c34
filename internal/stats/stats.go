// Package stats derives every summary figure shown in the UI from the
// ledger's full contents. All functions are pure: they take the record
// snapshot and the clock explicitly and recompute from scratch, so a
// mutation can never leave a stale partial aggregate behind.
package stats

import (
	"math"
	"sort"
	"time"

	"kharcha/internal/core"
)

const (
	// TopCategories is how many categories are shown individually
	// before the rest collapses into the synthetic "Other" bucket.
	TopCategories = 5

	// OtherBucket is the label of the collapsed remainder.
	OtherBucket = "Other"
)

// Severity classifies budget usage for presentation.
type Severity string

const (
	SeverityNormal  Severity = "normal"  // < 80%
	SeverityWarning Severity = "warning" // 80-99%
	SeverityOver    Severity = "over"    // >= 100%
)

type (
	// Summary holds the headline figures.
	Summary struct {
		Total      core.Money
		MonthTotal core.Money // current calendar month
		Count      int
	}

	// CategoryShare is one row of the breakdown panel.
	CategoryShare struct {
		Name    string
		Amount  core.Money
		Percent float64
	}

	// SeriesPoint is one bar or one polyline vertex.
	SeriesPoint struct {
		Key   string // "2006-01" for months, "2006-01-02" for days
		Label string // 2-char month or day identifier for the axis
		Value core.Money
	}

	// BudgetStatus is the budget bar and savings figure.
	BudgetStatus struct {
		Budget      core.Money
		Income      core.Money
		Spent       core.Money
		UsedPercent int
		Savings     core.Money
		Severity    Severity
	}
)

// Summarize computes the unfiltered total, the current-month total and
// the record count. Totals always reflect the full ledger regardless
// of active filters.
func Summarize(records []core.Expense, now time.Time) Summary {
	s := Summary{Count: len(records)}
	ym := core.DateOf(now).YearMonth()
	for _, e := range records {
		s.Total.Cents += e.Amount.Cents
		if e.Date.YearMonth() == ym {
			s.MonthTotal.Cents += e.Amount.Cents
		}
	}
	return s
}

// Breakdown ranks categories by summed amount descending and keeps the
// top five; everything below collapses into "Other". Percentages use a
// floor-of-one denominator so an all-zero ledger yields 0% rows rather
// than a division error.
func Breakdown(records []core.Expense) []CategoryShare {
	sums := map[string]int64{}
	var total int64
	for _, e := range records {
		sums[e.Category] += e.Amount.Cents
		total += e.Amount.Cents
	}
	if len(sums) == 0 {
		return nil
	}

	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if sums[names[i]] != sums[names[j]] {
			return sums[names[i]] > sums[names[j]]
		}
		return names[i] < names[j]
	})

	denom := total
	if denom == 0 {
		denom = 1
	}
	share := func(name string, cents int64) CategoryShare {
		return CategoryShare{
			Name:    name,
			Amount:  core.Money{Cents: cents},
			Percent: float64(cents) / float64(denom) * 100,
		}
	}

	var out []CategoryShare
	for i, name := range names {
		if i >= TopCategories {
			break
		}
		out = append(out, share(name, sums[name]))
	}
	if len(names) > TopCategories {
		var rest int64
		for _, name := range names[TopCategories:] {
			rest += sums[name]
		}
		out = append(out, share(OtherBucket, rest))
	}
	return out
}

// MonthlySeries is the fixed 12-point window ending at the current
// calendar month, oldest first. Months without expenses report zero.
func MonthlySeries(records []core.Expense, now time.Time) []SeriesPoint {
	sums := map[string]int64{}
	for _, e := range records {
		sums[e.Date.YearMonth()] += e.Amount.Cents
	}

	out := make([]SeriesPoint, 0, 12)
	y, m, _ := now.UTC().Date()
	for i := 11; i >= 0; i-- {
		d := time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		key := d.Format("2006-01")
		out = append(out, SeriesPoint{
			Key:   key,
			Label: key[5:],
			Value: core.Money{Cents: sums[key]},
		})
	}
	return out
}

// WeeklySeries is the fixed 7-point window covering the six preceding
// days through today, oldest first. Only exact day matches count.
func WeeklySeries(records []core.Expense, now time.Time) []SeriesPoint {
	sums := map[string]int64{}
	for _, e := range records {
		sums[e.Date.String()] += e.Amount.Cents
	}

	today := core.DateOf(now)
	out := make([]SeriesPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDays(-i)
		key := d.String()
		out = append(out, SeriesPoint{
			Key:   key,
			Label: key[5:],
			Value: core.Money{Cents: sums[key]},
		})
	}
	return out
}

// Budget computes the usage bar and the savings figure. UsedPercent is
// clamped to 100; Savings may go negative when spending exceeds income.
func Budget(total core.Money, prefs core.Preferences) BudgetStatus {
	st := BudgetStatus{
		Budget:  prefs.Budget,
		Income:  prefs.Income,
		Spent:   total,
		Savings: core.Money{Cents: prefs.Income.Cents - total.Cents},
	}
	if prefs.Budget.Cents > 0 {
		pct := int(math.Round(float64(total.Cents) / float64(prefs.Budget.Cents) * 100))
		st.UsedPercent = pct
		if st.UsedPercent > 100 {
			st.UsedPercent = 100
		}
		switch {
		case pct >= 100:
			st.Severity = SeverityOver
		case pct >= 80:
			st.Severity = SeverityWarning
		default:
			st.Severity = SeverityNormal
		}
		return st
	}
	st.Severity = SeverityNormal
	return st
}

// MaxValue returns the largest point value with a floor of one
// currency unit, the y-scale denominator for both charts.
func MaxValue(series []SeriesPoint) float64 {
	max := 1.0
	for _, p := range series {
		if v := p.Value.Units(); v > max {
			max = v
		}
	}
	return max
}
