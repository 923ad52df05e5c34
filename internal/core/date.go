package core

import (
	"strings"
	"time"
)

// DateLayout is the wire format for dates. ISO dates sort
// lexicographically in chronological order, and the first seven bytes
// are the year-month key used by the month filter and aggregations.
const DateLayout = "2006-01-02"

// Date is a calendar date with day precision, always in UTC.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a point in time to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses an ISO-8601 date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// YearMonth returns the "2006-01" prefix of the date.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON tolerates malformed values the same way Money does: a
// date that does not parse becomes the zero date rather than aborting
// a bulk restore.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		d.Time = time.Time{}
		return nil
	}
	d.Time = parsed.Time
	return nil
}
