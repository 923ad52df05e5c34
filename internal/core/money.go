// Package core holds the domain types shared by every other package:
// expenses, money amounts, calendar dates and user preferences.
//
// Money is stored as integer cents. JSON encoding uses a plain decimal
// number so persisted and exported payloads look like {"amount": 12.5},
// which keeps backups portable and human-readable.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is a currency amount in cents.
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string to Money with half-up rounding
// on the third decimal place. Both dot (12.34) and comma (12,34)
// separators are accepted. Zero is allowed; negative values are not.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return Money{Cents: iv*100 + fracCents}, nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Units returns the amount in currency units for display and scaling.
// Keep calculations in cents; this is for formatting and chart geometry.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount as a plain decimal, e.g. "12.50" or "7.00".
func (m Money) String() string {
	sign := ""
	c := m.Cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return sign + strconv.FormatInt(c/100, 10) + "." + pad2(c%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// Decimal returns the shortest decimal representation of the amount
// ("50", "12.5", "12.34"). This is the wire form and also what the
// free-text search matches against.
func (m Money) Decimal() string {
	c := m.Cents
	neg := c < 0
	if neg {
		c = -c
	}
	s := strconv.FormatInt(c/100, 10)
	switch {
	case c%100 == 0:
	case c%10 == 0:
		s += "." + strconv.FormatInt(c%100/10, 10)
	default:
		s += "." + pad2(c%100)
	}
	if neg {
		s = "-" + s
	}
	return s
}

// MarshalJSON encodes the amount as a plain decimal number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal()), nil
}

// UnmarshalJSON is deliberately lenient: backups restored wholesale are
// not validated record by record, so an unreadable amount decodes to
// zero instead of failing the whole import.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		m.Cents = 0
		return nil
	}
	neg := strings.HasPrefix(s, "-")
	parsed, err := ParseAmount(strings.TrimPrefix(s, "-"))
	if err != nil {
		m.Cents = 0
		return nil
	}
	if neg {
		parsed.Cents = -parsed.Cents
	}
	m.Cents = parsed.Cents
	return nil
}
