package core

import (
	"errors"
	"strings"
)

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

type (
	// Theme selects the UI color scheme. ThemeAuto defers to the
	// client's ambient color-scheme signal at render time.
	Theme string

	// Expense is a single ledger record. ID is assigned once at
	// creation and never changes afterwards.
	Expense struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Amount   Money  `json:"amount"`
		Category string `json:"category"`
		Date     Date   `json:"date"`
	}

	// Preferences holds the user settings persisted independently of
	// the expense collection. Zero budget or income means "unset".
	Preferences struct {
		Budget Money `json:"budget"`
		Income Money `json:"income"`
		Theme  Theme `json:"theme"`
	}
)

var (
	ErrEmptyTitle    = errors.New("empty title")
	ErrTitleTooLong  = errors.New("title too long (max 200 characters)")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidTheme  = errors.New("invalid theme")
)

// DefaultPreferences mirrors the zero state of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeAuto}
}

func (t Theme) Validate() error {
	switch t {
	case ThemeLight, ThemeDark, ThemeAuto:
		return nil
	}
	return ErrInvalidTheme
}

// Dark reports whether the theme resolves to dark, given the client's
// ambient color-scheme hint.
func (t Theme) Dark(systemDark bool) bool {
	return t == ThemeDark || (t == ThemeAuto && systemDark)
}

// Validate enforces the form-level rules: non-empty title, a real
// calendar date and a non-negative amount. The category is an open set
// and is accepted as-is.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > 200 {
		return ErrTitleTooLong
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return e.Amount.Validate()
}

func (p Preferences) Validate() error {
	if p.Budget.Cents < 0 || p.Income.Cents < 0 {
		return ErrInvalidAmount
	}
	if p.Theme == "" {
		return nil
	}
	return p.Theme.Validate()
}
