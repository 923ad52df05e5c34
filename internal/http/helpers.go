package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"kharcha/internal/core"
	"kharcha/internal/render"
)

const flashCookie = "kharcha_flash"

// flash is a one-shot status message carried across a redirect in a
// cookie. Kind is "ok" or "error" and doubles as a CSS class.
type flash struct {
	Kind string
	Text string
}

func setFlash(w http.ResponseWriter, kind, text string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + text),
		Path:     "/",
		MaxAge:   30,
		HttpOnly: true,
	})
}

// popFlash reads and clears the flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request) *flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})

	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	kind, text, ok := strings.Cut(raw, "|")
	if !ok || text == "" {
		return nil
	}
	return &flash{Kind: kind, Text: text}
}

// formatCurrency renders a money value for display, with the rupee
// sign and thousands grouping: ₹1,234.50.
func formatCurrency(m core.Money) string {
	s := m.String()
	whole, frac, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("₹")
	b.WriteString(whole)
	if frac != "" {
		b.WriteString(".")
		b.WriteString(frac)
	}
	return b.String()
}

// parseExpenseForm builds a record from the add/edit form. Field-level
// failures come back as the domain's validation sentinels so the
// handler can tell user error from system error.
func parseExpenseForm(r *http.Request) (core.Expense, error) {
	title := strings.TrimSpace(r.PostFormValue("title"))
	if title == "" {
		return core.Expense{}, core.ErrEmptyTitle
	}

	amount, err := core.ParseAmount(r.PostFormValue("amount"))
	if err != nil {
		return core.Expense{}, err
	}

	date, err := core.ParseDate(r.PostFormValue("date"))
	if err != nil {
		return core.Expense{}, err
	}

	category := strings.TrimSpace(r.PostFormValue("category"))
	if category == "" {
		category = "General"
	}

	return core.Expense{Title: title, Amount: amount, Category: category, Date: date}, nil
}

// isValidationErr separates bad form input, answered with a flash and
// a redirect, from persistence failures, answered with a 500.
func isValidationErr(err error) bool {
	return errors.Is(err, core.ErrEmptyTitle) ||
		errors.Is(err, core.ErrTitleTooLong) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrInvalidTheme)
}

// geometryFrom reads optional w/h/dpr query parameters sent by the
// chart images. Returns false when the request carries no geometry.
func geometryFrom(r *http.Request) (render.Geometry, bool) {
	q := r.URL.Query()
	if q.Get("w") == "" && q.Get("h") == "" && q.Get("dpr") == "" {
		return render.Geometry{}, false
	}
	g := render.DefaultGeometry()
	if w, err := strconv.Atoi(q.Get("w")); err == nil && w > 0 {
		g.Width = w
	}
	if h, err := strconv.Atoi(q.Get("h")); err == nil && h > 0 {
		g.Height = h
	}
	if dpr, err := strconv.ParseFloat(q.Get("dpr"), 64); err == nil && dpr > 0 {
		g.Scale = dpr
	}
	return g, true
}

func writeSVG(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}
