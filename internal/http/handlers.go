package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"kharcha/internal/backup"
	"kharcha/internal/core"
	"kharcha/internal/filter"
	"kharcha/internal/ledger"
	"kharcha/internal/stats"
)

// indexData is everything the page template needs for one render.
type indexData struct {
	Rows       []core.Expense
	Categories []string
	Filter     filter.Criteria
	Summary    stats.Summary
	Breakdown  []stats.CategoryShare
	Budget     stats.BudgetStatus
	Prefs      core.Preferences
	Dark       bool
	Flash      *flash
	Edit       *core.Expense
	Today      string
	Legend     []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Ask the browser for its color-scheme hint; without these headers
	// it never volunteers one and "auto" would always resolve light.
	w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	w.Header().Set("Critical-CH", "Sec-CH-Prefers-Color-Scheme")
	w.Header().Add("Vary", "Sec-CH-Prefers-Color-Scheme")

	q := r.URL.Query()
	crit := filter.Criteria{
		Category: q.Get("category"),
		Month:    q.Get("month"),
		Search:   q.Get("q"),
	}

	snapshot := s.ledger.All()
	prefs := s.ledger.Preferences()
	summary := stats.Summarize(snapshot, s.now())
	breakdown := stats.Breakdown(snapshot)

	data := indexData{
		Rows:       filter.Apply(snapshot, crit),
		Categories: filter.Categories(snapshot),
		Filter:     crit,
		Summary:    summary,
		Breakdown:  breakdown,
		Budget:     stats.Budget(summary.Total, prefs),
		Prefs:      prefs,
		Dark:       prefs.Theme.Dark(systemPrefersDark(r)),
		Flash:      popFlash(w, r),
		Today:      core.DateOf(s.now()).String(),
	}

	if id := q.Get("edit"); id != "" {
		for _, e := range snapshot {
			if e.ID == id {
				edit := e
				data.Edit = &edit
				break
			}
		}
	}
	// Legend shows the first six categories in first-seen order, not
	// the ranked breakdown.
	data.Legend = data.Categories
	if len(data.Legend) > 6 {
		data.Legend = data.Legend[:6]
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("Render page", "error", err)
	}
}

// systemPrefersDark reads the client-hint header backing the "auto"
// theme; absent hints fall back to light.
func systemPrefersDark(r *http.Request) bool {
	return r.Header.Get("Sec-CH-Prefers-Color-Scheme") == "dark"
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	e, err := parseExpenseForm(r)
	if err == nil {
		_, err = s.ledger.Add(e)
	}
	if err != nil {
		s.fail(w, r, err, "Please enter a valid title, amount and date")
		return
	}

	s.invalidate()
	setFlash(w, "ok", "Expense Added!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	e, err := parseExpenseForm(r)
	if err != nil {
		s.fail(w, r, err, "Please enter a valid title, amount and date")
		return
	}

	patch := ledger.Patch{
		Title:    e.Title,
		Amount:   &e.Amount,
		Category: e.Category,
		Date:     e.Date,
	}
	if _, err := s.ledger.Update(r.PathValue("id"), patch); err != nil {
		// An unknown id means the record vanished between render and
		// submit; treat it as a no-op, like the original does.
		if errors.Is(err, ledger.ErrNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.fail(w, r, err, "Please enter a valid title, amount and date")
		return
	}

	s.invalidate()
	setFlash(w, "ok", "Updated Successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("confirm") != "1" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := s.ledger.Remove(r.PathValue("id")); err != nil {
		s.fail(w, r, err, "")
		return
	}

	s.invalidate()
	setFlash(w, "ok", "Expense Deleted!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("confirm") != "1" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := s.ledger.Clear(); err != nil {
		s.fail(w, r, err, "")
		return
	}

	s.invalidate()
	setFlash(w, "ok", "All data cleared")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.Filename+`"`)
	if err := backup.Export(w, s.ledger.All()); err != nil {
		s.logger.Error("Export backup", "error", err)
	}
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	snapshot := s.ledger.All()
	body, err := backup.ExportXLSX(snapshot, stats.Breakdown(snapshot))
	if err != nil {
		s.logger.Error("Export report", "error", err)
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.ReportFilename+`"`)
	_, _ = w.Write(body)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("backup")
	if err != nil {
		setFlash(w, "error", "Invalid backup file")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	records, err := backup.Import(file)
	if err != nil {
		setFlash(w, "error", "Invalid backup file")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := s.ledger.ReplaceAll(records); err != nil {
		s.fail(w, r, err, "")
		return
	}

	s.invalidate()
	setFlash(w, "ok", "Backup restored")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePrefs(w http.ResponseWriter, r *http.Request) {
	prefs := s.ledger.Preferences()

	// Empty fields clear the figure rather than keeping the old one,
	// matching a blanked-out input.
	budget, err := parseOptionalAmount(r.PostFormValue("budget"))
	if err != nil {
		s.fail(w, r, err, "Please enter valid amounts")
		return
	}
	income, err := parseOptionalAmount(r.PostFormValue("income"))
	if err != nil {
		s.fail(w, r, err, "Please enter valid amounts")
		return
	}
	prefs.Budget = budget
	prefs.Income = income

	if err := s.ledger.SetPreferences(prefs); err != nil {
		s.fail(w, r, err, "Please enter valid amounts")
		return
	}

	s.invalidate()
	setFlash(w, "ok", "Preferences saved")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func parseOptionalAmount(s string) (core.Money, error) {
	if s == "" {
		return core.Money{}, nil
	}
	return core.ParseAmount(s)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	prefs := s.ledger.Preferences()
	prefs.Theme = core.Theme(r.PostFormValue("theme"))
	if err := s.ledger.SetPreferences(prefs); err != nil {
		s.fail(w, r, err, "Unknown theme")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleMonthChart(w http.ResponseWriter, r *http.Request) {
	if g, ok := geometryFrom(r); ok {
		s.pipeline.Resize(g)
	}
	writeSVG(w, s.pipeline.BarSVG())
}

func (s *Server) handleWeekChart(w http.ResponseWriter, r *http.Request) {
	writeSVG(w, s.pipeline.WeekSVG())
}

func (s *Server) handlePieChart(w http.ResponseWriter, r *http.Request) {
	writeSVG(w, s.pipeline.PieSVG())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"uptime":   time.Since(s.started).Round(time.Second).String(),
		"records":  s.ledger.Count(),
		"revision": s.ledger.Revision(),
	})
}

// fail routes an error to the right surface: validation problems flash
// back to the page, anything else is a server fault.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if isValidationErr(err) && msg != "" {
		setFlash(w, "error", msg)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.logger.Error("Request failed", "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
