// Package http is the UI surface: it wires the ledger, the filter
// engine, the aggregation engine and the render pipeline to a
// server-rendered page. Handlers follow one shape: mutate through the
// ledger, invalidate the pipeline, redirect back to the page.
package http

import (
	"html/template"
	"net/http"
	"time"

	"kharcha/internal/ledger"
	"kharcha/internal/log"
	"kharcha/internal/render"
	"kharcha/web"
)

type Server struct {
	http.Server

	ledger    *ledger.Ledger
	pipeline  *render.Pipeline
	templates *template.Template
	logger    *log.Logger
	now       func() time.Time
	started   time.Time
}

func NewServer(addr string, led *ledger.Ledger, pipe *render.Pipeline, logger *log.Logger) (*Server, error) {
	s := &Server{
		ledger:   led,
		pipeline: pipe,
		logger:   logger.WithComponent("http"),
		now:      time.Now,
		started:  time.Now(),
	}

	funcs := template.FuncMap{
		"money": formatCurrency,
		"color": render.Color,
	}
	t, err := template.New("").Funcs(funcs).ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s.templates = t

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.FileServerFS(web.StaticFS))
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /expenses", s.handleCreate)
	mux.HandleFunc("POST /expenses/{id}", s.handleUpdate)
	mux.HandleFunc("POST /expenses/{id}/delete", s.handleDelete)
	mux.HandleFunc("POST /clear", s.handleClear)

	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("GET /export.xlsx", s.handleExportXLSX)
	mux.HandleFunc("POST /import", s.handleImport)

	mux.HandleFunc("POST /prefs", s.handlePrefs)
	mux.HandleFunc("POST /theme", s.handleTheme)

	mux.HandleFunc("GET /charts/month.svg", s.handleMonthChart)
	mux.HandleFunc("GET /charts/week.svg", s.handleWeekChart)
	mux.HandleFunc("GET /charts/pie.svg", s.handlePieChart)

	s.Server = http.Server{Addr: addr, Handler: s.withLogging(mux)}
	return s, nil
}

// withLogging logs one line per request with method, path, status and
// duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// invalidate pushes a fresh ledger snapshot through the render
// pipeline. Call after every successful mutation.
func (s *Server) invalidate() {
	s.pipeline.Invalidate(s.ledger.All())
}
