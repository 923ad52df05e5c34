package render

import (
	"bytes"
	"sync"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/stats"
)

// Pipeline owns the chart surfaces. Invalidate recomputes the series
// from a fresh ledger snapshot, redraws the pie once, and restarts the
// bar animation; the HTTP layer serves whatever frame is current.
type Pipeline struct {
	mu   sync.RWMutex
	now  func() time.Time
	anim *Animator
	geom Geometry

	monthly []stats.SeriesPoint
	weekly  []stats.SeriesPoint
	shares  []stats.CategoryShare

	barFrame []byte
	pie      []byte
}

func NewPipeline(now func() time.Time) *Pipeline {
	if now == nil {
		now = time.Now
	}
	return &Pipeline{now: now, anim: NewAnimator(), geom: DefaultGeometry()}
}

// Invalidate is the single redraw trigger: every ledger mutation and
// every filter or preference change funnels through here.
func (p *Pipeline) Invalidate(records []core.Expense) {
	monthly := stats.MonthlySeries(records, p.now())
	weekly := stats.WeeklySeries(records, p.now())
	shares := stats.Breakdown(records)

	var pie bytes.Buffer
	_ = PieChart{Shares: shares}.Render(&pie)

	p.mu.Lock()
	p.monthly = monthly
	p.weekly = weekly
	p.shares = shares
	p.pie = pie.Bytes()
	// Seed the bar surface with the zero-progress frame so a request
	// racing the first animation tick still gets a complete document.
	p.barFrame = p.renderBarLocked(0)
	p.mu.Unlock()

	p.anim.Start(func(progress float64) {
		p.mu.Lock()
		p.barFrame = p.renderBarLocked(progress)
		p.mu.Unlock()
	})
}

// Resize re-derives the chart geometry (window size and pixel density)
// and replays the animation, mirroring the original's resize handling.
func (p *Pipeline) Resize(g Geometry) {
	p.mu.Lock()
	p.geom = g.normalized()
	p.mu.Unlock()

	p.anim.Start(func(progress float64) {
		p.mu.Lock()
		p.barFrame = p.renderBarLocked(progress)
		p.mu.Unlock()
	})
}

func (p *Pipeline) renderBarLocked(progress float64) []byte {
	var buf bytes.Buffer
	_ = BarChart{Geom: p.geom, Series: p.monthly}.Render(&buf, progress)
	return buf.Bytes()
}

// BarSVG returns the current animation frame of the monthly chart.
func (p *Pipeline) BarSVG() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.barFrame
}

// WeekSVG renders the weekly area chart on demand.
func (p *Pipeline) WeekSVG() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var buf bytes.Buffer
	_ = AreaChart{Geom: p.geom, Series: p.weekly}.Render(&buf)
	return buf.Bytes()
}

// PieSVG returns the cached static pie image.
func (p *Pipeline) PieSVG() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pie
}

// Shares exposes the breakdown backing the pie, for the legend and
// the breakdown panel.
func (p *Pipeline) Shares() []stats.CategoryShare {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.shares
}
