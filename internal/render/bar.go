package render

import (
	"fmt"
	"io"

	"kharcha/internal/stats"
)

const barPadding = 30.0

// BarChart renders the 12-month series as vertical bars. Render takes
// a progress fraction so the animator can grow the bars frame by
// frame from zero to their final height.
type BarChart struct {
	Geom   Geometry
	Series []stats.SeriesPoint
}

// Render writes one SVG frame at the given progress fraction in [0,1].
func (c BarChart) Render(w io.Writer, progress float64) error {
	g := c.Geom.normalized()
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	W, H := float64(g.Width), float64(g.Height)
	maxV := stats.MaxValue(c.Series)
	n := len(c.Series)
	if n == 0 {
		n = 1
	}
	slot := (W - barPadding*2) / float64(n)
	barW := slot * 0.65
	gap := slot - barW

	var b svgBuilder
	b.open(g)
	for i := range c.Series {
		b.gradient(fmt.Sprintf("bar%d", i), Color(i), "rgba(6,182,212,0.18)")
	}
	// axis
	b.printf(`<path d="M %s %s L %s %s L %s %s" fill="none" stroke="rgba(0,0,0,0.06)" stroke-width="1"/>`,
		f(barPadding), f(barPadding), f(barPadding), f(H-barPadding), f(W-barPadding), f(H-barPadding))

	for i, p := range c.Series {
		v := p.Value.Units() * progress
		x := barPadding + float64(i)*slot + gap/2
		height := v / maxV * (H - barPadding*2)
		y := H - barPadding - height
		b.printf(`<rect x="%s" y="%s" width="%s" height="%s" rx="6" fill="url(#bar%d)"/>`,
			f(x), f(y), f(barW), f(height), i)
		b.printf(`<text x="%s" y="%s" class="label">%s</text>`,
			f(x), f(H-barPadding+16), p.Label)
	}
	b.close()
	return b.flush(w)
}
