package render

import (
	"fmt"
	"io"
	"strings"

	"kharcha/internal/stats"
)

const areaPadding = 24.0

// AreaChart renders the 7-day series as a polyline with a filled
// gradient area beneath it.
type AreaChart struct {
	Geom   Geometry
	Series []stats.SeriesPoint
}

func (c AreaChart) Render(w io.Writer) error {
	g := c.Geom.normalized()
	W, H := float64(g.Width), float64(g.Height)
	maxV := stats.MaxValue(c.Series)

	denom := float64(len(c.Series) - 1)
	if denom <= 0 {
		denom = 1
	}
	stepX := (W - areaPadding*2) / denom

	at := func(i int) (float64, float64) {
		x := areaPadding + float64(i)*stepX
		y := H - areaPadding - c.Series[i].Value.Units()/maxV*(H-areaPadding*2)
		return x, y
	}

	var line strings.Builder
	for i := range c.Series {
		x, y := at(i)
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&line, "%s %s %s ", cmd, f(x), f(y))
	}
	area := fmt.Sprintf("%sL %s %s L %s %s Z",
		line.String(), f(W-areaPadding), f(H-areaPadding), f(areaPadding), f(H-areaPadding))

	var b svgBuilder
	b.open(g)
	b.gradient("area", "rgba(96,165,250,0.25)", "rgba(96,165,250,0.02)")
	if len(c.Series) > 0 {
		b.printf(`<path d="%s" fill="url(#area)"/>`, area)
		b.printf(`<path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linejoin="round"/>`,
			strings.TrimSpace(line.String()), Color(2))
	}
	for i, p := range c.Series {
		x, _ := at(i)
		b.printf(`<text x="%s" y="%s" class="label">%s</text>`,
			f(x-10), f(H-areaPadding+14), p.Label)
	}
	b.close()
	return b.flush(w)
}
