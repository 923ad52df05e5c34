package render

import (
	"io"
	"math"

	"kharcha/internal/stats"
)

// PieChart renders the category distribution as wedges proportional
// to each category's share of the total. It is drawn once per
// invalidation and served as a static image; it never animates.
type PieChart struct {
	Shares []stats.CategoryShare
}

// pie preview dimensions, small enough for the breakdown panel.
const (
	pieWidth  = 180
	pieHeight = 120
	pieRadius = 48.0
)

func (c PieChart) Render(w io.Writer) error {
	g := Geometry{Width: pieWidth, Height: pieHeight, Scale: 1}
	cx, cy := float64(pieWidth)/2, float64(pieHeight)/2

	var total float64
	for _, s := range c.Shares {
		total += s.Amount.Units()
	}
	if total < 1 {
		total = 1
	}

	var b svgBuilder
	b.open(g)
	start := 0.0
	for i, s := range c.Shares {
		slice := s.Amount.Units() / total
		if slice >= 0.9999 {
			// A full-circle wedge degenerates as an SVG arc.
			b.printf(`<circle cx="%s" cy="%s" r="%s" fill="%s"/>`, f(cx), f(cy), f(pieRadius), Color(i))
			break
		}
		end := start + slice*2*math.Pi
		x1, y1 := cx+pieRadius*math.Cos(start), cy+pieRadius*math.Sin(start)
		x2, y2 := cx+pieRadius*math.Cos(end), cy+pieRadius*math.Sin(end)
		large := 0
		if end-start > math.Pi {
			large = 1
		}
		b.printf(`<path d="M %s %s L %s %s A %s %s 0 %d 1 %s %s Z" fill="%s"/>`,
			f(cx), f(cy), f(x1), f(y1), f(pieRadius), f(pieRadius), large, f(x2), f(y2), Color(i))
		start = end
	}
	b.close()
	return b.flush(w)
}
