// Package render turns the aggregation engine's series into the three
// chart images: the animated monthly bar chart, the weekly area chart
// and the static category pie. Output is SVG, so the charts stay sharp
// at any pixel density; the Geometry's scale factor only adjusts the
// advertised pixel size.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// svgBuilder accumulates an SVG document. Write errors surface once,
// at flush.
type svgBuilder struct {
	sb strings.Builder
}

func (b *svgBuilder) open(g Geometry) {
	b.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		g.pixelWidth(), g.pixelHeight(), g.Width, g.Height)
	b.printf(`<style>.label{font:12px Inter,system-ui;fill:#64748b}</style>`)
}

func (b *svgBuilder) printf(format string, args ...any) {
	fmt.Fprintf(&b.sb, format, args...)
}

// gradient registers a vertical two-stop gradient usable as
// fill="url(#id)".
func (b *svgBuilder) gradient(id, from, to string) {
	b.printf(`<defs><linearGradient id=%q x1="0" y1="0" x2="0" y2="1">`, id)
	b.printf(`<stop offset="0%%" stop-color=%q/><stop offset="100%%" stop-color=%q/>`, from, to)
	b.printf(`</linearGradient></defs>`)
}

func (b *svgBuilder) close() {
	b.sb.WriteString(`</svg>`)
}

func (b *svgBuilder) flush(w io.Writer) error {
	_, err := io.WriteString(w, b.sb.String())
	return err
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
