package render

// Geometry is the drawing surface description. Scale carries the
// device pixel ratio so a client resize re-derives crisp output; the
// SVG viewBox stays in logical units and Scale multiplies the
// advertised pixel size.
type Geometry struct {
	Width  int
	Height int
	Scale  float64
}

// DefaultGeometry matches the layout's chart slots.
func DefaultGeometry() Geometry {
	return Geometry{Width: 640, Height: 220, Scale: 1}
}

func (g Geometry) normalized() Geometry {
	if g.Width <= 0 || g.Height <= 0 {
		d := DefaultGeometry()
		g.Width, g.Height = d.Width, d.Height
	}
	if g.Scale <= 0 {
		g.Scale = 1
	}
	return g
}

func (g Geometry) pixelWidth() int  { return int(float64(g.Width) * g.Scale) }
func (g Geometry) pixelHeight() int { return int(float64(g.Height) * g.Scale) }
