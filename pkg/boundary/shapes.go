package boundary

import "gonum.org/v1/gonum/spatial/r2"

// Rectangle returns a counter-clockwise rectangle with its minimum
// corner at (x, y).
func Rectangle(x, y, w, h float64) *Loop {
	return FromVertices(
		SegVertex(x, y),
		SegVertex(x+w, y),
		SegVertex(x+w, y+h),
		SegVertex(x, y+h),
	)
}

// Circle returns a counter-clockwise full circle as a single
// full-sweep arc element.
func Circle(cx, cy, r float64) *Loop {
	return FromVertices(ArcVertex(cx+r, cy, cx, cy, false))
}

// Polygon returns a loop of line elements through the given points in
// order.
func Polygon(pts ...r2.Vec) *Loop {
	b := NewLoop()
	c := b.Tail()
	for _, p := range pts {
		c.SegAbs(p.X, p.Y)
	}
	return b
}

// RoundedRectangle returns a counter-clockwise rectangle with corner
// radius r. A radius of zero degenerates to Rectangle.
func RoundedRectangle(x, y, w, h, r float64) *Loop {
	if r <= 0 {
		return Rectangle(x, y, w, h)
	}
	return FromVertices(
		SegVertex(x+r, y),
		ArcVertex(x+w-r, y, x+w-r, y+r, false),
		SegVertex(x+w, y+r),
		ArcVertex(x+w, y+h-r, x+w-r, y+h-r, false),
		SegVertex(x+w-r, y+h),
		ArcVertex(x+r, y+h, x+r, y+h-r, false),
		SegVertex(x, y+h-r),
		ArcVertex(x, y+r, x+r, y+r, false),
	)
}
