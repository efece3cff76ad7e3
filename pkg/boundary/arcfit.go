package boundary

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/chazu/kerf/pkg/geom"
)

// ErrCollinear is returned by FitCircle when the sample points do not
// determine a circle.
var ErrCollinear = errors.New("boundary: points are collinear, no circle fits")

// ArcFitOptions tunes FitArcs.
type ArcFitOptions struct {
	// PointTol is the maximum radial deviation of any run vertex from
	// the fitted circle.
	PointTol float64
	// BodyTol is the maximum deviation of any segment midpoint from
	// the fitted circle (the chord sagitta bound).
	BodyTol float64
}

// DefaultArcFitOptions returns tolerances suited to polylines
// flattened at typical mesh-import resolution.
func DefaultArcFitOptions() ArcFitOptions {
	return ArcFitOptions{PointTol: 1e-3, BodyTol: 5e-3}
}

// FitCircle fits a circle to the points by linear least squares
// (the Kåsa formulation), solved with gonum. At least three points
// are required; collinear points are rejected, never coerced.
func FitCircle(pts []r2.Vec) (geom.Circle2, error) {
	if len(pts) < 3 {
		return geom.Circle2{}, fmt.Errorf("boundary: circle fit needs 3 points, got %d", len(pts))
	}
	// Solve [2x 2y 1] * [cx cy k]' = x^2 + y^2, where
	// k = r^2 - cx^2 - cy^2.
	a := mat.NewDense(len(pts), 3, nil)
	rhs := mat.NewVecDense(len(pts), nil)
	for i, p := range pts {
		a.Set(i, 0, 2*p.X)
		a.Set(i, 1, 2*p.Y)
		a.Set(i, 2, 1)
		rhs.SetVec(i, p.X*p.X+p.Y*p.Y)
	}
	var sol mat.VecDense
	if err := sol.SolveVec(a, rhs); err != nil {
		return geom.Circle2{}, fmt.Errorf("%w: %v", ErrCollinear, err)
	}
	cx, cy, k := sol.AtVec(0), sol.AtVec(1), sol.AtVec(2)
	r2v := k + cx*cx + cy*cy
	if r2v <= 0 || math.IsNaN(r2v) {
		return geom.Circle2{}, ErrCollinear
	}
	return geom.Circle2{Center: geom.Pt(cx, cy), Radius: math.Sqrt(r2v)}, nil
}

// FitArcs replaces runs of consecutive line elements that lie on a
// common circle with single arc elements, within the given
// tolerances. The scan is greedy: each run grows while the fit holds
// and is emitted when growth fails. Runs shorter than three segments
// carry too little signal for a stable fit and are left as lines. A
// loop that is one uniform circle collapses to a single full-sweep
// arc descriptor.
func (b *Loop) FitArcs(opts ArcFitOptions) *Loop {
	elems := b.Elements()
	n := len(elems)

	// Find the longest fitting run starting at each candidate; greedy
	// left to right, wrapping, never revisiting consumed elements.
	type run struct {
		start, count int
		circle       geom.Circle2
	}
	consumed := make([]bool, n)
	var runs []run
	for start := 0; start < n; start++ {
		if consumed[start] || elems[start].Kind != LineElement {
			continue
		}
		best := run{}
		for count := 3; count <= n; count++ {
			ok := true
			for k := 0; k < count; k++ {
				e := elems[(start+k)%n]
				if e.Kind != LineElement || (consumed[(start+k)%n] && k > 0) {
					ok = false
					break
				}
			}
			if !ok {
				break
			}
			circle, fits := fitRun(elems, start, count, opts)
			if !fits {
				break
			}
			best = run{start: start, count: count, circle: circle}
		}
		if best.count >= 3 {
			for k := 0; k < best.count; k++ {
				consumed[(best.start+k)%n] = true
			}
			runs = append(runs, best)
		}
	}

	if len(runs) == 1 && runs[0].count == n {
		// The whole loop is one circle: a single full-sweep arc, with
		// no zero-length closing segment left behind. The coincident
		// endpoints are trivially equidistant, so the original start
		// vertex is kept.
		c := runs[0].circle
		dir := !b.IsPositive()
		p := elems[runs[0].start].Start()
		return FromVertices(Vertex{Point: p, IsArc: true, Center: c.Center, Clockwise: dir})
	}

	inRun := make([]int, n) // -1: not in a run; else run index
	runStart := make([]bool, n)
	for i := range inRun {
		inRun[i] = -1
	}
	for ri, r := range runs {
		for k := 0; k < r.count; k++ {
			idx := (r.start + k) % n
			inRun[idx] = ri
			runStart[idx] = k == 0
		}
	}

	out := NewLoop()
	c := out.Tail()
	for i := 0; i < n; i++ {
		e := elems[i]
		ri := inRun[i]
		if ri < 0 {
			c.InsertAfter(vertexOf(e))
			continue
		}
		if !runStart[i] {
			continue
		}
		r := runs[ri]
		// The arc keeps the run's original endpoints, which the loop's
		// neighbors still reference; the center moves instead, onto the
		// chord bisector, so both endpoints are exactly equidistant.
		end := elems[(r.start+r.count-1)%n].End()
		center := arcCenterThrough(r.circle, e.Start(), end)
		cw := runClockwise(elems, r.start, r.count, center)
		c.InsertAfter(Vertex{Point: e.Start(), IsArc: true, Center: center, Clockwise: cw})
	}
	return out
}

// fitRun fits a circle to the vertices of count consecutive line
// elements starting at index start and checks both tolerances.
func fitRun(elems []Element, start, count int, opts ArcFitOptions) (geom.Circle2, bool) {
	n := len(elems)
	pts := make([]r2.Vec, 0, count+1)
	for k := 0; k < count; k++ {
		pts = append(pts, elems[(start+k)%n].Start())
	}
	pts = append(pts, elems[(start+count-1)%n].End())

	circle, err := FitCircle(pts)
	if err != nil {
		return geom.Circle2{}, false
	}
	for _, p := range pts {
		if math.Abs(geom.Dist(p, circle.Center)-circle.Radius) > opts.PointTol {
			return geom.Circle2{}, false
		}
	}
	for k := 0; k < count; k++ {
		mid := elems[(start+k)%n].Midpoint()
		if math.Abs(geom.Dist(mid, circle.Center)-circle.Radius) > opts.BodyTol {
			return geom.Circle2{}, false
		}
	}
	return circle, true
}

// arcCenterThrough slides the fitted center onto the perpendicular
// bisector of the chord from a to b, keeping the fitted radius where
// the chord allows, so both endpoints come out exactly equidistant.
func arcCenterThrough(c geom.Circle2, a, b r2.Vec) r2.Vec {
	half := geom.Dist(a, b) / 2
	if half < geom.DistEquals {
		return c.Center
	}
	mid := geom.Lerp(a, b, 0.5)
	r := math.Max(c.Radius, half)
	h := math.Sqrt(r*r - half*half)
	perp := r2.Scale(h, r2.Unit(geom.PerpCCW(r2.Sub(b, a))))
	p := r2.Add(mid, perp)
	q := r2.Sub(mid, perp)
	if geom.Dist(p, c.Center) <= geom.Dist(q, c.Center) {
		return p
	}
	return q
}

// runClockwise determines the sweep direction of a fitted run from
// the cross product of its first chord against the radial direction.
func runClockwise(elems []Element, start, count int, center r2.Vec) bool {
	n := len(elems)
	e := elems[start%n]
	radial := r2.Sub(e.Start(), center)
	chord := r2.Sub(e.End(), e.Start())
	return radial.X*chord.Y-radial.Y*chord.X < 0
}

// vertexOf rebuilds the descriptor of a compiled element.
func vertexOf(e Element) Vertex {
	if e.Kind == ArcElement {
		return Vertex{Point: e.Start(), IsArc: true, Center: e.Arc.Circle.Center, Clockwise: e.Arc.Clockwise()}
	}
	return Vertex{Point: e.Start()}
}
