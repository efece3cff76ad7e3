package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewArcQuarter(t *testing.T) {
	// Counter-clockwise quarter from (1,0) to (0,1) around the
	// origin.
	a, err := NewArc(Pt(1, 0), Pt(0, 1), Pt(0, 0), false)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.Sweep-math.Pi/2) > NumericZero {
		t.Errorf("sweep = %v, want pi/2", a.Sweep)
	}
	if a.Clockwise() {
		t.Error("counter-clockwise arc reports clockwise")
	}
	if math.Abs(a.Length()-math.Pi/2) > NumericZero {
		t.Errorf("length = %v, want pi/2", a.Length())
	}
	mid := a.Midpoint()
	want := PolarVec(math.Pi/4, 1)
	if Dist(mid, want) > DistEquals {
		t.Errorf("midpoint = %v, want %v", mid, want)
	}
}

func TestNewArcClockwiseComplement(t *testing.T) {
	// The same endpoints walked clockwise traverse the other three
	// quarters.
	a, err := NewArc(Pt(1, 0), Pt(0, 1), Pt(0, 0), true)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.Sweep+3*math.Pi/2) > NumericZero {
		t.Errorf("sweep = %v, want -3pi/2", a.Sweep)
	}
}

func TestNewArcRejectsUnequalRadii(t *testing.T) {
	if _, err := NewArc(Pt(1, 0), Pt(0, 2), Pt(0, 0), false); err == nil {
		t.Error("endpoints at different radii should be rejected")
	}
}

func TestNewArcFullCircle(t *testing.T) {
	a, err := NewArc(Pt(1, 0), Pt(1, 0), Pt(0, 0), false)
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsFullCircle() {
		t.Error("coincident endpoints should make a full circle")
	}
	if math.Abs(a.Length()-2*math.Pi) > NumericZero {
		t.Errorf("full circle length = %v, want 2pi", a.Length())
	}

	cw, err := NewArc(Pt(1, 0), Pt(1, 0), Pt(0, 0), true)
	if err != nil {
		t.Fatal(err)
	}
	if !cw.IsFullCircle() || !cw.Clockwise() {
		t.Errorf("clockwise full circle: sweep = %v, want -2pi", cw.Sweep)
	}
}

func TestArcReversed(t *testing.T) {
	a, _ := NewArc(Pt(1, 0), Pt(0, 1), Pt(0, 0), false)
	r := a.Reversed()
	if Dist(r.Start(), a.End()) > DistEquals || Dist(r.End(), a.Start()) > DistEquals {
		t.Error("reversed arc does not swap endpoints")
	}
	if !r.Clockwise() {
		t.Error("reversing a counter-clockwise arc should make it clockwise")
	}
}

func TestArcBoundsCrossesQuadrant(t *testing.T) {
	// Half circle over the top: bounds must include the apex at
	// (0,1), not just the endpoints.
	a, _ := NewArc(Pt(1, 0), Pt(-1, 0), Pt(0, 0), false)
	b := a.Bounds()
	// Bounds are padded by DistEquals, so allow a little past the pad.
	if math.Abs(b.Max.Y-1) > 2*DistEquals {
		t.Errorf("bounds max y = %v, want 1", b.Max.Y)
	}
	if math.Abs(b.Min.Y) > 2*DistEquals {
		t.Errorf("bounds min y = %v, want 0", b.Min.Y)
	}
	if math.Abs(b.Min.X+1) > 2*DistEquals || math.Abs(b.Max.X-1) > 2*DistEquals {
		t.Errorf("bounds x = [%v, %v], want [-1, 1]", b.Min.X, b.Max.X)
	}
}

func TestArcSegmentArea(t *testing.T) {
	// Half disc of radius 2: area 2pi.
	a, _ := NewArc(Pt(2, 0), Pt(-2, 0), Pt(0, 0), false)
	if got := a.SegmentArea(); math.Abs(got-2*math.Pi) > 1e-9 {
		t.Errorf("half-disc segment area = %v, want 2pi", got)
	}

	// The clockwise twin contributes negative area.
	c, _ := NewArc(Pt(-2, 0), Pt(2, 0), Pt(0, 0), true)
	if got := c.SegmentArea(); math.Abs(got+2*math.Pi) > 1e-9 {
		t.Errorf("clockwise segment area = %v, want -2pi", got)
	}
}

func TestArcOffset(t *testing.T) {
	a, _ := NewArc(Pt(1, 0), Pt(0, 1), Pt(0, 0), false)

	// Offsetting a counter-clockwise arc outward grows the radius.
	grown, ok := a.Offset(0.5)
	if !ok {
		t.Fatal("offset failed")
	}
	if math.Abs(grown.Circle.Radius-1.5) > NumericZero {
		t.Errorf("grown radius = %v, want 1.5", grown.Circle.Radius)
	}

	shrunk, ok := a.Offset(-0.5)
	if !ok {
		t.Fatal("offset failed")
	}
	if math.Abs(shrunk.Circle.Radius-0.5) > NumericZero {
		t.Errorf("shrunk radius = %v, want 0.5", shrunk.Circle.Radius)
	}

	// Collapsing the radius to nothing is reported, not returned as
	// a degenerate arc.
	if _, ok := a.Offset(-1); ok {
		t.Error("offset past the center should fail")
	}
}

func TestArcIsThetaOnArc(t *testing.T) {
	a, _ := NewArc(Pt(1, 0), Pt(0, 1), Pt(0, 0), false)
	if !a.IsThetaOnArc(math.Pi / 4) {
		t.Error("mid angle should be on arc")
	}
	if a.IsThetaOnArc(math.Pi) {
		t.Error("angle outside sweep should not be on arc")
	}
	// Endpoints count.
	if !a.IsThetaOnArc(0) || !a.IsThetaOnArc(math.Pi/2) {
		t.Error("endpoint angles should be on arc")
	}
}

func TestCircleIntersectionsLine(t *testing.T) {
	c := Circle2{Center: Pt(0, 0), Radius: 2}

	hits := c.IntersectionsLine(NewLine2(Pt(-5, 0), Pt(1, 0)))
	if len(hits) != 2 {
		t.Fatalf("secant line: %d hits, want 2", len(hits))
	}

	hits = c.IntersectionsLine(NewLine2(Pt(-5, 2), Pt(1, 0)))
	if len(hits) != 1 {
		t.Fatalf("tangent line: %d hits, want 1", len(hits))
	}
	if Dist(hits[0], Pt(0, 2)) > DistEquals {
		t.Errorf("tangent point = %v, want (0,2)", hits[0])
	}

	hits = c.IntersectionsLine(NewLine2(Pt(-5, 3), Pt(1, 0)))
	if len(hits) != 0 {
		t.Errorf("missing line: %d hits, want 0", len(hits))
	}
}

func TestCircleIntersectionsCircle(t *testing.T) {
	a := Circle2{Center: Pt(0, 0), Radius: 2}
	b := Circle2{Center: Pt(3, 0), Radius: 2}
	hits := a.IntersectionsCircle(b)
	if len(hits) != 2 {
		t.Fatalf("overlapping circles: %d hits, want 2", len(hits))
	}
	for _, h := range hits {
		if math.Abs(Dist(h, a.Center)-2) > DistEquals || math.Abs(Dist(h, b.Center)-2) > DistEquals {
			t.Errorf("hit %v not on both circles", h)
		}
	}

	far := Circle2{Center: Pt(10, 0), Radius: 2}
	if hits := a.IntersectionsCircle(far); len(hits) != 0 {
		t.Errorf("distant circles: %d hits, want 0", len(hits))
	}

	inner := Circle2{Center: Pt(0, 0), Radius: 1}
	if hits := a.IntersectionsCircle(inner); len(hits) != 0 {
		t.Errorf("concentric circles: %d hits, want 0", len(hits))
	}
}

func TestCircleTangentsTo(t *testing.T) {
	c := Circle2{Center: Pt(0, 0), Radius: 1}
	pts := c.TangentsTo(Pt(2, 0))
	if len(pts) != 2 {
		t.Fatalf("external point: %d tangent points, want 2", len(pts))
	}
	for _, p := range pts {
		if math.Abs(Dist(p, c.Center)-1) > DistEquals {
			t.Errorf("tangent point %v not on circle", p)
		}
		// The radius is perpendicular to the tangent line.
		radial := r2.Sub(p, c.Center)
		toP := r2.Sub(Pt(2, 0), p)
		if dot := radial.X*toP.X + radial.Y*toP.Y; math.Abs(dot) > 1e-9 {
			t.Errorf("tangent at %v not perpendicular to radius (dot=%v)", p, dot)
		}
	}

	if pts := c.TangentsTo(Pt(0.5, 0)); len(pts) != 0 {
		t.Errorf("interior point: %d tangent points, want 0", len(pts))
	}
}

func TestNormalizeAngleAndDeltas(t *testing.T) {
	if got := NormalizeAngle(3 * math.Pi); math.Abs(got-math.Pi) > NumericZero {
		t.Errorf("NormalizeAngle(3pi) = %v, want pi", got)
	}
	if got := NormalizeAngle(-math.Pi / 2); math.Abs(got-3*math.Pi/2) > NumericZero {
		t.Errorf("NormalizeAngle(-pi/2) = %v, want 3pi/2", got)
	}
	if got := CCWDelta(3*math.Pi/2, math.Pi/2); math.Abs(got-math.Pi) > NumericZero {
		t.Errorf("CCWDelta = %v, want pi", got)
	}
	if got := WrappedDelta(0.1, 2*math.Pi-0.1); math.Abs(got+0.2) > NumericZero {
		t.Errorf("WrappedDelta = %v, want -0.2", got)
	}
}
