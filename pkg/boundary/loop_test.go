package boundary

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/chazu/kerf/pkg/geom"
)

// Element bounds carry the DistEquals pad, so coordinate comparisons
// against unpadded corners need a tolerance above it.
var approx = cmpopts.EquateApprox(0, 1e-5)

func TestRectangleLoop(t *testing.T) {
	b := Rectangle(1, 2, 4, 3)
	if b.Count() != 4 {
		t.Fatalf("vertex count = %d, want 4", b.Count())
	}
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := b.Area(); math.Abs(got-12) > 1e-9 {
		t.Errorf("area = %v, want 12", got)
	}
	if !b.IsPositive() {
		t.Error("counter-clockwise rectangle should be positive")
	}

	bounds := b.Bounds()
	if diff := cmp.Diff(geom.Pt(1, 2), bounds.Min, approx); diff != "" {
		t.Errorf("bounds min mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(geom.Pt(5, 5), bounds.Max, approx); diff != "" {
		t.Errorf("bounds max mismatch:\n%s", diff)
	}
}

func TestCircleLoop(t *testing.T) {
	b := Circle(3, -1, 2)
	if b.Count() != 1 {
		t.Fatalf("vertex count = %d, want 1", b.Count())
	}
	elems := b.Elements()
	if len(elems) != 1 {
		t.Fatalf("element count = %d, want 1", len(elems))
	}
	if elems[0].Kind != ArcElement || !elems[0].Arc.IsFullCircle() {
		t.Error("single arc vertex should compile to a full circle")
	}
	if got := b.Area(); math.Abs(got-4*math.Pi) > 1e-6 {
		t.Errorf("area = %v, want 4pi", got)
	}
}

func TestRoundedRectangleArea(t *testing.T) {
	// Exact area: w*h minus the four corner squares plus the disc.
	const w, h, r = 10.0, 6.0, 1.5
	b := RoundedRectangle(0, 0, w, h, r)
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	want := w*h - 4*r*r + math.Pi*r*r
	if got := b.Area(); math.Abs(got-want) > 1e-6 {
		t.Errorf("area = %v, want %v", got, want)
	}
}

func TestValidateDegenerate(t *testing.T) {
	if err := NewLoop().Validate(); err == nil {
		t.Error("empty loop should not validate")
	}
	// All vertices coincident: nothing compiles.
	b := FromVertices(SegVertex(1, 1), SegVertex(1, 1))
	if err := b.Validate(); err == nil {
		t.Error("all-coincident loop should not validate")
	}
}

func TestReverseNegatesArea(t *testing.T) {
	b := RoundedRectangle(0, 0, 8, 5, 1)
	area := b.Area()

	r := b.Reversed()
	if math.Abs(r.Area()+area) > 1e-9 {
		t.Errorf("reversed area = %v, want %v", r.Area(), -area)
	}
	if math.Abs(b.Area()-area) > 1e-9 {
		t.Error("Reversed mutated the receiver")
	}

	// Geometry is unchanged, only direction flips.
	if r.Count() != b.Count() {
		t.Errorf("reversed count = %d, want %d", r.Count(), b.Count())
	}
	rr := r.Reversed()
	if math.Abs(rr.Area()-area) > 1e-9 {
		t.Errorf("double reverse area = %v, want %v", rr.Area(), area)
	}
}

func TestContainsPoint(t *testing.T) {
	b := Rectangle(-1, -1, 2, 2)
	cases := []struct {
		p    r2.Vec
		want bool
	}{
		{geom.Pt(0, 0), true},
		{geom.Pt(0.9, 0.9), true},
		{geom.Pt(1.5, 0), false},
		{geom.Pt(0, -2), false},
		// Rays from these points graze corners; the cast must
		// retry, not misreport.
		{geom.Pt(-1.5, -1), false},
		{geom.Pt(0.5, 0.5), true},
	}
	for _, c := range cases {
		if got := b.ContainsPoint(c.p); got != c.want {
			t.Errorf("ContainsPoint(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestContainsPointCircle(t *testing.T) {
	b := Circle(0, 0, 1)
	if !b.ContainsPoint(geom.Pt(0.5, 0)) {
		t.Error("interior point reported outside")
	}
	if b.ContainsPoint(geom.Pt(1.5, 0)) {
		t.Error("exterior point reported inside")
	}
	// A point on the rim belongs to the boundary, which counts as
	// contained.
	if !b.ContainsPoint(geom.Pt(0, 1)) {
		t.Error("boundary point reported outside")
	}
}

func TestOnBoundary(t *testing.T) {
	b := Rectangle(0, 0, 2, 2)
	if !b.OnBoundary(geom.Pt(1, 0)) {
		t.Error("edge midpoint should be on boundary")
	}
	if !b.OnBoundary(geom.Pt(2, 2)) {
		t.Error("corner should be on boundary")
	}
	if b.OnBoundary(geom.Pt(1, 1)) {
		t.Error("interior point should not be on boundary")
	}
}

func TestTranslateAndRotatePreserveArea(t *testing.T) {
	b := RoundedRectangle(0, 0, 6, 4, 1)
	area := b.Area()

	b.Translate(geom.Pt(10, -3))
	if math.Abs(b.Area()-area) > 1e-9 {
		t.Errorf("area after translate = %v, want %v", b.Area(), area)
	}
	if diff := cmp.Diff(geom.Pt(11, -3), b.Bounds().Min, approx); diff != "" {
		t.Errorf("bounds after translate:\n%s", diff)
	}

	b.Rotate(math.Pi/3, geom.Pt(0, 0))
	if math.Abs(b.Area()-area) > 1e-6 {
		t.Errorf("area after rotate = %v, want %v", b.Area(), area)
	}
}

func TestMirrorFlipsOrientation(t *testing.T) {
	b := RoundedRectangle(0, 0, 6, 4, 1)
	area := b.Area()

	b.MirrorX(0)
	if math.Abs(b.Area()+area) > 1e-6 {
		t.Errorf("area after mirror = %v, want %v", b.Area(), -area)
	}

	b.MirrorY(0)
	if math.Abs(b.Area()-area) > 1e-6 {
		t.Errorf("area after double mirror = %v, want %v", b.Area(), area)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	b := Rectangle(0, 0, 2, 2)
	c := b.Copy()
	c.Translate(geom.Pt(100, 0))
	if diff := cmp.Diff(geom.Pt(0, 0), b.Bounds().Min, approx); diff != "" {
		t.Errorf("mutating copy moved the source:\n%s", diff)
	}
}

func TestCursorBuildsStadium(t *testing.T) {
	// A stadium: two horizontal lines capped with half circles.
	b := NewLoop()
	c := b.Head()
	c.SegAbs(-2, -1)
	c.ArcAbs(2, -1, 2, 0, false)
	c.SegAbs(2, 1)
	c.ArcAbs(-2, 1, -2, 0, false)
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	want := 4*2 + math.Pi
	if got := b.Area(); math.Abs(got-want) > 1e-6 {
		t.Errorf("stadium area = %v, want %v", got, want)
	}
}

func TestZeroLengthVerticesSkippedInCompile(t *testing.T) {
	b := FromVertices(
		SegVertex(0, 0),
		SegVertex(2, 0),
		SegVertex(2, 0), // duplicate
		SegVertex(2, 2),
		SegVertex(0, 2),
	)
	if got := len(b.Elements()); got != 4 {
		t.Errorf("element count = %d, want 4", got)
	}
	if math.Abs(b.Area()-4) > 1e-9 {
		t.Errorf("area = %v, want 4", b.Area())
	}
}
