package boundary

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/chazu/kerf/pkg/geom"
)

func TestFitCircleExact(t *testing.T) {
	c := geom.Circle2{Center: geom.Pt(3, -2), Radius: 5}
	var pts []r2.Vec
	for i := 0; i < 8; i++ {
		pts = append(pts, c.PointAtTheta(float64(i)*math.Pi/5))
	}
	got, err := FitCircle(pts)
	if err != nil {
		t.Fatal(err)
	}
	if geom.Dist(got.Center, c.Center) > 1e-9 {
		t.Errorf("center = %v, want %v", got.Center, c.Center)
	}
	if math.Abs(got.Radius-c.Radius) > 1e-9 {
		t.Errorf("radius = %v, want %v", got.Radius, c.Radius)
	}
}

func TestFitCircleCollinear(t *testing.T) {
	pts := []r2.Vec{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(3, 3)}
	if _, err := FitCircle(pts); !errors.Is(err, ErrCollinear) {
		t.Errorf("err = %v, want ErrCollinear", err)
	}
}

func TestFitCircleTooFewPoints(t *testing.T) {
	if _, err := FitCircle([]r2.Vec{geom.Pt(0, 0), geom.Pt(1, 0)}); err == nil {
		t.Error("two points should not fit a circle")
	}
}

// sampleArcPolygon approximates a half circle of radius r with n
// chords plus the closing diameter.
func sampleArcPolygon(r float64, n int) *Loop {
	b := NewLoop()
	c := b.Tail()
	for i := 0; i <= n; i++ {
		theta := float64(i) * math.Pi / float64(n)
		p := geom.PolarVec(theta, r)
		c.SegAbs(p.X, p.Y)
	}
	return b
}

func TestFitArcsHalfCircle(t *testing.T) {
	// 128 chords on radius 10 keep the sagitta well under the body
	// tolerance, so the whole sampled run must collapse into one arc.
	b := sampleArcPolygon(10, 128)
	fitted := b.FitArcs(DefaultArcFitOptions())
	if err := fitted.Validate(); err != nil {
		t.Fatal(err)
	}

	arcs, lines := 0, 0
	for _, e := range fitted.Elements() {
		switch e.Kind {
		case ArcElement:
			arcs++
			if geom.Dist(e.Arc.Circle.Center, geom.Pt(0, 0)) > 1e-3 {
				t.Errorf("arc center = %v, want origin", e.Arc.Circle.Center)
			}
			if math.Abs(e.Arc.Circle.Radius-10) > 1e-3 {
				t.Errorf("arc radius = %v, want 10", e.Arc.Circle.Radius)
			}
		case LineElement:
			lines++
		}
	}
	if arcs != 1 || lines != 1 {
		t.Errorf("fitted to %d arcs and %d lines, want 1 and 1", arcs, lines)
	}

	want := math.Pi * 100 / 2
	if got := fitted.Area(); math.Abs(got-want) > want*1e-3 {
		t.Errorf("fitted area = %v, want %v", got, want)
	}
}

func TestFitArcsFullCircle(t *testing.T) {
	b := NewLoop()
	c := b.Tail()
	const n = 256
	for i := 0; i < n; i++ {
		theta := float64(i) * 2 * math.Pi / n
		p := geom.PolarVec(theta, 5)
		c.SegAbs(p.X, p.Y)
	}

	fitted := b.FitArcs(DefaultArcFitOptions())
	if err := fitted.Validate(); err != nil {
		t.Fatal(err)
	}
	if fitted.Count() != 1 {
		t.Fatalf("fitted vertex count = %d, want a single full-circle arc", fitted.Count())
	}
	e := fitted.Elements()[0]
	if e.Kind != ArcElement || !e.Arc.IsFullCircle() {
		t.Fatal("fitted element is not a full circle")
	}
	if !fitted.IsPositive() {
		t.Error("fitted circle lost its orientation")
	}
	want := math.Pi * 25
	if got := fitted.Area(); math.Abs(got-want) > want*1e-3 {
		t.Errorf("fitted area = %v, want %v", got, want)
	}
}

func TestFitArcsNoisySamplesStayValid(t *testing.T) {
	// Radial noise well inside the point tolerance must not leave any
	// fitted arc with endpoints the element compiler rejects.
	rng := rand.New(rand.NewSource(7))
	b := NewLoop()
	c := b.Tail()
	const n = 128
	for i := 0; i <= n; i++ {
		theta := float64(i) * math.Pi / float64(n)
		r := 10 + (rng.Float64()*2-1)*5e-4
		p := geom.PolarVec(theta, r)
		c.SegAbs(p.X, p.Y)
	}

	fitted := b.FitArcs(DefaultArcFitOptions())
	if err := fitted.Validate(); err != nil {
		t.Fatalf("fitted loop does not validate: %v", err)
	}
	arcs := 0
	for _, e := range fitted.Elements() {
		if e.Kind == ArcElement {
			arcs++
		}
	}
	if arcs == 0 {
		t.Error("no arc fitted to the noisy half circle")
	}
	want := math.Pi * 100 / 2
	if got := fitted.Area(); math.Abs(got-want) > want*1e-2 {
		t.Errorf("fitted area = %v, want about %v", got, want)
	}
}

func TestFitArcsLeavesSharpGeometryAlone(t *testing.T) {
	b := Rectangle(0, 0, 10, 4)
	fitted := b.FitArcs(DefaultArcFitOptions())
	for _, e := range fitted.Elements() {
		if e.Kind == ArcElement {
			t.Fatal("rectangle corners fitted into arcs")
		}
	}
	if math.Abs(fitted.Area()-40) > 1e-9 {
		t.Errorf("area = %v, want 40", fitted.Area())
	}
}

func TestFitArcsDoesNotMutateInput(t *testing.T) {
	b := sampleArcPolygon(10, 64)
	before := b.Count()
	_ = b.FitArcs(DefaultArcFitOptions())
	if b.Count() != before {
		t.Error("FitArcs mutated its receiver")
	}
}
