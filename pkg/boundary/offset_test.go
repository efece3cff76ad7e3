package boundary

import (
	"math"
	"testing"
)

func TestOffsetCircle(t *testing.T) {
	b := Circle(0, 0, 2)

	grown := b.Offset(1)
	if grown.Count() != 1 {
		t.Fatalf("offset circle has %d vertices, want 1", grown.Count())
	}
	if got, want := grown.Area(), math.Pi*9; math.Abs(got-want) > 1e-6 {
		t.Errorf("grown area = %v, want %v", got, want)
	}

	shrunk := b.Offset(-1)
	if got, want := shrunk.Area(), math.Pi; math.Abs(got-want) > 1e-6 {
		t.Errorf("shrunk area = %v, want %v", got, want)
	}
}

func TestOffsetRectangleMiteredCorners(t *testing.T) {
	b := Rectangle(0, 0, 4, 4)

	grown := b.Offset(1)
	if err := grown.Validate(); err != nil {
		t.Fatal(err)
	}
	// Line carriers extend to sharp corners, so the offset square
	// is simply larger.
	if got := grown.Area(); math.Abs(got-36) > 1e-6 {
		t.Errorf("grown area = %v, want 36", got)
	}

	shrunk := b.Offset(-1)
	if got := shrunk.Area(); math.Abs(got-4) > 1e-6 {
		t.Errorf("shrunk area = %v, want 4", got)
	}
}

func TestOffsetRoundedRectangleKeepsArcs(t *testing.T) {
	b := RoundedRectangle(0, 0, 10, 6, 1)

	grown := b.Offset(0.5)
	if err := grown.Validate(); err != nil {
		t.Fatal(err)
	}
	arcs := 0
	for _, e := range grown.Elements() {
		if e.Kind == ArcElement {
			arcs++
		}
	}
	if arcs != 4 {
		t.Errorf("offset kept %d arcs, want 4", arcs)
	}
	// Corner radius grows with the offset.
	const w, h, r = 11.0, 7.0, 1.5
	want := w*h - 4*r*r + math.Pi*r*r
	if got := grown.Area(); math.Abs(got-want) > 1e-6 {
		t.Errorf("grown area = %v, want %v", got, want)
	}
}

func TestOffsetCollapsesCornerArcs(t *testing.T) {
	// Shrinking past the corner radius collapses each corner arc to
	// a sharp corner instead of producing an inverted arc.
	b := RoundedRectangle(0, 0, 10, 6, 1)
	shrunk := b.Offset(-2)
	if err := shrunk.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, e := range shrunk.Elements() {
		if e.Kind == ArcElement {
			t.Fatal("collapsed corner still has an arc")
		}
	}
	if got := shrunk.Area(); math.Abs(got-12) > 1e-6 {
		t.Errorf("shrunk area = %v, want 12", got)
	}
}

func TestOffsetHoleDirection(t *testing.T) {
	// For a clockwise loop (a hole) a positive distance moves the
	// boundary along its normals, which shrinks the enclosed region.
	hole := Circle(0, 0, 2).Reversed()
	o := hole.Offset(1)
	if o.IsPositive() {
		t.Error("offset hole lost its orientation")
	}
	if got, want := math.Abs(o.Area()), math.Pi; math.Abs(got-want) > 1e-6 {
		t.Errorf("offset hole area = %v, want %v", got, want)
	}
}
