// Package export writes boundary geometry to interchange formats for
// downstream CAM tooling.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/kerf/pkg/boundary"
	"github.com/chazu/kerf/pkg/geom"
)

// SVGOptions controls the rendered document.
type SVGOptions struct {
	// StrokeWidth in model units.
	StrokeWidth float64
	// Stroke is the path color.
	Stroke string
	// Margin is padding around the drawing bounds, model units.
	Margin float64
	// Scale maps model units to SVG user units.
	Scale float64
}

// DefaultSVGOptions renders hairline black outlines at 1:1 scale with
// a small margin, which is what most laser controllers expect.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		StrokeWidth: 0.1,
		Stroke:      "black",
		Margin:      2,
		Scale:       1,
	}
}

// WriteSVG renders the bodies as unfilled outline paths. Each body
// becomes one path element with its holes as additional subpaths. The
// drawing is flipped so model +Y points up on screen.
func WriteSVG(w io.Writer, bodies []*boundary.Body, opts SVGOptions) error {
	bounds := geom.EmptyRect()
	for _, b := range bodies {
		bounds = bounds.Union(b.Outer.Bounds())
	}
	if len(bodies) == 0 || bounds.Min.X > bounds.Max.X {
		return fmt.Errorf("nothing to export")
	}
	bounds = bounds.Expand(opts.Margin)

	width := int(math.Ceil((bounds.Max.X - bounds.Min.X) * opts.Scale))
	height := int(math.Ceil((bounds.Max.Y - bounds.Min.Y) * opts.Scale))

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Gtransform(fmt.Sprintf("translate(%s,%s) scale(%s,-%s)",
		ftoa(-bounds.Min.X*opts.Scale), ftoa(bounds.Max.Y*opts.Scale),
		ftoa(opts.Scale), ftoa(opts.Scale)))

	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", opts.Stroke, ftoa(opts.StrokeWidth))
	for _, b := range bodies {
		var d strings.Builder
		d.WriteString(loopPath(b.Outer))
		for _, h := range b.Inners {
			d.WriteByte(' ')
			d.WriteString(loopPath(h))
		}
		canvas.Path(d.String(), style)
	}

	canvas.Gend()
	canvas.End()
	return nil
}

// loopPath builds the path data for one closed loop.
func loopPath(l *boundary.Loop) string {
	elems := l.Elements()
	var d strings.Builder
	start := elems[0].Start()
	fmt.Fprintf(&d, "M%s,%s", ftoa(start.X), ftoa(start.Y))
	for _, e := range elems {
		switch e.Kind {
		case boundary.LineElement:
			p := e.End()
			fmt.Fprintf(&d, " L%s,%s", ftoa(p.X), ftoa(p.Y))
		case boundary.ArcElement:
			writeArc(&d, e.Arc)
		}
	}
	d.WriteString(" Z")
	return d.String()
}

// writeArc emits SVG arc commands for one circular arc. Full circles
// are split in two because the A command cannot represent a sweep of
// 2*pi with coincident endpoints.
func writeArc(d *strings.Builder, a geom.Arc) {
	if a.IsFullCircle() {
		half := geom.Arc{Circle: a.Circle, Theta0: a.Theta0, Sweep: a.Sweep / 2}
		writeArc(d, half)
		writeArc(d, geom.Arc{Circle: a.Circle, Theta0: half.Theta1(), Sweep: a.Sweep / 2})
		return
	}
	large := 0
	if math.Abs(a.Sweep) > math.Pi {
		large = 1
	}
	// Sweep flag 1 follows increasing angle, which is this kernel's
	// counter-clockwise direction.
	sweep := 1
	if a.Clockwise() {
		sweep = 0
	}
	p := a.End()
	r := ftoa(a.Circle.Radius)
	fmt.Fprintf(d, " A%s,%s 0 %d %d %s,%s", r, r, large, sweep, ftoa(p.X), ftoa(p.Y))
}

// ftoa formats a coordinate with enough precision for laser work and
// no trailing zero noise.
func ftoa(v float64) string {
	s := fmt.Sprintf("%.6f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
