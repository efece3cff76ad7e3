// Package geom provides the 2D value-type primitives every numeric
// decision in the kernel goes through: points and vectors (gonum
// r2.Vec), lines, rays, segments, circles, arcs, and axis-aligned
// rectangles, together with the two tolerance thresholds that separate
// "geometrically equal" from "numerically zero".
package geom
