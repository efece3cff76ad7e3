// Package boundary implements closed 2D cutting profiles as circular
// loops of directed line and arc elements, together with the
// operations laser-cutting workflows need: signed area and bounds,
// relation classification between loops, boolean merge/cut, offsets,
// redundancy removal, and arc fitting of fine polylines.
//
// A loop stores vertex descriptors (a start point plus optional arc
// center and direction) in an arena loop; geometric queries compile
// the descriptors into an immutable element array on demand. The
// compiled array is a cache with explicit invalidation at every
// structural mutation site.
//
// Winding encodes sign: a counter-clockwise loop (positive area) is
// material, a clockwise loop (negative area) is a hole or a cutting
// tool.
package boundary
