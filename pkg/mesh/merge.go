package mesh

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// vertPoint adapts a mesh vertex to the kd-tree Comparable interface.
// Distances are squared Euclidean, per the kdtree convention.
type vertPoint struct {
	r3.Vec
	index int
}

func (p vertPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(vertPoint)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	default:
		return p.Z - q.Z
	}
}

func (p vertPoint) Dims() int { return 3 }

func (p vertPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(vertPoint)
	return r3.Norm2(r3.Sub(p.Vec, q.Vec))
}

// vertPoints implements kdtree.Interface over a vertex slice.
type vertPoints []vertPoint

func (p vertPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p vertPoints) Len() int                      { return len(p) }
func (p vertPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p vertPoints) Pivot(d kdtree.Dim) int {
	return vertPlane{vertPoints: p, Dim: d}.Pivot()
}

// vertPlane is the sortable view of vertPoints along one dimension.
type vertPlane struct {
	kdtree.Dim
	vertPoints
}

func (p vertPlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.vertPoints[i].X < p.vertPoints[j].X
	case 1:
		return p.vertPoints[i].Y < p.vertPoints[j].Y
	default:
		return p.vertPoints[i].Z < p.vertPoints[j].Z
	}
}
func (p vertPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p vertPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertPoints = p.vertPoints[start:end]
	return p
}
func (p vertPlane) Swap(i, j int) {
	p.vertPoints[i], p.vertPoints[j] = p.vertPoints[j], p.vertPoints[i]
}

// MergeVertices returns a new mesh in which vertices closer than tol
// are collapsed onto a single canonical vertex, the one with the
// lowest original index in each cluster, and faces are remapped
// accordingly. Faces that degenerate (two corners merged) are
// dropped. The input mesh is not modified.
func MergeVertices(m *Mesh3, tol float64) *Mesh3 {
	n := len(m.Vertices)
	pts := make(vertPoints, n)
	for i, v := range m.Vertices {
		pts[i] = vertPoint{Vec: v, index: i}
	}
	// kdtree.New reorders pts in place, so queries below rebuild the
	// query point from the mesh instead of indexing into pts.
	tree := kdtree.New(pts, false)

	canon := make([]int, n)
	for i := range canon {
		canon[i] = -1
	}
	for i := 0; i < n; i++ {
		if canon[i] >= 0 {
			continue
		}
		canon[i] = i
		keep := kdtree.NewDistKeeper(tol * tol)
		tree.NearestSet(keep, vertPoint{Vec: m.Vertices[i], index: i})
		for _, cd := range keep.Heap {
			if cd.Comparable == nil {
				continue
			}
			j := cd.Comparable.(vertPoint).index
			if canon[j] < 0 {
				canon[j] = i
			}
		}
	}

	// Compact the surviving canonical vertices, preserving order.
	remap := make([]int, n)
	out := NewMesh3()
	for i := 0; i < n; i++ {
		if canon[i] == i {
			remap[i] = out.AddVertex(m.Vertices[i])
		}
	}
	for i := 0; i < n; i++ {
		remap[i] = remap[canon[i]]
	}

	for fi, f := range m.Faces {
		a, b, c := remap[f[0]], remap[f[1]], remap[f[2]]
		if a == b || b == c || a == c {
			continue
		}
		out.AddFace(a, b, c, m.Normals[fi])
	}
	return out
}
