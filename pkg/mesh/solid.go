package mesh

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

const defaultMeshCells = 100

// FromSDF samples a signed distance field with uniform marching cubes
// and returns the triangle soup as a mesh. Cells is the resolution of
// the longest bounding-box axis; pass 0 for a reasonable default. The
// soup is vertex-merged at tol so downstream adjacency queries see a
// connected surface.
func FromSDF(s sdf.SDF3, cells int, tol float64) *Mesh3 {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	m := NewMesh3()
	for _, tri := range triangles {
		n := tri.Normal()
		var idx [3]int
		for j := 0; j < 3; j++ {
			v := tri[j]
			idx[j] = m.AddVertex(r3.Vec{X: v.X, Y: v.Y, Z: v.Z})
		}
		m.AddFace(idx[0], idx[1], idx[2], r3.Vec{X: n.X, Y: n.Y, Z: n.Z})
	}
	if tol > 0 {
		m = MergeVertices(m, tol)
	}
	return m
}
