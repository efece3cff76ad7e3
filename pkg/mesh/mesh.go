package mesh

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNonManifold is returned when an edge is shared by more than two
// faces.
var ErrNonManifold = errors.New("mesh: non-manifold edge")

// ErrUnsupportedTopology is returned when silhouette assembly meets a
// configuration it cannot resolve, such as a hole chain enclosed by no
// outer chain.
var ErrUnsupportedTopology = errors.New("mesh: unsupported topology")

// EdgeKey identifies an undirected edge between two vertex indices.
type EdgeKey uint64

// MakeEdgeKey builds the canonical key for the edge between vertex
// indices a and b.
func MakeEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey(uint64(a)<<32 | uint64(b))
}

// A returns the lower vertex index of the edge.
func (k EdgeKey) A() int { return int(k >> 32) }

// B returns the higher vertex index of the edge.
func (k EdgeKey) B() int { return int(k & 0xffffffff) }

// Mesh3 is a triangle mesh: vertices, faces of three vertex indices,
// and per-face normals parallel to the face list. The edge-to-face
// adjacency map is a derived cache, rebuilt on demand and dropped by
// every topology mutation.
type Mesh3 struct {
	Vertices []r3.Vec
	Faces    [][3]int
	Normals  []r3.Vec

	edgeFaces map[EdgeKey][]int
}

// NewMesh3 creates an empty mesh.
func NewMesh3() *Mesh3 { return &Mesh3{} }

// VertexCount returns the number of vertices.
func (m *Mesh3) VertexCount() int { return len(m.Vertices) }

// FaceCount returns the number of faces.
func (m *Mesh3) FaceCount() int { return len(m.Faces) }

// AddVertex appends a vertex and returns its index.
func (m *Mesh3) AddVertex(v r3.Vec) int {
	m.InvalidateTopology()
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a face with an explicitly supplied normal and
// returns its index. Faces[i] and Normals[i] stay parallel.
func (m *Mesh3) AddFace(a, b, c int, normal r3.Vec) int {
	m.InvalidateTopology()
	m.Faces = append(m.Faces, [3]int{a, b, c})
	m.Normals = append(m.Normals, normal)
	return len(m.Faces) - 1
}

// AddFaceAuto appends a face whose normal is computed from the vertex
// winding (right-hand rule).
func (m *Mesh3) AddFaceAuto(a, b, c int) int {
	n := r3.Cross(r3.Sub(m.Vertices[b], m.Vertices[a]), r3.Sub(m.Vertices[c], m.Vertices[a]))
	if r3.Norm(n) > 0 {
		n = r3.Unit(n)
	}
	return m.AddFace(a, b, c, n)
}

// InvalidateTopology drops the cached edge-face map. Every mutation
// of faces or vertices must route through this; it is exported so
// callers poking the public slices directly can keep the cache
// honest.
func (m *Mesh3) InvalidateTopology() {
	m.edgeFaces = nil
}

// EdgeFaceMap returns the map from undirected edge to the face
// indices sharing that edge, building it on first use.
func (m *Mesh3) EdgeFaceMap() map[EdgeKey][]int {
	if m.edgeFaces != nil {
		return m.edgeFaces
	}
	ef := make(map[EdgeKey][]int, len(m.Faces)*3/2)
	for fi, f := range m.Faces {
		for e := 0; e < 3; e++ {
			k := MakeEdgeKey(f[e], f[(e+1)%3])
			ef[k] = append(ef[k], fi)
		}
	}
	m.edgeFaces = ef
	return ef
}

// CheckManifold verifies that no edge is shared by more than two
// faces.
func (m *Mesh3) CheckManifold() error {
	for k, faces := range m.EdgeFaceMap() {
		if len(faces) > 2 {
			return fmt.Errorf("edge %d-%d shared by %d faces: %w", k.A(), k.B(), len(faces), ErrNonManifold)
		}
	}
	return nil
}

// FaceCentroid returns the centroid of face fi.
func (m *Mesh3) FaceCentroid(fi int) r3.Vec {
	f := m.Faces[fi]
	s := r3.Add(r3.Add(m.Vertices[f[0]], m.Vertices[f[1]]), m.Vertices[f[2]])
	return r3.Scale(1.0/3.0, s)
}
