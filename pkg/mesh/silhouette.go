package mesh

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/kerf/pkg/boundary"
	"github.com/chazu/kerf/pkg/geom"
)

// Frame is a right-handed view coordinate system. The silhouette is
// taken looking along -Z: faces whose normals point along +Z face the
// viewer.
type Frame struct {
	Origin r3.Vec
	X, Y, Z r3.Vec
}

// NewFrame builds a frame from an origin and two in-plane axes; Z is
// their cross product. The axes are normalized.
func NewFrame(origin, x, y r3.Vec) Frame {
	ux := r3.Unit(x)
	uy := r3.Unit(y)
	return Frame{Origin: origin, X: ux, Y: uy, Z: r3.Unit(r3.Cross(ux, uy))}
}

// FrameXY is the world XY plane viewed from +Z.
func FrameXY() Frame {
	return NewFrame(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1})
}

// FrameXZ is the world XZ plane viewed from -Y.
func FrameXZ() Frame {
	return NewFrame(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Z: 1})
}

// FrameYZ is the world YZ plane viewed from +X.
func FrameYZ() Frame {
	return NewFrame(r3.Vec{}, r3.Vec{Y: 1}, r3.Vec{Z: 1})
}

// ToLocal expresses a world point in frame coordinates.
func (f Frame) ToLocal(v r3.Vec) r3.Vec {
	d := r3.Sub(v, f.Origin)
	return r3.Vec{X: r3.Dot(d, f.X), Y: r3.Dot(d, f.Y), Z: r3.Dot(d, f.Z)}
}

// SilhouetteOptions tunes the extraction pipeline.
type SilhouetteOptions struct {
	// MergeTol is the vertex-merge distance in model units.
	MergeTol float64
}

// DefaultSilhouetteOptions returns a merge tolerance suited to STL
// float32 rounding.
func DefaultSilhouetteOptions() SilhouetteOptions {
	return SilhouetteOptions{MergeTol: 1e-5}
}

// Silhouette extracts the 2D outline bodies of the mesh as seen along
// the frame's view axis. Faces turned toward the viewer are projected
// into the frame plane, clustered into edge-connected patches, and
// each patch's boundary chains become one body: a counter-clockwise
// outer loop plus its clockwise holes. A hole chain enclosed by no
// outer chain, or an edge shared by more than two faces of a patch,
// is reported as unsupported topology rather than guessed at.
func Silhouette(m *Mesh3, f Frame, opts SilhouetteOptions) ([]*boundary.Body, error) {
	// Facing faces only, projected into the view plane.
	flat := NewMesh3()
	for _, v := range m.Vertices {
		p := f.ToLocal(v)
		p.Z = 0
		flat.AddVertex(p)
	}
	for fi, face := range m.Faces {
		if r3.Dot(m.Normals[fi], f.Z) <= 0 {
			continue
		}
		flat.AddFace(face[0], face[1], face[2], r3.Vec{Z: 1})
	}
	if flat.FaceCount() == 0 {
		return nil, nil
	}

	flat = MergeVertices(flat, opts.MergeTol)
	if flat.FaceCount() == 0 {
		return nil, nil
	}

	patches := clusterPatches(flat)

	var bodies []*boundary.Body
	for _, patch := range patches {
		body, err := patchBody(flat, patch)
		if err != nil {
			return nil, err
		}
		if body != nil {
			bodies = append(bodies, body)
		}
	}
	return bodies, nil
}

// clusterPatches flood-fills the faces of the mesh into connected
// components over shared edges. Face order within a patch follows
// discovery order from the lowest-index seed.
func clusterPatches(m *Mesh3) [][]int {
	ef := m.EdgeFaceMap()
	visited := make([]bool, m.FaceCount())
	var patches [][]int

	for seed := 0; seed < m.FaceCount(); seed++ {
		if visited[seed] {
			continue
		}
		var patch []int
		stack := []int{seed}
		visited[seed] = true
		for len(stack) > 0 {
			fi := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			patch = append(patch, fi)
			face := m.Faces[fi]
			for e := 0; e < 3; e++ {
				for _, nb := range ef[MakeEdgeKey(face[e], face[(e+1)%3])] {
					if !visited[nb] {
						visited[nb] = true
						stack = append(stack, nb)
					}
				}
			}
		}
		patches = append(patches, patch)
	}
	return patches
}

// patchBody walks the boundary chains of one patch and assembles them
// into a body.
func patchBody(m *Mesh3, patch []int) (*boundary.Body, error) {
	chains, err := boundaryChains(m, patch)
	if err != nil {
		return nil, err
	}
	if len(chains) == 0 {
		return nil, nil
	}

	var outers, holes []*boundary.Loop
	for _, chain := range chains {
		l := boundary.Polygon(chain...)
		if err := l.Validate(); err != nil {
			continue // degenerate sliver chain
		}
		if math.Abs(l.Area()) < geom.DistEquals {
			continue
		}
		if l.IsPositive() {
			outers = append(outers, l)
		} else {
			holes = append(holes, l)
		}
	}
	if len(outers) == 0 {
		if len(holes) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("patch has %d hole chains and no outer chain: %w", len(holes), ErrUnsupportedTopology)
	}

	// Largest outer first, so nested outers attach holes correctly.
	sort.Slice(outers, func(i, j int) bool { return outers[i].Area() > outers[j].Area() })
	body := boundary.NewBody(outers[0])
	for _, extra := range outers[1:] {
		// A second outer inside the same edge-connected patch is not
		// a resolvable silhouette.
		if extra.RelationTo(body.Outer) != boundary.EnclosedBy {
			return nil, fmt.Errorf("overlapping outer chains in one patch: %w", ErrUnsupportedTopology)
		}
		return nil, fmt.Errorf("nested outer chains in one patch: %w", ErrUnsupportedTopology)
	}
	for _, h := range holes {
		if h.RelationTo(body.Outer) != boundary.EnclosedBy {
			return nil, fmt.Errorf("hole chain not enclosed by outer chain: %w", ErrUnsupportedTopology)
		}
		body.Inners = append(body.Inners, h)
	}
	return body, nil
}

// boundaryChains collects the patch edges used by exactly one face
// and walks them into closed directed chains of 2D points. Edge
// direction follows face winding, so outer chains inherit the faces'
// counter-clockwise orientation and holes come out clockwise.
func boundaryChains(m *Mesh3, patch []int) ([][]r2.Vec, error) {
	inPatch := make(map[int]bool, len(patch))
	for _, fi := range patch {
		inPatch[fi] = true
	}

	// Count patch-internal uses of each undirected edge.
	use := make(map[EdgeKey]int)
	for _, fi := range patch {
		face := m.Faces[fi]
		for e := 0; e < 3; e++ {
			use[MakeEdgeKey(face[e], face[(e+1)%3])]++
		}
	}
	for k, n := range use {
		if n > 2 {
			return nil, fmt.Errorf("edge %d-%d used %d times in one patch: %w", k.A(), k.B(), n, ErrNonManifold)
		}
	}

	// Directed successor map over boundary edges, in face-winding
	// order.
	succ := make(map[int]int)
	for _, fi := range patch {
		face := m.Faces[fi]
		for e := 0; e < 3; e++ {
			a, b := face[e], face[(e+1)%3]
			if use[MakeEdgeKey(a, b)] == 1 {
				succ[a] = b
			}
		}
	}

	var chains [][]r2.Vec
	visited := make(map[int]bool)
	starts := make([]int, 0, len(succ))
	for a := range succ {
		starts = append(starts, a)
	}
	sort.Ints(starts)
	for _, start := range starts {
		if visited[start] {
			continue
		}
		var chain []r2.Vec
		v := start
		for steps := 0; ; steps++ {
			if steps > len(succ) {
				return nil, fmt.Errorf("boundary chain from vertex %d does not close: %w", start, ErrUnsupportedTopology)
			}
			visited[v] = true
			p := m.Vertices[v]
			chain = append(chain, geom.Pt(p.X, p.Y))
			next, ok := succ[v]
			if !ok {
				return nil, fmt.Errorf("boundary chain breaks at vertex %d: %w", v, ErrUnsupportedTopology)
			}
			v = next
			if v == start {
				break
			}
		}
		if len(chain) >= 3 {
			chains = append(chains, chain)
		}
	}
	return chains, nil
}
