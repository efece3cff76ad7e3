package mesh

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
)

// stlHeaderSize is the fixed prefix of a binary STL file, skipped on
// read.
const stlHeaderSize = 80

// stlTriangle mirrors the on-disk binary STL record: a float32 normal,
// three float32 vertices, and an attribute word that is ignored.
type stlTriangle struct {
	Normal [3]float32
	Verts  [3][3]float32
	Attr   uint16
}

// ReadSTL parses a binary STL stream: an 80-byte header, a
// little-endian uint32 triangle count, then 50 bytes per triangle.
// Every triangle gets its own three vertices; callers wanting shared
// topology run MergeVertices afterwards.
func ReadSTL(r io.Reader) (*Mesh3, error) {
	var header [stlHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("stl: reading header: %w", err)
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("stl: reading triangle count: %w", err)
	}

	m := NewMesh3()
	for i := uint32(0); i < count; i++ {
		var t stlTriangle
		if err := binary.Read(r, binary.LittleEndian, &t); err != nil {
			return nil, fmt.Errorf("stl: reading triangle %d of %d: %w", i, count, err)
		}
		base := len(m.Vertices)
		for _, v := range t.Verts {
			m.AddVertex(r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
		}
		n := r3.Vec{X: float64(t.Normal[0]), Y: float64(t.Normal[1]), Z: float64(t.Normal[2])}
		if r3.Norm(n) == 0 {
			// Some exporters write zero normals; recover from winding.
			m.AddFaceAuto(base, base+1, base+2)
		} else {
			m.AddFace(base, base+1, base+2, r3.Unit(n))
		}
	}
	return m, nil
}

// ReadSTLFile reads a binary STL file from disk.
func ReadSTLFile(path string) (*Mesh3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stl: %w", err)
	}
	defer f.Close()
	return ReadSTL(f)
}

// WriteSTL writes the mesh as binary STL, the inverse of ReadSTL.
func WriteSTL(w io.Writer, m *Mesh3) error {
	var header [stlHeaderSize]byte
	copy(header[:], "kerf mesh")
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("stl: writing header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Faces))); err != nil {
		return fmt.Errorf("stl: writing triangle count: %w", err)
	}
	for fi, f := range m.Faces {
		var t stlTriangle
		n := m.Normals[fi]
		t.Normal = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		for i := 0; i < 3; i++ {
			v := m.Vertices[f[i]]
			t.Verts[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
		}
		if err := binary.Write(w, binary.LittleEndian, &t); err != nil {
			return fmt.Errorf("stl: writing triangle %d: %w", fi, err)
		}
	}
	return nil
}
