package scene

import "github.com/chewxy/math32"

// Bounds is the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Bounds computes the axis-aligned bounding box over all vertices.
// The second return value is false for a mesh without vertices.
func (m *Mesh) Bounds() (Bounds, bool) {
	if len(m.Vertices) == 0 {
		return Bounds{}, false
	}

	v0 := m.Vertices[0]
	b := Bounds{
		Min: [3]float32{v0.X, v0.Y, v0.Z},
		Max: [3]float32{v0.X, v0.Y, v0.Z},
	}
	for _, v := range m.Vertices[1:] {
		b.Min[0] = math32.Min(b.Min[0], v.X)
		b.Min[1] = math32.Min(b.Min[1], v.Y)
		b.Min[2] = math32.Min(b.Min[2], v.Z)
		b.Max[0] = math32.Max(b.Max[0], v.X)
		b.Max[1] = math32.Max(b.Max[1], v.Y)
		b.Max[2] = math32.Max(b.Max[2], v.Z)
	}
	return b, true
}

// Size returns the box extents per axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{
		b.Max[0] - b.Min[0],
		b.Max[1] - b.Min[1],
		b.Max[2] - b.Min[2],
	}
}

// Length returns the magnitude of the normal.
func (n Normal) Length() float32 {
	return math32.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
}

// TriangleCount returns the number of triangles the mesh's faces fan out
// to. A polygon with n vertices contributes n-2 triangles.
func (m *Mesh) TriangleCount() int {
	total := 0
	for _, f := range m.Faces {
		if len(f) >= 3 {
			total += len(f) - 2
		}
	}
	return total
}
