// Package scene defines the entity, mesh and material types produced by
// loading 3D assets and consumed when saving them.
package scene

// NoIndex marks an absent texcoord or normal reference in a face vertex.
const NoIndex = -1

// Vertex is a mesh vertex position. W is the homogeneous weight and
// defaults to 1.
type Vertex struct {
	X, Y, Z float32
	W       float32
}

// TexCoord is a texture coordinate. W is the optional third component and
// is 0 unless the source file provided one.
type TexCoord struct {
	U, V float32
	W    float32
}

// Normal is a mesh normal. Parsers do not require it to be unit length;
// normalization is a consumer concern.
type Normal struct {
	X, Y, Z float32
}

// FaceVertex references one vertex of a face by index into the owning
// mesh's pools. TexCoord and Normal are NoIndex when absent.
type FaceVertex struct {
	Vertex   int
	TexCoord int
	Normal   int
}

// Face is an ordered polygon of at least 3 face vertices.
type Face []FaceVertex

// Mesh holds the geometry of a single entity. Indices in Faces are local
// to this mesh's pools, 0-based and dense.
type Mesh struct {
	Vertices  []Vertex
	TexCoords []TexCoord
	Normals   []Normal
	Faces     []Face
}

// Entity is the unit of asset input/output: one mesh plus an optional
// material. Material is owned by the entity, not shared.
type Entity struct {
	Name     string
	Mesh     Mesh
	Material *Material
}

// HasMaterial reports whether the entity carries a material.
func (e *Entity) HasMaterial() bool {
	return e.Material != nil
}
