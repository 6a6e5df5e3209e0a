package scene

// Material property defaults. Color components default to mid-gray and
// shininess to zero when a material definition omits them.
const (
	DefaultColorComponent float32 = 0.5
	DefaultShininess      float32 = 0
)

// Material holds surface shading properties keyed by a unique name.
type Material struct {
	Name string

	Ambient  [3]float32 // Ka
	Diffuse  [3]float32 // Kd
	Specular [3]float32 // Ks

	Shininess float32 // Ns

	// DiffuseMap is the diffuse texture file path, empty when unset.
	DiffuseMap string
}

// NewMaterial returns a material with the given name and every property
// at its documented default.
func NewMaterial(name string) Material {
	gray := [3]float32{DefaultColorComponent, DefaultColorComponent, DefaultColorComponent}
	return Material{
		Name:      name,
		Ambient:   gray,
		Diffuse:   gray,
		Specular:  gray,
		Shininess: DefaultShininess,
	}
}

// IsDefault reports whether every property besides the name equals its
// documented default.
func (m *Material) IsDefault() bool {
	def := NewMaterial(m.Name)
	return *m == def
}
