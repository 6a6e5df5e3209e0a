package obj

import (
	"fmt"

	"github.com/krachzack/aitios-asset/pkg/scene"
)

// Resolve joins parsed geometry against a material mapping, producing one
// self-contained entity per group. Each entity's mesh contains only the
// pool entries its faces reference, renumbered densely from 0 in
// first-encounter order, and a copy of the referenced material so no
// aliasing survives the call. Duplicate group names are preserved;
// deduplication is a caller concern.
func Resolve(g *Geometry, materials map[string]scene.Material) ([]scene.Entity, error) {
	entities := make([]scene.Entity, 0, len(g.Groups))
	for i := range g.Groups {
		ent, err := resolveGroup(g, &g.Groups[i], materials)
		if err != nil {
			return nil, err
		}
		entities = append(entities, ent)
	}
	return entities, nil
}

func resolveGroup(g *Geometry, grp *Group, materials map[string]scene.Material) (scene.Entity, error) {
	verts := newPoolRemap(len(g.Vertices))
	coords := newPoolRemap(len(g.TexCoords))
	norms := newPoolRemap(len(g.Normals))

	faces := make([]scene.Face, 0, len(grp.Faces))
	for _, face := range grp.Faces {
		local := make(scene.Face, len(face))
		for i, fv := range face {
			lv := scene.FaceVertex{TexCoord: scene.NoIndex, Normal: scene.NoIndex}

			idx, err := verts.localIndex(fv.Vertex)
			if err != nil {
				return scene.Entity{}, fmt.Errorf("group %q: vertex: %w", grp.Name, err)
			}
			lv.Vertex = idx

			if fv.TexCoord != scene.NoIndex {
				idx, err := coords.localIndex(fv.TexCoord)
				if err != nil {
					return scene.Entity{}, fmt.Errorf("group %q: texcoord: %w", grp.Name, err)
				}
				lv.TexCoord = idx
			}

			if fv.Normal != scene.NoIndex {
				idx, err := norms.localIndex(fv.Normal)
				if err != nil {
					return scene.Entity{}, fmt.Errorf("group %q: normal: %w", grp.Name, err)
				}
				lv.Normal = idx
			}

			local[i] = lv
		}
		faces = append(faces, local)
	}

	mesh := scene.Mesh{Faces: faces}

	mesh.Vertices = make([]scene.Vertex, len(verts.order))
	for i, global := range verts.order {
		mesh.Vertices[i] = g.Vertices[global]
	}
	mesh.TexCoords = make([]scene.TexCoord, len(coords.order))
	for i, global := range coords.order {
		mesh.TexCoords[i] = g.TexCoords[global]
	}
	mesh.Normals = make([]scene.Normal, len(norms.order))
	for i, global := range norms.order {
		mesh.Normals[i] = g.Normals[global]
	}

	var mat *scene.Material
	if grp.Material != "" {
		m, ok := materials[grp.Material]
		if !ok {
			return scene.Entity{}, fmt.Errorf("group %q: %w: material %q not present in material mapping", grp.Name, ErrUnresolvedReference, grp.Material)
		}
		// Copy by value so the entity owns its material.
		mat = &m
	}

	return scene.Entity{Name: grp.Name, Mesh: mesh, Material: mat}, nil
}

// poolRemap assigns dense local indices to the distinct global pool
// indices referenced by one group, in first-encounter order.
type poolRemap struct {
	poolLen int
	local   map[int]int
	order   []int
}

func newPoolRemap(poolLen int) *poolRemap {
	return &poolRemap{
		poolLen: poolLen,
		local:   make(map[int]int),
	}
}

func (r *poolRemap) localIndex(global int) (int, error) {
	if global < 0 || global >= r.poolLen {
		return 0, fmt.Errorf("%w: index %d references a pool of %d entries", ErrUnresolvedReference, global, r.poolLen)
	}
	if l, ok := r.local[global]; ok {
		return l, nil
	}
	l := len(r.order)
	r.local[global] = l
	r.order = append(r.order, global)
	return l, nil
}
