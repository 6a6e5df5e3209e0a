package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/krachzack/aitios-asset/pkg/scene"
)

// WriteGeometry serializes entities as OBJ geometry text. All entities'
// pools are concatenated into one global 1-based numbering, entity by
// entity, reversing the localization performed by Resolve. When mtlLib is
// non-empty an mtllib reference is written and entities with a material
// get a usemtl directive; with no material library the geometry is
// written standalone, without material references.
//
// The entities are well-formed by construction, so the only failure mode
// is an I/O error on w.
func WriteGeometry(w io.Writer, entities []scene.Entity, mtlLib string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "# aitios OBJ geometry\n")
	if mtlLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlLib)
	}
	fmt.Fprint(bw, "\n")

	vertexBase, texCoordBase, normalBase := 1, 1, 1

	for i := range entities {
		e := &entities[i]

		fmt.Fprintf(bw, "o %s\n", e.Name)

		for _, v := range e.Mesh.Vertices {
			if v.W != 1 {
				fmt.Fprintf(bw, "v %s %s %s %s\n", ftoa(v.X), ftoa(v.Y), ftoa(v.Z), ftoa(v.W))
			} else {
				fmt.Fprintf(bw, "v %s %s %s\n", ftoa(v.X), ftoa(v.Y), ftoa(v.Z))
			}
		}
		for _, t := range e.Mesh.TexCoords {
			if t.W != 0 {
				fmt.Fprintf(bw, "vt %s %s %s\n", ftoa(t.U), ftoa(t.V), ftoa(t.W))
			} else {
				fmt.Fprintf(bw, "vt %s %s\n", ftoa(t.U), ftoa(t.V))
			}
		}
		for _, n := range e.Mesh.Normals {
			fmt.Fprintf(bw, "vn %s %s %s\n", ftoa(n.X), ftoa(n.Y), ftoa(n.Z))
		}

		if mtlLib != "" && e.Material != nil {
			fmt.Fprintf(bw, "usemtl %s\n", e.Material.Name)
		}

		for _, face := range e.Mesh.Faces {
			bw.WriteString("f")
			for _, fv := range face {
				bw.WriteByte(' ')
				bw.WriteString(faceRef(fv, vertexBase, texCoordBase, normalBase))
			}
			bw.WriteByte('\n')
		}

		fmt.Fprint(bw, "\n")

		vertexBase += len(e.Mesh.Vertices)
		texCoordBase += len(e.Mesh.TexCoords)
		normalBase += len(e.Mesh.Normals)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing geometry: %w", err)
	}
	return nil
}

// faceRef renders one face vertex in the shortest of the v, v/t, v//n
// and v/t/n forms.
func faceRef(fv scene.FaceVertex, vertexBase, texCoordBase, normalBase int) string {
	v := strconv.Itoa(vertexBase + fv.Vertex)
	switch {
	case fv.TexCoord != scene.NoIndex && fv.Normal != scene.NoIndex:
		return v + "/" + strconv.Itoa(texCoordBase+fv.TexCoord) + "/" + strconv.Itoa(normalBase+fv.Normal)
	case fv.TexCoord != scene.NoIndex:
		return v + "/" + strconv.Itoa(texCoordBase+fv.TexCoord)
	case fv.Normal != scene.NoIndex:
		return v + "//" + strconv.Itoa(normalBase+fv.Normal)
	default:
		return v
	}
}

// ftoa formats a float32 with the fewest digits that parse back to the
// same value, so written files round-trip exactly.
func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
