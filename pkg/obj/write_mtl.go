package obj

import (
	"bufio"
	"fmt"
	"io"

	"github.com/krachzack/aitios-asset/pkg/scene"
)

// WriteMaterials serializes the distinct materials referenced by the
// entities as MTL text, one newmtl block per name in first-reference
// order. When two entities carry materials sharing a name, the first
// occurrence wins. Ka, Kd, Ks and Ns are always written, even at their
// default values, so a block never depends on reader defaults; map_Kd is
// written only when a diffuse map is set.
func WriteMaterials(w io.Writer, entities []scene.Entity) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "# aitios MTL material library\n")

	seen := make(map[string]bool)
	for i := range entities {
		m := entities[i].Material
		if m == nil || seen[m.Name] {
			continue
		}
		seen[m.Name] = true

		fmt.Fprintf(bw, "\nnewmtl %s\n", m.Name)
		fmt.Fprintf(bw, "Ka %s %s %s\n", ftoa(m.Ambient[0]), ftoa(m.Ambient[1]), ftoa(m.Ambient[2]))
		fmt.Fprintf(bw, "Kd %s %s %s\n", ftoa(m.Diffuse[0]), ftoa(m.Diffuse[1]), ftoa(m.Diffuse[2]))
		fmt.Fprintf(bw, "Ks %s %s %s\n", ftoa(m.Specular[0]), ftoa(m.Specular[1]), ftoa(m.Specular[2]))
		fmt.Fprintf(bw, "Ns %s\n", ftoa(m.Shininess))
		if m.DiffuseMap != "" {
			fmt.Fprintf(bw, "map_Kd %s\n", m.DiffuseMap)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing materials: %w", err)
	}
	return nil
}
