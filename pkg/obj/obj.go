// Package obj reads and writes Wavefront OBJ geometry files and their MTL
// material libraries as scene entities.
//
// Loading is parse-then-resolve: material libraries referenced from the
// geometry file are parsed into a name mapping first, then the geometry
// is parsed against that mapping and resolved into self-contained
// entities. Saving reverses the process, renumbering each entity's local
// pools into one global numbering.
//
// The package is a pure transformation from input to result: it performs
// no logging and no retries, and every call is independent and
// re-entrant.
package obj

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/krachzack/aitios-asset/pkg/scene"
)

// Load reads the geometry file at path, parses any material libraries it
// references (resolved as siblings of the geometry file), and resolves
// everything into entities. The first error aborts the load with no
// partial result.
func Load(path string) ([]scene.Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading geometry file: %w", err)
	}

	materials, err := loadMaterialLibs(data, path)
	if err != nil {
		return nil, err
	}

	geometry, err := ParseGeometry(data, path, materials)
	if err != nil {
		return nil, err
	}

	return Resolve(geometry, materials)
}

// loadMaterialLibs pre-scans the geometry records for mtllib references
// and parses each referenced library, resolved as siblings of the
// geometry file at path. A name defined by a later library overwrites an
// earlier definition.
func loadMaterialLibs(data []byte, path string) (map[string]scene.Material, error) {
	materials := make(map[string]scene.Material)
	dir := filepath.Dir(path)

	rs := newRecordScanner(data)
	for rs.Scan() {
		rec := rs.Record()
		if rec.keyword != "mtllib" {
			continue
		}
		for _, name := range rec.args {
			libPath := filepath.Join(dir, name)
			libData, err := os.ReadFile(libPath)
			if err != nil {
				return nil, fmt.Errorf("reading material library: %w", err)
			}
			libMaterials, err := ParseMaterials(libData, libPath)
			if err != nil {
				return nil, err
			}
			for k, v := range libMaterials {
				materials[k] = v
			}
		}
	}
	if err := rs.Err(); err != nil {
		return nil, lineError(path, rs.line+1, ErrMalformedGeometry, "%v", err)
	}

	return materials, nil
}

// Save writes entities as geometry and material library text. Either path
// may be empty to skip that output. When both are given, the geometry
// file references the material library by base name, so the two files
// are expected to end up in the same directory.
func Save(entities []scene.Entity, objPath, mtlPath string) error {
	if mtlPath != "" {
		if err := saveFile(mtlPath, func(f *os.File) error {
			return WriteMaterials(f, entities)
		}); err != nil {
			return err
		}
	}

	if objPath != "" {
		mtlLib := ""
		if mtlPath != "" {
			mtlLib = filepath.Base(mtlPath)
		}
		if err := saveFile(objPath, func(f *os.File) error {
			return WriteGeometry(f, entities, mtlLib)
		}); err != nil {
			return err
		}
	}

	return nil
}

func saveFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	werr := write(f)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return fmt.Errorf("closing output file: %w", cerr)
	}
	return nil
}
