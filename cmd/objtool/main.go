// objtool is a CLI utility for inspecting and rewriting OBJ/MTL assets.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/krachzack/aitios-asset/internal/config"
	"github.com/krachzack/aitios-asset/internal/logger"
	"github.com/krachzack/aitios-asset/pkg/obj"
	"github.com/krachzack/aitios-asset/pkg/scene"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		cmdInfo(args)
	case "materials", "mats":
		cmdMaterials(args)
	case "validate", "check":
		cmdValidate(args)
	case "rewrite", "rw":
		cmdRewrite(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - OBJ/MTL asset utility

Usage:
  objtool [flags] <command> [arguments]

Commands:
  info <file.obj>       Show entity, mesh and material summary
  materials <file.obj>  List materials with their properties
  validate <file.obj>   Parse and resolve, reporting the first error
  rewrite <file.obj>    Load and save back out (renumbered, normalized)

Flags:
  -config path   Path to config file
  -debug         Enable debug logging
  -out dir       Output directory for rewritten files
  -no-mtl        Skip writing MTL material libraries
  -force         Overwrite existing output files

Examples:
  objtool info model.obj
  objtool -out ./export -force rewrite model.obj`)
}

func loadOrExit(path string) []scene.Entity {
	logger.Sugar.Debugf("loading %s", path)

	entities, err := obj.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Sugar.Debugf("loaded %d entities from %s", len(entities), path)
	return entities
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>")
		os.Exit(1)
	}

	entities := loadOrExit(args[0])

	fmt.Printf("File:     %s\n", args[0])
	fmt.Printf("Entities: %d\n", len(entities))
	fmt.Println()

	for i := range entities {
		e := &entities[i]
		fmt.Printf("%s\n", e.Name)
		fmt.Printf("  vertices:  %d\n", len(e.Mesh.Vertices))
		fmt.Printf("  texcoords: %d\n", len(e.Mesh.TexCoords))
		fmt.Printf("  normals:   %d\n", len(e.Mesh.Normals))
		fmt.Printf("  faces:     %d (%d triangles)\n", len(e.Mesh.Faces), e.Mesh.TriangleCount())
		if b, ok := e.Mesh.Bounds(); ok {
			size := b.Size()
			fmt.Printf("  bounds:    %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
		}
		if e.HasMaterial() {
			fmt.Printf("  material:  %s\n", e.Material.Name)
		} else {
			fmt.Printf("  material:  (none)\n")
		}
	}
}

func cmdMaterials(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool materials <file.obj>")
		os.Exit(1)
	}

	entities := loadOrExit(args[0])

	seen := make(map[string]bool)
	count := 0
	for i := range entities {
		m := entities[i].Material
		if m == nil || seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		count++

		fmt.Printf("%s\n", m.Name)
		fmt.Printf("  ambient:   %.3f %.3f %.3f\n", m.Ambient[0], m.Ambient[1], m.Ambient[2])
		fmt.Printf("  diffuse:   %.3f %.3f %.3f\n", m.Diffuse[0], m.Diffuse[1], m.Diffuse[2])
		fmt.Printf("  specular:  %.3f %.3f %.3f\n", m.Specular[0], m.Specular[1], m.Specular[2])
		fmt.Printf("  shininess: %.3f\n", m.Shininess)
		if m.DiffuseMap != "" {
			fmt.Printf("  map_Kd:    %s\n", m.DiffuseMap)
		}
	}

	if count == 0 {
		fmt.Println("No materials referenced")
	}
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool validate <file.obj>")
		os.Exit(1)
	}

	entities, err := obj.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		os.Exit(1)
	}

	faces := 0
	for i := range entities {
		faces += len(entities[i].Mesh.Faces)
	}
	fmt.Printf("OK: %d entities, %d faces\n", len(entities), faces)
}

func cmdRewrite(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool rewrite <file.obj>")
		os.Exit(1)
	}

	entities := loadOrExit(args[0])

	base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	objPath := filepath.Join(cfg.Output.Directory, base+".obj")
	mtlPath := ""
	if cfg.Output.MaterialLib {
		mtlPath = filepath.Join(cfg.Output.Directory, base+".mtl")
	}

	if !cfg.Output.Overwrite {
		for _, path := range []string{objPath, mtlPath} {
			if path == "" {
				continue
			}
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(os.Stderr, "Refusing to overwrite %s (use -force)\n", path)
				os.Exit(1)
			}
		}
	}

	if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := obj.Save(entities, objPath, mtlPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", objPath)
	if mtlPath != "" {
		fmt.Printf("Wrote %s\n", mtlPath)
	}
}
