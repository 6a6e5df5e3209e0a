package obj

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/krachzack/aitios-asset/pkg/scene"
)

const triangle = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func mustParseGeometry(t *testing.T, input string, materials map[string]scene.Material) *Geometry {
	t.Helper()
	g, err := ParseGeometry([]byte(input), "test.obj", materials)
	if err != nil {
		t.Fatalf("ParseGeometry failed: %v", err)
	}
	return g
}

func TestParseGeometry_Triangle(t *testing.T) {
	g := mustParseGeometry(t, triangle, nil)

	if len(g.Vertices) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(g.Vertices))
	}
	if g.Vertices[1] != (scene.Vertex{X: 1, Y: 0, Z: 0, W: 1}) {
		t.Errorf("unexpected vertex 1: %+v", g.Vertices[1])
	}

	if len(g.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(g.Groups))
	}
	grp := g.Groups[0]
	if grp.Name != "default" {
		t.Errorf("expected group name 'default', got %q", grp.Name)
	}
	if grp.Material != "" {
		t.Errorf("expected no material, got %q", grp.Material)
	}

	want := scene.Face{
		{Vertex: 0, TexCoord: scene.NoIndex, Normal: scene.NoIndex},
		{Vertex: 1, TexCoord: scene.NoIndex, Normal: scene.NoIndex},
		{Vertex: 2, TexCoord: scene.NoIndex, Normal: scene.NoIndex},
	}
	if !reflect.DeepEqual(grp.Faces[0], want) {
		t.Errorf("got face %+v, want %+v", grp.Faces[0], want)
	}
}

func TestParseGeometry_NegativeIndexEquivalence(t *testing.T) {
	positive := mustParseGeometry(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n", nil)
	negative := mustParseGeometry(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n", nil)

	if !reflect.DeepEqual(positive.Groups, negative.Groups) {
		t.Errorf("negative-index parse differs: %+v vs %+v", positive.Groups, negative.Groups)
	}
}

func TestParseGeometry_NegativeIndexUsesPoolAtDirectiveTime(t *testing.T) {
	// -1 must refer to the second vertex; the third is appended later.
	input := "v 0 0 0\nv 1 0 0\nf -1 -2 -2\nv 9 9 9\n"
	g := mustParseGeometry(t, input, nil)

	face := g.Groups[0].Faces[0]
	if face[0].Vertex != 1 {
		t.Errorf("expected -1 to resolve to index 1, got %d", face[0].Vertex)
	}
}

func TestParseGeometry_NoRelativeIndexSurvives(t *testing.T) {
	input := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nf -1/-1/-1 -2/-1/-1 -3/-1/-1\n"
	g := mustParseGeometry(t, input, nil)

	for _, face := range g.Groups[0].Faces {
		for _, fv := range face {
			if fv.Vertex < 0 {
				t.Errorf("negative vertex index survived: %d", fv.Vertex)
			}
			if fv.TexCoord < 0 && fv.TexCoord != scene.NoIndex {
				t.Errorf("negative texcoord index survived: %d", fv.TexCoord)
			}
			if fv.Normal < 0 && fv.Normal != scene.NoIndex {
				t.Errorf("negative normal index survived: %d", fv.Normal)
			}
		}
	}
}

func TestParseGeometry_FaceTripleForms(t *testing.T) {
	input := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nvn 0 0 1\nf 1/1/1 2/2/1 3/3/1\nf 1//1 2//1 3//1\nf 1/1 2/2 3/3\n"
	g := mustParseGeometry(t, input, nil)

	faces := g.Groups[0].Faces
	if len(faces) != 3 {
		t.Fatalf("expected 3 faces, got %d", len(faces))
	}

	if faces[0][0] != (scene.FaceVertex{Vertex: 0, TexCoord: 0, Normal: 0}) {
		t.Errorf("v/t/n form parsed wrong: %+v", faces[0][0])
	}
	if faces[1][0] != (scene.FaceVertex{Vertex: 0, TexCoord: scene.NoIndex, Normal: 0}) {
		t.Errorf("v//n form parsed wrong: %+v", faces[1][0])
	}
	if faces[2][0] != (scene.FaceVertex{Vertex: 0, TexCoord: 0, Normal: scene.NoIndex}) {
		t.Errorf("v/t form parsed wrong: %+v", faces[2][0])
	}
}

func TestParseGeometry_DegenerateFace(t *testing.T) {
	_, err := ParseGeometry([]byte("v 0 0 0\nv 1 0 0\nf 1 2\n"), "test.obj", nil)
	if !errors.Is(err, ErrDegenerateFace) {
		t.Errorf("expected ErrDegenerateFace, got %v", err)
	}
}

func TestParseGeometry_IndexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"zero index", "v 0 0 0\nf 0 1 1\n", ErrIndexOutOfRange},
		{"overflow", "v 0 0 0\nf 1 1 2\n", ErrIndexOutOfRange},
		{"negative overflow", "v 0 0 0\nf -2 1 1\n", ErrIndexOutOfRange},
		{"forward reference", "v 0 0 0\nf 1 1 2\nv 1 0 0\n", ErrIndexOutOfRange},
		{"texcoord overflow", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n", ErrIndexOutOfRange},
		{"normal overflow", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n", ErrIndexOutOfRange},
		{"non-numeric index", "v 0 0 0\nf a b c\n", ErrMalformedGeometry},
		{"too many fields", "v 0 0 0\nf 1/1/1/1 1 1\n", ErrMalformedGeometry},
		{"missing vertex index", "v 0 0 0\nvt 0 0\nf /1 /1 /1\n", ErrMalformedGeometry},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseGeometry([]byte(tc.input), "test.obj", nil)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseGeometry_ErrorCarriesLineNumber(t *testing.T) {
	_, err := ParseGeometry([]byte("v 0 0 0\n\n# comment\nf 1 9 1\n"), "test.obj", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "test.obj:4") {
		t.Errorf("expected error to carry original line number 4, got %q", err.Error())
	}
}

func TestParseGeometry_UnknownMaterial(t *testing.T) {
	mats := map[string]scene.Material{"steel": scene.NewMaterial("steel")}

	_, err := ParseGeometry([]byte("usemtl bronze\n"), "test.obj", mats)
	if !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("expected ErrUnknownMaterial, got %v", err)
	}

	// Present in the mapping is fine, even with zero faces.
	g := mustParseGeometry(t, "usemtl steel\n", mats)
	if len(g.Groups) != 1 || g.Groups[0].Material != "steel" {
		t.Errorf("expected one group bound to steel, got %+v", g.Groups)
	}
}

func TestParseGeometry_GroupSemantics(t *testing.T) {
	mats := map[string]scene.Material{
		"steel":  scene.NewMaterial("steel"),
		"bronze": scene.NewMaterial("bronze"),
	}
	input := strings.Join([]string{
		"v 0 0 0", "v 1 0 0", "v 0 1 0",
		"g first",
		"usemtl steel", // binds in place, no faces yet
		"f 1 2 3",
		"g second", // material carries over
		"f 1 2 3",
		"usemtl bronze", // name carries over, group splits
		"f 1 2 3",
	}, "\n")

	g := mustParseGeometry(t, input, mats)

	type gm struct{ name, material string }
	var got []gm
	for _, grp := range g.Groups {
		got = append(got, gm{grp.Name, grp.Material})
	}
	want := []gm{
		{"first", "steel"},
		{"second", "steel"},
		{"second", "bronze"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got groups %+v, want %+v", got, want)
	}
}

func TestParseGeometry_ObjectResetsActiveMaterial(t *testing.T) {
	mats := map[string]scene.Material{"steel": scene.NewMaterial("steel")}
	input := strings.Join([]string{
		"v 0 0 0", "v 1 0 0", "v 0 1 0",
		"o coated",
		"usemtl steel",
		"f 1 2 3",
		"o bare", // no usemtl: the object starts without a material
		"f 1 2 3",
		"g sub", // groups within the bare object inherit its (empty) material
		"f 1 2 3",
	}, "\n")

	g := mustParseGeometry(t, input, mats)

	if len(g.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(g.Groups))
	}
	if g.Groups[0].Material != "steel" {
		t.Errorf("expected first object bound to steel, got %q", g.Groups[0].Material)
	}
	if g.Groups[1].Material != "" {
		t.Errorf("expected material reset at object boundary, got %q", g.Groups[1].Material)
	}
	if g.Groups[2].Material != "" {
		t.Errorf("expected group to inherit the object's empty material, got %q", g.Groups[2].Material)
	}
}

func TestParseGeometry_DropsUnopenedEmptyDefaultGroup(t *testing.T) {
	g := mustParseGeometry(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\n", nil)
	if len(g.Groups) != 0 {
		t.Errorf("expected no groups for face-less input, got %d", len(g.Groups))
	}
}

func TestParseGeometry_KeepsExplicitlyOpenedEmptyGroup(t *testing.T) {
	g := mustParseGeometry(t, "g empty\n", nil)
	if len(g.Groups) != 1 || g.Groups[0].Name != "empty" {
		t.Errorf("expected the explicitly opened empty group to be kept, got %+v", g.Groups)
	}
}

func TestParseGeometry_PoolDirectives(t *testing.T) {
	input := "v 1 2 3 0.5\nvt 0.25 0.75\nvt 0.1 0.2 0.3\nvn 0 1 0\n"
	g := mustParseGeometry(t, input, nil)

	if g.Vertices[0].W != 0.5 {
		t.Errorf("expected homogeneous weight 0.5, got %f", g.Vertices[0].W)
	}
	if g.TexCoords[0] != (scene.TexCoord{U: 0.25, V: 0.75}) {
		t.Errorf("unexpected 2-component texcoord: %+v", g.TexCoords[0])
	}
	if g.TexCoords[1].W != 0.3 {
		t.Errorf("expected texcoord third component 0.3, got %f", g.TexCoords[1].W)
	}
	if g.Normals[0] != (scene.Normal{X: 0, Y: 1, Z: 0}) {
		t.Errorf("unexpected normal: %+v", g.Normals[0])
	}
}

func TestParseGeometry_MalformedPoolDirectives(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"v too few", "v 1 2\n"},
		{"v too many", "v 1 2 3 4 5\n"},
		{"v non-numeric", "v a b c\n"},
		{"vt too few", "vt 1\n"},
		{"vn wrong count", "vn 1 2\n"},
		{"g without name", "g\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseGeometry([]byte(tc.input), "test.obj", nil)
			if !errors.Is(err, ErrMalformedGeometry) {
				t.Errorf("expected ErrMalformedGeometry, got %v", err)
			}
		})
	}
}

func TestParseGeometry_IgnoresUnsupportedDirectives(t *testing.T) {
	g := mustParseGeometry(t, "s 1\no thing\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n", nil)
	if len(g.Groups) != 1 || g.Groups[0].Name != "thing" {
		t.Errorf("expected 'o' treated as group directive and 's' skipped, got %+v", g.Groups)
	}
}

func TestParseGeometry_LongCommentLine(t *testing.T) {
	input := "# " + strings.Repeat("x", 80*1024) + "\n" + triangle

	g := mustParseGeometry(t, input, nil)

	if len(g.Vertices) != 3 {
		t.Errorf("expected 3 vertices after the long comment, got %d", len(g.Vertices))
	}
	if len(g.Groups) != 1 {
		t.Errorf("expected 1 group after the long comment, got %d", len(g.Groups))
	}
}

func TestParseGeometry_OversizedLineFailsLoudly(t *testing.T) {
	input := triangle + "# " + strings.Repeat("x", maxRecordBytes+1) + "\n"

	_, err := ParseGeometry([]byte(input), "test.obj", nil)
	if !errors.Is(err, ErrMalformedGeometry) {
		t.Errorf("expected ErrMalformedGeometry for an oversized line, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "test.obj:5") {
		t.Errorf("expected the error to carry the offending line, got %q", err.Error())
	}
}

func TestParseGeometry_CollectsMtlLibs(t *testing.T) {
	g := mustParseGeometry(t, "mtllib a.mtl\nmtllib b.mtl c.mtl\n", nil)
	want := []string{"a.mtl", "b.mtl", "c.mtl"}
	if !reflect.DeepEqual(g.MtlLibs, want) {
		t.Errorf("got mtllibs %v, want %v", g.MtlLibs, want)
	}
}
