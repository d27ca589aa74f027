package drawinfo

import (
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/drawinfo/pkg/math"
	"github.com/Faultbox/drawinfo/pkg/uid"
)

func triangle() ([]uint32, []math.Vec3) {
	return []uint32{0, 1, 2}, []math.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
}

func TestNewIVPDefaults(t *testing.T) {
	idx, pos := triangle()
	m, err := NewIVP(idx, pos)
	if err != nil {
		t.Fatalf("NewIVP: %v", err)
	}
	if m.ID != NoID {
		t.Errorf("ID: got %d, want NoID", m.ID)
	}
	if m.Name != "" {
		t.Errorf("Name: got %q, want empty", m.Name)
	}
	if !m.Transform.IsIdentity() {
		t.Errorf("Transform should start as identity, got %v", m.Transform)
	}
	if m.Tracker.NeedsRebuffer() {
		t.Error("new mesh should not need rebuffer")
	}
}

func TestOptions(t *testing.T) {
	idx, pos := triangle()
	ids := uid.NewFrom(40)

	m, err := NewIVP(idx, pos, WithAllocator(ids), WithName("hull"))
	if err != nil {
		t.Fatalf("NewIVP: %v", err)
	}
	if m.ID != 40 || m.Name != "hull" {
		t.Errorf("got id=%d name=%q, want 40 hull", m.ID, m.Name)
	}

	m, err = NewIVP(idx, pos, WithID(7))
	if err != nil {
		t.Fatalf("NewIVP: %v", err)
	}
	if m.ID != 7 {
		t.Errorf("WithID: got %d, want 7", m.ID)
	}
}

func TestValidateIndices(t *testing.T) {
	_, pos := triangle()

	tests := []struct {
		name    string
		indices []uint32
		opts    []Option
		want    error
	}{
		{"ok", []uint32{0, 1, 2}, nil, nil},
		{"empty", nil, nil, nil},
		{"out of range", []uint32{0, 1, 3}, nil, ErrIndexOutOfRange},
		{"arity", []uint32{0, 1}, nil, ErrIndexArity},
		{"lines", []uint32{0, 1, 1, 2}, []Option{WithArity(2)}, nil},
		{"zero arity", []uint32{0}, []Option{WithArity(0)}, ErrIndexArity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIVP(tt.indices, pos, tt.opts...)
			if tt.want == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVariantAttributeLengths(t *testing.T) {
	idx, pos := triangle()
	short3 := []math.Vec3{{}, {}}
	short2 := []math.Vec2{{}, {}}
	full2 := []math.Vec2{{}, {}, {}}
	bones := make([]VertexBoneData, 3)

	tests := []struct {
		name  string
		build func() error
	}{
		{"color", func() error { _, err := NewIVPColor(idx, pos, short3); return err }},
		{"normals", func() error { _, err := NewIVPNormals(idx, pos, short3); return err }},
		{"ncolor", func() error { _, err := NewIVPNColor(idx, pos, pos, short3); return err }},
		{"textured", func() error { _, err := NewIVPTextured(idx, pos, short2, "a.png"); return err }},
		{"ntextured", func() error { _, err := NewIVPNTextured(idx, pos, pos, short2, "a.png"); return err }},
		{"packed original", func() error {
			_, err := NewIVPTexturePacked(idx, pos, Atlas{OriginalTexCoords: short2, PackedTexCoords: full2})
			return err
		}},
		{"npacked packed", func() error {
			_, err := NewIVPNTexturePacked(idx, pos, pos, Atlas{OriginalTexCoords: full2, PackedTexCoords: short2})
			return err
		}},
		{"rigged bones", func() error {
			_, err := NewIVPNTRigged(idx, pos, pos, full2, "a.png", bones[:1])
			return err
		}},
		{"packed rigged normals", func() error {
			_, err := NewIVPNTPRigged(idx, pos, short3, Atlas{OriginalTexCoords: full2, PackedTexCoords: full2}, bones)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.build(); !errors.Is(err, ErrAttributeLength) {
				t.Errorf("got %v, want ErrAttributeLength", err)
			}
		})
	}
}

func TestVariantsSatisfyMesh(t *testing.T) {
	idx, pos := triangle()
	uv := []math.Vec2{{}, {}, {}}
	atlas := Atlas{OriginalTexCoords: uv, PackedTexCoords: uv}
	bones := make([]VertexBoneData, 3)

	var meshes []Mesh
	add := func(m Mesh, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("constructor failed: %v", err)
		}
		meshes = append(meshes, m)
	}
	add(NewIVP(idx, pos))
	add(NewIVPColor(idx, pos, pos))
	add(NewIVPNormals(idx, pos, pos))
	add(NewIVPNColor(idx, pos, pos, pos))
	add(NewIVPTextured(idx, pos, uv, "t.png"))
	add(NewIVPNTextured(idx, pos, pos, uv, "t.png"))
	add(NewIVPTexturePacked(idx, pos, atlas))
	add(NewIVPNTexturePacked(idx, pos, pos, atlas))
	add(NewIVPNTRigged(idx, pos, pos, uv, "t.png", bones))
	add(NewIVPNTPRigged(idx, pos, pos, atlas, bones))

	for _, m := range meshes {
		if m.MeshBase().VertexCount() != 3 {
			t.Errorf("%T: vertex count %d", m, m.MeshBase().VertexCount())
		}
	}
}

func TestNewIVPColorUniform(t *testing.T) {
	idx, pos := triangle()
	ivp, _ := NewIVP(idx, pos, WithID(3), WithName("tri"))
	ivp.Transform.Translate(math.Vec3{X: 1})

	red := math.Vec3{X: 1}
	c := NewIVPColorUniform(ivp, red)

	if c.ID != 3 || c.Name != "tri" {
		t.Errorf("id/name not carried: %d %q", c.ID, c.Name)
	}
	if c.Transform != ivp.Transform {
		t.Errorf("transform not carried: %v", c.Transform)
	}
	if len(c.Colors) != 3 {
		t.Fatalf("colors: got %d, want 3", len(c.Colors))
	}
	for i, col := range c.Colors {
		if col != red {
			t.Errorf("colors[%d] = %v, want %v", i, col, red)
		}
	}

	// Positions are copied, not shared
	c.Positions[0] = math.Vec3{X: 9}
	if ivp.Positions[0] == c.Positions[0] {
		t.Error("uniform constructor should copy positions")
	}
}

func TestCopyDrawDataFrom(t *testing.T) {
	idx, pos := triangle()
	src, _ := NewIVPColor(idx, pos, []math.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, WithID(1))
	dst, _ := NewIVPColor(nil, nil, nil, WithID(2), WithName("dst"))
	dst.Tracker.MarkBuffered()

	dst.CopyDrawDataFrom(src)

	if dst.ID != 2 || dst.Name != "dst" {
		t.Errorf("id/name should not change: %d %q", dst.ID, dst.Name)
	}
	if len(dst.Positions) != 3 || len(dst.Colors) != 3 || len(dst.Indices) != 3 {
		t.Errorf("draw data not copied: %v", dst)
	}
	if !dst.Tracker.NeedsRebuffer() {
		t.Error("copy should mark modified")
	}

	dst.Tracker.MarkBuffered()
	dst.CopyDrawDataFrom(dst)
	if dst.Tracker.NeedsRebuffer() {
		t.Error("self copy should be a no-op")
	}
}

func TestBounds(t *testing.T) {
	m, _ := NewIVP(nil, []math.Vec3{{1, -2, 3}, {-1, 4, 0}, {0, 0, 5}})
	lo, hi, ok := Bounds(m)
	if !ok {
		t.Fatal("Bounds should succeed")
	}
	if lo != (math.Vec3{-1, -2, 0}) || hi != (math.Vec3{1, 4, 5}) {
		t.Errorf("Bounds: got %v %v", lo, hi)
	}

	empty, _ := NewIVP(nil, nil)
	if _, _, ok := Bounds(empty); ok {
		t.Error("Bounds of empty mesh should not be ok")
	}
}

func TestString(t *testing.T) {
	idx, pos := triangle()
	m, _ := NewIVPTextured(idx, pos, []math.Vec2{{}, {}, {}}, "wood.png")
	s := m.String()
	if !strings.HasPrefix(s, "IVPTextured(") || !strings.Contains(s, `"wood.png"`) {
		t.Errorf("String: %s", s)
	}
}
