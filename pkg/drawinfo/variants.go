package drawinfo

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Faultbox/drawinfo/pkg/math"
)

// Constructors take ownership of the slices they are given.

// IVP (indexed vertex positions) is the minimal drawable: enough to issue
// an indexed draw call. Used for solid-color objects, wireframes and debug
// geometry.
type IVP struct {
	Base
}

// NewIVP builds an IVP.
func NewIVP(indices []uint32, positions []math.Vec3, opts ...Option) (*IVP, error) {
	m := &IVP{Base: newBase(indices, positions, opts)}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *IVP) String() string { return "IVP(" + m.Base.String() + ")" }

// IVPColor adds a per-vertex RGB color.
type IVPColor struct {
	Base
	Colors []math.Vec3
}

// NewIVPColor builds an IVPColor.
func NewIVPColor(indices []uint32, positions, colors []math.Vec3, opts ...Option) (*IVPColor, error) {
	m := &IVPColor{Base: newBase(indices, positions, opts), Colors: colors}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewIVPColorUniform paints every vertex of ivp with one color. Id, name
// and pending transform carry over; the tracker starts unbuffered.
func NewIVPColorUniform(ivp *IVP, color math.Vec3) *IVPColor {
	return &IVPColor{
		Base:   cloneBase(&ivp.Base),
		Colors: uniform(color, ivp.VertexCount()),
	}
}

// Validate checks the index and attribute invariants.
func (m *IVPColor) Validate() error {
	return errors.Join(m.Base.Validate(), checkLen("colors", len(m.Colors), m.VertexCount()))
}

// CopyDrawDataFrom replaces indices, positions and colors with copies of
// other's. Id, name and transform are left alone.
func (m *IVPColor) CopyDrawDataFrom(other *IVPColor) {
	if m == other {
		return
	}
	m.Indices = slices.Clone(other.Indices)
	m.Positions = slices.Clone(other.Positions)
	m.Colors = slices.Clone(other.Colors)
	m.Tracker.MarkModified()
}

func (m *IVPColor) String() string {
	return fmt.Sprintf("IVPColor(%s, colors=%d)", m.Base.String(), len(m.Colors))
}

// IVPNormals adds a per-vertex normal for lighting.
type IVPNormals struct {
	Base
	Normals []math.Vec3
}

// NewIVPNormals builds an IVPNormals.
func NewIVPNormals(indices []uint32, positions, normals []math.Vec3, opts ...Option) (*IVPNormals, error) {
	m := &IVPNormals{Base: newBase(indices, positions, opts), Normals: normals}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the index and attribute invariants.
func (m *IVPNormals) Validate() error {
	return errors.Join(m.Base.Validate(), checkLen("normals", len(m.Normals), m.VertexCount()))
}

func (m *IVPNormals) String() string {
	return fmt.Sprintf("IVPNormals(%s, normals=%d)", m.Base.String(), len(m.Normals))
}

// IVPNColor has normals and colors.
type IVPNColor struct {
	Base
	Normals []math.Vec3
	Colors  []math.Vec3
}

// NewIVPNColor builds an IVPNColor.
func NewIVPNColor(indices []uint32, positions, normals, colors []math.Vec3, opts ...Option) (*IVPNColor, error) {
	m := &IVPNColor{Base: newBase(indices, positions, opts), Normals: normals, Colors: colors}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewIVPNColorUniform paints every vertex of n with one color.
func NewIVPNColorUniform(n *IVPNormals, color math.Vec3) *IVPNColor {
	return &IVPNColor{
		Base:    cloneBase(&n.Base),
		Normals: slices.Clone(n.Normals),
		Colors:  uniform(color, n.VertexCount()),
	}
}

// Validate checks the index and attribute invariants.
func (m *IVPNColor) Validate() error {
	return errors.Join(
		m.Base.Validate(),
		checkLen("normals", len(m.Normals), m.VertexCount()),
		checkLen("colors", len(m.Colors), m.VertexCount()),
	)
}

func (m *IVPNColor) String() string {
	return fmt.Sprintf("IVPNColor(%s, normals=%d, colors=%d)", m.Base.String(), len(m.Normals), len(m.Colors))
}

// IVPTextured is the smallest variant that can be drawn with a texture.
// TexturePath usually names a diffuse map.
type IVPTextured struct {
	Base
	TexCoords   []math.Vec2
	TexturePath string
}

// NewIVPTextured builds an IVPTextured.
func NewIVPTextured(indices []uint32, positions []math.Vec3, texCoords []math.Vec2, texture string, opts ...Option) (*IVPTextured, error) {
	m := &IVPTextured{Base: newBase(indices, positions, opts), TexCoords: texCoords, TexturePath: texture}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the index and attribute invariants.
func (m *IVPTextured) Validate() error {
	return errors.Join(m.Base.Validate(), checkLen("texture coordinates", len(m.TexCoords), m.VertexCount()))
}

func (m *IVPTextured) String() string {
	return fmt.Sprintf("IVPTextured(%s, texcoords=%d, texture=%q)", m.Base.String(), len(m.TexCoords), m.TexturePath)
}

// IVPNTextured is a lit textured mesh.
type IVPNTextured struct {
	Base
	Normals     []math.Vec3
	TexCoords   []math.Vec2
	TexturePath string
}

// NewIVPNTextured builds an IVPNTextured.
func NewIVPNTextured(indices []uint32, positions, normals []math.Vec3, texCoords []math.Vec2, texture string, opts ...Option) (*IVPNTextured, error) {
	m := &IVPNTextured{
		Base:        newBase(indices, positions, opts),
		Normals:     normals,
		TexCoords:   texCoords,
		TexturePath: texture,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the index and attribute invariants.
func (m *IVPNTextured) Validate() error {
	return errors.Join(
		m.Base.Validate(),
		checkLen("normals", len(m.Normals), m.VertexCount()),
		checkLen("texture coordinates", len(m.TexCoords), m.VertexCount()),
	)
}

func (m *IVPNTextured) String() string {
	return fmt.Sprintf("IVPNTextured(%s, normals=%d, texcoords=%d, texture=%q)",
		m.Base.String(), len(m.Normals), len(m.TexCoords), m.TexturePath)
}

// IVPTexturePacked is a textured mesh whose texture lives in an atlas.
type IVPTexturePacked struct {
	Base
	Atlas
}

// NewIVPTexturePacked builds an IVPTexturePacked.
func NewIVPTexturePacked(indices []uint32, positions []math.Vec3, atlas Atlas, opts ...Option) (*IVPTexturePacked, error) {
	m := &IVPTexturePacked{Base: newBase(indices, positions, opts), Atlas: atlas}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the index and attribute invariants.
func (m *IVPTexturePacked) Validate() error {
	return errors.Join(m.Base.Validate(), m.Atlas.check(m.VertexCount()))
}

func (m *IVPTexturePacked) String() string {
	return fmt.Sprintf("IVPTexturePacked(%s, %s)", m.Base.String(), m.Atlas.summary())
}

// IVPNTexturePacked is a lit atlas-packed mesh.
type IVPNTexturePacked struct {
	Base
	Normals []math.Vec3
	Atlas
}

// NewIVPNTexturePacked builds an IVPNTexturePacked.
func NewIVPNTexturePacked(indices []uint32, positions, normals []math.Vec3, atlas Atlas, opts ...Option) (*IVPNTexturePacked, error) {
	m := &IVPNTexturePacked{Base: newBase(indices, positions, opts), Normals: normals, Atlas: atlas}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the index and attribute invariants.
func (m *IVPNTexturePacked) Validate() error {
	return errors.Join(
		m.Base.Validate(),
		checkLen("normals", len(m.Normals), m.VertexCount()),
		m.Atlas.check(m.VertexCount()),
	)
}

func (m *IVPNTexturePacked) String() string {
	return fmt.Sprintf("IVPNTexturePacked(%s, normals=%d, %s)", m.Base.String(), len(m.Normals), m.Atlas.summary())
}

// IVPNTRigged is a skinned, lit, textured mesh. Bones holds one influence
// record per vertex.
type IVPNTRigged struct {
	Base
	Normals     []math.Vec3
	TexCoords   []math.Vec2
	TexturePath string
	Bones       []VertexBoneData
}

// NewIVPNTRigged builds an IVPNTRigged.
func NewIVPNTRigged(indices []uint32, positions, normals []math.Vec3, texCoords []math.Vec2, texture string,
	bones []VertexBoneData, opts ...Option) (*IVPNTRigged, error) {
	m := &IVPNTRigged{
		Base:        newBase(indices, positions, opts),
		Normals:     normals,
		TexCoords:   texCoords,
		TexturePath: texture,
		Bones:       bones,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the index and attribute invariants.
func (m *IVPNTRigged) Validate() error {
	return errors.Join(
		m.Base.Validate(),
		checkLen("normals", len(m.Normals), m.VertexCount()),
		checkLen("texture coordinates", len(m.TexCoords), m.VertexCount()),
		checkLen("bone data", len(m.Bones), m.VertexCount()),
	)
}

func (m *IVPNTRigged) String() string {
	return fmt.Sprintf("IVPNTRigged(%s, normals=%d, texcoords=%d, bones=%d, texture=%q)",
		m.Base.String(), len(m.Normals), len(m.TexCoords), len(m.Bones), m.TexturePath)
}

// IVPNTPRigged is a skinned, lit, atlas-packed mesh.
type IVPNTPRigged struct {
	Base
	Normals []math.Vec3
	Atlas
	Bones []VertexBoneData
}

// NewIVPNTPRigged builds an IVPNTPRigged.
func NewIVPNTPRigged(indices []uint32, positions, normals []math.Vec3, atlas Atlas, bones []VertexBoneData,
	opts ...Option) (*IVPNTPRigged, error) {
	m := &IVPNTPRigged{
		Base:    newBase(indices, positions, opts),
		Normals: normals,
		Atlas:   atlas,
		Bones:   bones,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the index and attribute invariants.
func (m *IVPNTPRigged) Validate() error {
	return errors.Join(
		m.Base.Validate(),
		checkLen("normals", len(m.Normals), m.VertexCount()),
		m.Atlas.check(m.VertexCount()),
		checkLen("bone data", len(m.Bones), m.VertexCount()),
	)
}

func (m *IVPNTPRigged) String() string {
	return fmt.Sprintf("IVPNTPRigged(%s, normals=%d, bones=%d, %s)",
		m.Base.String(), len(m.Normals), len(m.Bones), m.Atlas.summary())
}

// cloneBase deep-copies b with a fresh tracker.
func cloneBase(b *Base) Base {
	return Base{
		ID:        b.ID,
		Name:      b.Name,
		Indices:   slices.Clone(b.Indices),
		Positions: slices.Clone(b.Positions),
		Arity:     b.Arity,
		Transform: b.Transform,
	}
}

func uniform(c math.Vec3, n int) []math.Vec3 {
	out := make([]math.Vec3, n)
	for i := range out {
		out[i] = c
	}
	return out
}
