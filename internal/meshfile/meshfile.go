// Package meshfile reads and writes the YAML mesh documents used by meshtool.
package meshfile

import (
	"errors"
	"fmt"
	"io"
	stdmath "math"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/drawinfo/pkg/drawinfo"
	"github.com/Faultbox/drawinfo/pkg/math"
)

// Document errors.
var (
	ErrNoPositions     = errors.New("document has no positions")
	ErrMixedAttributes = errors.New("no mesh variant carries both colors and texture coordinates")
	ErrUnsupportedMesh = errors.New("unsupported mesh type")
)

// Vec3 is a position, normal or color written as a flow sequence.
type Vec3 [3]float32

// Vec2 is a texture coordinate written as a flow sequence.
type Vec2 [2]float32

// Rotation is an axis and an angle in degrees.
type Rotation struct {
	Axis  Vec3    `yaml:"axis"`
	Angle float32 `yaml:"angle"`
}

// Document is the on-disk form of a single mesh.
type Document struct {
	Name      string   `yaml:"name,omitempty"`
	ID        *int     `yaml:"id,omitempty"`
	Arity     int      `yaml:"arity,omitempty"`
	Indices   []uint32 `yaml:"indices,flow"`
	Positions []Vec3   `yaml:"positions"`
	Colors    []Vec3   `yaml:"colors,omitempty"`
	Normals   []Vec3   `yaml:"normals,omitempty"`
	TexCoords []Vec2   `yaml:"texcoords,omitempty"`
	Texture   string   `yaml:"texture,omitempty"`

	// Pending transform, applied in scale, rotation, translation order.
	Translation *Vec3     `yaml:"translation,omitempty"`
	Rotation    *Rotation `yaml:"rotation,omitempty"`
	Scale       *Vec3     `yaml:"scale,omitempty"`
}

// MarshalYAML writes the vector on a single line.
func (v Vec3) MarshalYAML() (any, error) { return flowNode(v[:]), nil }

// MarshalYAML writes the coordinate on a single line.
func (v Vec2) MarshalYAML() (any, error) { return flowNode(v[:]), nil }

func flowNode(vals []float32) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range vals {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(float64(v), 'g', -1, 32),
		})
	}
	return n
}

// Decode reads a document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding mesh document: %w", err)
	}
	if len(doc.Positions) == 0 {
		return nil, ErrNoPositions
	}
	return &doc, nil
}

// Load reads a document from a file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Mesh builds the narrowest variant that holds every attribute present in
// the document. Name, id and arity set in the document override opts.
func (d *Document) Mesh(opts ...drawinfo.Option) (drawinfo.Mesh, error) {
	if len(d.Colors) > 0 && len(d.TexCoords) > 0 {
		return nil, ErrMixedAttributes
	}

	opts = append(slices.Clone(opts), d.options()...)
	indices := append([]uint32(nil), d.Indices...)
	positions := vec3s(d.Positions)

	var (
		m   drawinfo.Mesh
		err error
	)
	switch {
	case len(d.TexCoords) > 0 && len(d.Normals) > 0:
		m, err = drawinfo.NewIVPNTextured(indices, positions, vec3s(d.Normals), vec2s(d.TexCoords), d.Texture, opts...)
	case len(d.TexCoords) > 0:
		m, err = drawinfo.NewIVPTextured(indices, positions, vec2s(d.TexCoords), d.Texture, opts...)
	case len(d.Normals) > 0 && len(d.Colors) > 0:
		m, err = drawinfo.NewIVPNColor(indices, positions, vec3s(d.Normals), vec3s(d.Colors), opts...)
	case len(d.Normals) > 0:
		m, err = drawinfo.NewIVPNormals(indices, positions, vec3s(d.Normals), opts...)
	case len(d.Colors) > 0:
		m, err = drawinfo.NewIVPColor(indices, positions, vec3s(d.Colors), opts...)
	default:
		m, err = drawinfo.NewIVP(indices, positions, opts...)
	}
	if err != nil {
		return nil, err
	}

	d.applyTransform(&m.MeshBase().Transform)
	return m, nil
}

func (d *Document) options() []drawinfo.Option {
	var opts []drawinfo.Option
	if d.Name != "" {
		opts = append(opts, drawinfo.WithName(d.Name))
	}
	if d.ID != nil {
		opts = append(opts, drawinfo.WithID(*d.ID))
	}
	if d.Arity > 0 {
		opts = append(opts, drawinfo.WithArity(d.Arity))
	}
	return opts
}

func (d *Document) applyTransform(t *math.Transform) {
	if d.Scale != nil {
		t.SetScale(d.Scale.vec())
	}
	if d.Rotation != nil {
		rad := float32(float64(d.Rotation.Angle) * stdmath.Pi / 180)
		t.Rotate(math.QuatFromAxisAngle(d.Rotation.Axis.vec(), rad))
	}
	if d.Translation != nil {
		t.Translate(d.Translation.vec())
	}
}

// Encode writes m as a document. Packed meshes are written with their
// original texture coordinates; bone data is not written.
func Encode(w io.Writer, m drawinfo.Mesh) error {
	doc, err := FromMesh(m)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding mesh document: %w", err)
	}
	return enc.Close()
}

// FromMesh converts m into a document.
func FromMesh(m drawinfo.Mesh) (*Document, error) {
	b := m.MeshBase()
	doc := &Document{
		Name:      b.Name,
		Indices:   append([]uint32(nil), b.Indices...),
		Positions: docVec3s(b.Positions),
	}
	if b.ID != drawinfo.NoID {
		id := b.ID
		doc.ID = &id
	}
	if b.Arity != drawinfo.DefaultArity {
		doc.Arity = b.Arity
	}

	switch v := m.(type) {
	case *drawinfo.IVP:
	case *drawinfo.IVPColor:
		doc.Colors = docVec3s(v.Colors)
	case *drawinfo.IVPNormals:
		doc.Normals = docVec3s(v.Normals)
	case *drawinfo.IVPNColor:
		doc.Normals = docVec3s(v.Normals)
		doc.Colors = docVec3s(v.Colors)
	case *drawinfo.IVPTextured:
		doc.TexCoords, doc.Texture = docVec2s(v.TexCoords), v.TexturePath
	case *drawinfo.IVPNTextured:
		doc.Normals = docVec3s(v.Normals)
		doc.TexCoords, doc.Texture = docVec2s(v.TexCoords), v.TexturePath
	case *drawinfo.IVPTexturePacked:
		doc.TexCoords, doc.Texture = docVec2s(v.OriginalTexCoords), v.Atlas.TexturePath
	case *drawinfo.IVPNTexturePacked:
		doc.Normals = docVec3s(v.Normals)
		doc.TexCoords, doc.Texture = docVec2s(v.OriginalTexCoords), v.Atlas.TexturePath
	case *drawinfo.IVPNTRigged:
		doc.Normals = docVec3s(v.Normals)
		doc.TexCoords, doc.Texture = docVec2s(v.TexCoords), v.TexturePath
	case *drawinfo.IVPNTPRigged:
		doc.Normals = docVec3s(v.Normals)
		doc.TexCoords, doc.Texture = docVec2s(v.OriginalTexCoords), v.Atlas.TexturePath
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedMesh, m)
	}

	t := b.Transform
	if t.Scale != math.Vec3One() {
		s := docVec3(t.Scale)
		doc.Scale = &s
	}
	if !t.Rotation.IsIdentity() {
		axis, rad := t.Rotation.AxisAngle()
		doc.Rotation = &Rotation{
			Axis:  docVec3(axis),
			Angle: float32(float64(rad) * 180 / stdmath.Pi),
		}
	}
	if t.Translation != math.Vec3Zero() {
		tr := docVec3(t.Translation)
		doc.Translation = &tr
	}
	return doc, nil
}

func (v Vec3) vec() math.Vec3 { return math.Vec3{X: v[0], Y: v[1], Z: v[2]} }

func docVec3(v math.Vec3) Vec3 { return Vec3{v.X, v.Y, v.Z} }

func vec3s(vs []Vec3) []math.Vec3 {
	out := make([]math.Vec3, len(vs))
	for i, v := range vs {
		out[i] = v.vec()
	}
	return out
}

func vec2s(vs []Vec2) []math.Vec2 {
	out := make([]math.Vec2, len(vs))
	for i, v := range vs {
		out[i] = math.Vec2{X: v[0], Y: v[1]}
	}
	return out
}

func docVec3s(vs []math.Vec3) []Vec3 {
	if len(vs) == 0 {
		return nil
	}
	out := make([]Vec3, len(vs))
	for i, v := range vs {
		out[i] = docVec3(v)
	}
	return out
}

func docVec2s(vs []math.Vec2) []Vec2 {
	if len(vs) == 0 {
		return nil
	}
	out := make([]Vec2, len(vs))
	for i, v := range vs {
		out[i] = Vec2{v.X, v.Y}
	}
	return out
}
