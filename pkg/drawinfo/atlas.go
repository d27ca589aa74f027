package drawinfo

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/drawinfo/pkg/math"
)

// ErrUnknownTexture is returned by AtlasLayout for a texture it does not place.
var ErrUnknownTexture = errors.New("texture not in atlas layout")

// Atlas holds the texture fields of a mesh whose texture was packed into a
// combined atlas image.
//
// OriginalTexCoords address the standalone texture and are kept for the life
// of the mesh, so PackedTexCoords can be regenerated whenever the atlas is
// repacked without reloading geometry.
type Atlas struct {
	OriginalTexCoords []math.Vec2
	PackedTexCoords   []math.Vec2
	// AtlasIndex selects the atlas image.
	AtlasIndex int
	// BoundingBoxIndex selects the sub-rectangle inside that atlas.
	BoundingBoxIndex int
	TexturePath      string
}

// AtlasFields gives access to the embedded atlas record.
func (a *Atlas) AtlasFields() *Atlas { return a }

func (a *Atlas) check(vertexCount int) error {
	return errors.Join(
		checkLen("original texture coordinates", len(a.OriginalTexCoords), vertexCount),
		checkLen("packed texture coordinates", len(a.PackedTexCoords), vertexCount),
	)
}

func (a *Atlas) summary() string {
	return fmt.Sprintf("original=%d, packed=%d, atlas=%d, box=%d, texture=%q",
		len(a.OriginalTexCoords), len(a.PackedTexCoords), a.AtlasIndex, a.BoundingBoxIndex, a.TexturePath)
}

// AtlasMesh is a mesh with atlas-packed texture coordinates.
type AtlasMesh interface {
	Mesh
	AtlasFields() *Atlas
}

// Repack installs packed coordinates produced by an external packer. It
// takes ownership of packed. Original coordinates, positions and indices
// are never touched. On a length mismatch m is left unchanged.
func Repack(m AtlasMesh, packed []math.Vec2, atlasIndex, bboxIndex int) error {
	b := m.MeshBase()
	if err := checkLen("packed texture coordinates", len(packed), b.VertexCount()); err != nil {
		return fmt.Errorf("repacking mesh %d: %w", b.ID, err)
	}

	a := m.AtlasFields()
	a.PackedTexCoords = packed
	a.AtlasIndex = atlasIndex
	a.BoundingBoxIndex = bboxIndex
	b.Tracker.MarkModified()
	return nil
}

// Packer maps original texture coordinates into an atlas.
type Packer interface {
	Pack(texturePath string, original []math.Vec2) (packed []math.Vec2, atlasIndex, bboxIndex int, err error)
}

// RepackAll regenerates packed coordinates for every mesh from its original
// coordinates. It stops at the first failure.
func RepackAll(p Packer, meshes ...AtlasMesh) error {
	for _, m := range meshes {
		a := m.AtlasFields()
		packed, atlasIndex, bboxIndex, err := p.Pack(a.TexturePath, a.OriginalTexCoords)
		if err != nil {
			return fmt.Errorf("packing %q for mesh %d: %w", a.TexturePath, m.MeshBase().ID, err)
		}
		if err := Repack(m, packed, atlasIndex, bboxIndex); err != nil {
			return err
		}
	}
	log.Debug("repacked atlas meshes", zap.Int("count", len(meshes)))
	return nil
}

// Placement is where one source texture landed inside an atlas, in the
// atlas's normalized coordinates.
type Placement struct {
	AtlasIndex       int
	BoundingBoxIndex int
	Min              math.Vec2
	Size             math.Vec2
}

// AtlasLayout implements Packer over placements computed elsewhere, keyed
// by texture path.
type AtlasLayout map[string]Placement

// Pack maps each coordinate to Min + uv*Size of the texture's placement.
func (l AtlasLayout) Pack(texturePath string, original []math.Vec2) ([]math.Vec2, int, int, error) {
	p, ok := l[texturePath]
	if !ok {
		return nil, 0, 0, fmt.Errorf("%w: %q", ErrUnknownTexture, texturePath)
	}
	packed := make([]math.Vec2, len(original))
	for i, uv := range original {
		packed[i] = p.Min.Add(uv.Mul(p.Size))
	}
	return packed, p.AtlasIndex, p.BoundingBoxIndex, nil
}
