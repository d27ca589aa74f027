// Package drawinfo holds CPU-side representations of geometry that will
// eventually be uploaded to the GPU.
//
// Every shader needs some host-memory copy of its vertex attributes before
// they can be piped into a buffer. The types here are those copies, one per
// attribute set: positions only, colored, lit, textured, atlas-packed and
// skinned. Each carries a pending Transform that can be baked into its raw
// positions, and a Tracker that tells an uploader when the GPU copy has
// gone stale.
//
// Nothing here is synchronized. A single mesh must be mutated by one
// goroutine at a time; distinct meshes share no state.
package drawinfo

import (
	"errors"
	"fmt"

	"github.com/Faultbox/drawinfo/pkg/math"
	"github.com/Faultbox/drawinfo/pkg/uid"
)

// NoID marks a mesh whose id was never assigned.
const NoID = -1

// DefaultArity is the number of indices per primitive (triangles).
const DefaultArity = 3

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrIndexArity      = errors.New("index count is not a multiple of the primitive arity")
	ErrAttributeLength = errors.New("attribute length does not match vertex count")
)

// Mesh is implemented by every variant. The returned Base is the live
// record, not a copy.
type Mesh interface {
	MeshBase() *Base
}

// Base is the attribute core shared by all variants.
type Base struct {
	// ID is the handle other systems use to refer back to this mesh.
	// Uniqueness holds only for ids drawn from a uid.Allocator.
	ID int
	// Name is optional and not unique. Importers use it to pass per-mesh
	// hints through.
	Name string

	Indices   []uint32
	Positions []math.Vec3
	// Arity is the number of indices per primitive.
	Arity int

	// Transform holds edits not yet baked into Positions.
	Transform math.Transform
	Tracker   Tracker
}

// MeshBase implements Mesh.
func (b *Base) MeshBase() *Base { return b }

// VertexCount returns the number of positions.
func (b *Base) VertexCount() int { return len(b.Positions) }

// Validate checks the index invariants.
func (b *Base) Validate() error {
	if b.Arity <= 0 {
		return fmt.Errorf("%w: arity %d", ErrIndexArity, b.Arity)
	}
	if len(b.Indices)%b.Arity != 0 {
		return fmt.Errorf("%w: %d indices, arity %d", ErrIndexArity, len(b.Indices), b.Arity)
	}
	n := uint32(len(b.Positions))
	for i, idx := range b.Indices {
		if idx >= n {
			return fmt.Errorf("%w: indices[%d] = %d, %d vertices", ErrIndexOutOfRange, i, idx, n)
		}
	}
	return nil
}

func (b *Base) String() string {
	return fmt.Sprintf("indices=%d, positions=%d, transform=%v", len(b.Indices), len(b.Positions), b.Transform)
}

// Option configures the Base of a new mesh.
type Option func(*Base)

// WithID sets a caller-supplied id. It is not checked for uniqueness.
func WithID(id int) Option {
	return func(b *Base) { b.ID = id }
}

// WithName sets the mesh name.
func WithName(name string) Option {
	return func(b *Base) { b.Name = name }
}

// WithAllocator draws the id from a.
func WithAllocator(a *uid.Allocator) Option {
	return func(b *Base) { b.ID = a.Next() }
}

// WithArity sets the number of indices per primitive.
func WithArity(n int) Option {
	return func(b *Base) { b.Arity = n }
}

// newBase takes ownership of indices and positions.
func newBase(indices []uint32, positions []math.Vec3, opts []Option) Base {
	b := Base{
		ID:        NoID,
		Indices:   indices,
		Positions: positions,
		Arity:     DefaultArity,
		Transform: math.NewTransform(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func checkLen(attr string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrAttributeLength, attr, got, want)
	}
	return nil
}

// Bounds returns the axis-aligned box around m's positions. ok is false for
// a mesh without positions.
func Bounds(m Mesh) (lo, hi math.Vec3, ok bool) {
	ps := m.MeshBase().Positions
	if len(ps) == 0 {
		return lo, hi, false
	}
	lo, hi = ps[0], ps[0]
	for _, p := range ps[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi, true
}
