package drawinfo

import (
	"github.com/Faultbox/drawinfo/pkg/math"
	"github.com/Faultbox/drawinfo/pkg/uid"
)

// Group holds meshes that move together as one logical object while keeping
// individually addressable geometry. Members may still carry their own
// pending transforms.
type Group[M Mesh] struct {
	ID        int
	Members   []M
	Transform math.Transform
}

// Group shapes used by scene code.
type (
	IVPGroup     = Group[*IVP]
	IVPTPGroup   = Group[*IVPTexturePacked]
	IVPNTPRGroup = Group[*IVPNTPRigged]
)

// NewGroup returns a group with an identity transform.
func NewGroup[M Mesh](id int, members ...M) *Group[M] {
	return &Group[M]{ID: id, Members: members, Transform: math.NewTransform()}
}

// RegenerateIDs gives the group a fresh id from groupIDs and every member,
// in order, a fresh id from memberIDs. Used after duplicating a group so
// the copy does not collide with the original in id-keyed tables.
func (g *Group[M]) RegenerateIDs(groupIDs, memberIDs *uid.Allocator) {
	g.ID = groupIDs.Next()
	for _, m := range g.Members {
		m.MeshBase().ID = memberIDs.Next()
	}
}

// ApplyGroupTransform bakes each member's pending transform and then the
// outer transform into the member's positions. Both are reset.
func (g *Group[M]) ApplyGroupTransform() {
	outer := g.Transform.Matrix()
	for _, m := range g.Members {
		b := m.MeshBase()
		transformPositions(b.Positions, outer.Mul(b.Transform.Matrix()))
		b.Transform.Reset()
		b.Tracker.MarkModified()
	}
	g.Transform.Reset()
}

// Meshes returns the members as generic meshes.
func (g *Group[M]) Meshes() []Mesh {
	out := make([]Mesh, len(g.Members))
	for i, m := range g.Members {
		out[i] = m
	}
	return out
}
