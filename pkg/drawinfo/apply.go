package drawinfo

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/drawinfo/pkg/math"
)

// The Apply functions bake a mesh's pending transform into its positions,
// reset what they consumed and mark the mesh modified. Baking is
// destructive: the previous positions are not kept. Normals are left as is.
//
// The tracker is marked modified even when the consumed component was
// already identity.

// ApplyTranslation adds the pending translation to every position.
func ApplyTranslation(m Mesh) {
	b := m.MeshBase()
	d := b.Transform.Translation
	for i := range b.Positions {
		b.Positions[i] = b.Positions[i].Add(d)
	}
	b.Transform.ResetTranslation()
	b.Tracker.MarkModified()
}

// ApplyRotation rotates every position by the pending rotation.
func ApplyRotation(m Mesh) {
	b := m.MeshBase()
	transformPositions(b.Positions, b.Transform.RotationMatrix())
	b.Transform.ResetRotation()
	b.Tracker.MarkModified()
}

// ApplyScale multiplies every position component-wise by the pending scale.
func ApplyScale(m Mesh) {
	b := m.MeshBase()
	s := b.Transform.Scale
	for i := range b.Positions {
		b.Positions[i] = b.Positions[i].Mul(s)
	}
	b.Transform.ResetScale()
	b.Tracker.MarkModified()
}

// ApplyTransform applies the composed matrix (scale, then rotation, then
// translation) and resets the whole transform.
func ApplyTransform(m Mesh) {
	b := m.MeshBase()
	transformPositions(b.Positions, b.Transform.Matrix())
	b.Transform.Reset()
	b.Tracker.MarkModified()
}

// ApplyTransformAll runs ApplyTransform over meshes with up to workers
// goroutines (unbounded when workers <= 0). Each mesh must appear once.
// Meshes not yet started when ctx is cancelled are skipped.
func ApplyTransformAll(ctx context.Context, meshes []Mesh, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, m := range meshes {
		m := m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ApplyTransform(m)
			return nil
		})
	}
	return g.Wait()
}

func transformPositions(ps []math.Vec3, mat math.Mat4) {
	for i := range ps {
		ps[i] = mat.TransformPoint(ps[i])
	}
}
