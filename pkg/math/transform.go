package math

import "fmt"

// Transform stages translation, rotation and scale edits that have not yet
// been applied to vertex data. The zero value is not the identity; use
// NewTransform.
type Transform struct {
	Translation Vec3
	Rotation    Quat
	Scale       Vec3
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{Rotation: QuatIdentity(), Scale: Vec3One()}
}

// Translate adds d to the pending translation.
func (t *Transform) Translate(d Vec3) {
	t.Translation = t.Translation.Add(d)
}

// Rotate composes q after the pending rotation.
func (t *Transform) Rotate(q Quat) {
	t.Rotation = q.Mul(t.Rotation).Normalize()
}

// SetScale replaces the pending scale.
func (t *Transform) SetScale(s Vec3) {
	t.Scale = s
}

// ScaleBy multiplies the pending scale component-wise.
func (t *Transform) ScaleBy(s Vec3) {
	t.Scale = t.Scale.Mul(s)
}

// TranslationMatrix returns the pending translation as a matrix.
func (t Transform) TranslationMatrix() Mat4 { return Translate(t.Translation) }

// RotationMatrix returns the pending rotation as a matrix.
func (t Transform) RotationMatrix() Mat4 { return t.Rotation.ToMat4() }

// ScaleMatrix returns the pending scale as a matrix.
func (t Transform) ScaleMatrix() Mat4 { return Scale(t.Scale) }

// Matrix returns T * R * S: points are scaled, then rotated, then translated.
func (t Transform) Matrix() Mat4 {
	return t.TranslationMatrix().Mul(t.RotationMatrix()).Mul(t.ScaleMatrix())
}

// ResetTranslation clears the pending translation.
func (t *Transform) ResetTranslation() { t.Translation = Vec3Zero() }

// ResetRotation clears the pending rotation.
func (t *Transform) ResetRotation() { t.Rotation = QuatIdentity() }

// ResetScale clears the pending scale.
func (t *Transform) ResetScale() { t.Scale = Vec3One() }

// Reset clears every pending component.
func (t *Transform) Reset() { *t = NewTransform() }

// IsIdentity reports whether nothing is pending.
func (t Transform) IsIdentity() bool {
	return t.Translation == Vec3Zero() && t.Rotation.IsIdentity() && t.Scale == Vec3One()
}

func (t Transform) String() string {
	return fmt.Sprintf("Transform{translation=%v, rotation=%v, scale=%v}", t.Translation, t.Rotation, t.Scale)
}
