package drawinfo

import "slices"

// ExtractIVP copies the attribute core of any mesh into a standalone IVP,
// including its id, name and pending transform. The result is a new GPU
// object and starts Unbuffered.
func ExtractIVP(m Mesh) *IVP {
	b := m.MeshBase()
	return &IVP{Base: Base{
		ID:        b.ID,
		Name:      b.Name,
		Indices:   slices.Clone(b.Indices),
		Positions: slices.Clone(b.Positions),
		Arity:     b.Arity,
		Transform: b.Transform,
	}}
}

// ExtractIVPs applies ExtractIVP to each mesh.
func ExtractIVPs[M Mesh](meshes []M) []*IVP {
	out := make([]*IVP, 0, len(meshes))
	for _, m := range meshes {
		out = append(out, ExtractIVP(m))
	}
	return out
}
