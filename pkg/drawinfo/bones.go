package drawinfo

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/drawinfo/pkg/math"
)

// MaxBoneInfluences is the number of bones that may affect one vertex.
// Shaders consuming VertexBoneData expect exactly this width.
const MaxBoneInfluences = 4

// VertexBoneData is the bone influence set of one vertex. Ids index an
// external bone table; filled weights nominally sum to 1. A slot is empty
// while its weight is exactly zero.
type VertexBoneData struct {
	BoneIDs [MaxBoneInfluences]uint32
	Weights [MaxBoneInfluences]float32
}

// Add stores the influence in the first empty slot. When every slot is
// taken the influence is dropped and Add returns false. Remaining weights
// are not renormalized.
func (v *VertexBoneData) Add(boneID uint32, weight float32) bool {
	for i := range v.Weights {
		if v.Weights[i] == 0 {
			v.BoneIDs[i] = boneID
			v.Weights[i] = weight
			return true
		}
	}
	log.Debug("bone influence dropped, vertex is full",
		zap.Uint32("bone", boneID),
		zap.Float32("weight", weight))
	return false
}

// Count returns the number of filled slots.
func (v *VertexBoneData) Count() int {
	n := 0
	for _, w := range v.Weights {
		if w != 0 {
			n++
		}
	}
	return n
}

// WeightSum returns the sum of all weights.
func (v *VertexBoneData) WeightSum() float32 {
	var sum float32
	for _, w := range v.Weights {
		sum += w
	}
	return sum
}

// Influence is one (vertex, bone, weight) triple as an importer sees it.
type Influence struct {
	Vertex int
	Bone   uint32
	Weight float32
}

// BuildBoneData accumulates influences, in order, into one record per
// vertex. It returns how many influences were dropped for lack of slots.
func BuildBoneData(vertexCount int, influences []Influence) ([]VertexBoneData, int, error) {
	data := make([]VertexBoneData, vertexCount)
	dropped := 0
	for i, inf := range influences {
		if inf.Vertex < 0 || inf.Vertex >= vertexCount {
			return nil, 0, fmt.Errorf("%w: influence %d targets vertex %d, %d vertices",
				ErrIndexOutOfRange, i, inf.Vertex, vertexCount)
		}
		if !data[inf.Vertex].Add(inf.Bone, inf.Weight) {
			dropped++
		}
	}
	if dropped > 0 {
		log.Debug("bone influences exceeded capacity",
			zap.Int("dropped", dropped),
			zap.Int("influences", len(influences)))
	}
	return data, dropped, nil
}

// BoneInfo is the per-bone transform pair a skeletal evaluator needs.
// Bones have no existence beyond this and the vertex to bone mapping.
type BoneInfo struct {
	// InverseBindPose takes a vertex from mesh space into the bone's space
	// at rest, bringing the bone joint back to the origin.
	InverseBindPose math.Mat4
	// Animated moves a vertex from mesh space to its animated position in
	// mesh space. It is filled in during pose evaluation.
	Animated math.Mat4
}

// NewBoneInfo returns a BoneInfo with a zero animated transform.
func NewBoneInfo(inverseBindPose math.Mat4) BoneInfo {
	return BoneInfo{InverseBindPose: inverseBindPose}
}

// NewBoneInfoFromBindPose inverts a bind-pose matrix.
func NewBoneInfoFromBindPose(bindPose math.Mat4) BoneInfo {
	return NewBoneInfo(bindPose.Inverse())
}
