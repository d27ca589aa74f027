package drawinfo

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/drawinfo/pkg/math"
)

func TestVertexBoneDataZeroValue(t *testing.T) {
	var v VertexBoneData
	if v.Count() != 0 || v.WeightSum() != 0 {
		t.Errorf("zero value should be empty: %+v", v)
	}
}

func TestAddFillsInOrder(t *testing.T) {
	var v VertexBoneData
	influences := []struct {
		bone   uint32
		weight float32
	}{{7, 0.4}, {2, 0.3}, {9, 0.2}, {4, 0.1}}

	for _, inf := range influences {
		if !v.Add(inf.bone, inf.weight) {
			t.Fatalf("Add(%d, %v) should fit", inf.bone, inf.weight)
		}
	}
	for i, inf := range influences {
		if v.BoneIDs[i] != inf.bone || v.Weights[i] != inf.weight {
			t.Errorf("slot %d: got (%d, %v), want (%d, %v)", i, v.BoneIDs[i], v.Weights[i], inf.bone, inf.weight)
		}
	}
	if v.Count() != 4 {
		t.Errorf("Count: got %d, want 4", v.Count())
	}
}

func TestAddFifthIsDropped(t *testing.T) {
	var v VertexBoneData
	for i := uint32(0); i < MaxBoneInfluences; i++ {
		v.Add(i, 0.25)
	}
	full := v

	if v.Add(99, 0.9) {
		t.Error("fifth influence should be rejected")
	}
	if v != full {
		t.Errorf("record changed after overflow: %+v vs %+v", v, full)
	}
}

func TestAddZeroWeightLeavesSlotOpen(t *testing.T) {
	var v VertexBoneData
	v.Add(5, 0)
	v.Add(6, 0.5)
	if v.BoneIDs[0] != 6 || v.Weights[0] != 0.5 {
		t.Errorf("zero-weight slot should be reused: %+v", v)
	}
}

func TestAddOverflowIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	var v VertexBoneData
	for i := uint32(0); i < MaxBoneInfluences+1; i++ {
		v.Add(i, 0.2)
	}

	entries := logs.FilterMessage("bone influence dropped, vertex is full").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 drop log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["bone"]; got != uint32(4) {
		t.Errorf("logged bone: got %v, want 4", got)
	}
}

func TestBuildBoneData(t *testing.T) {
	influences := []Influence{
		{Vertex: 0, Bone: 1, Weight: 1},
		{Vertex: 1, Bone: 1, Weight: 0.5},
		{Vertex: 1, Bone: 2, Weight: 0.5},
	}
	for b := uint32(0); b < 5; b++ {
		influences = append(influences, Influence{Vertex: 2, Bone: b, Weight: 0.2})
	}

	data, dropped, err := BuildBoneData(3, influences)
	if err != nil {
		t.Fatalf("BuildBoneData: %v", err)
	}
	if len(data) != 3 {
		t.Fatalf("got %d records, want 3", len(data))
	}
	if dropped != 1 {
		t.Errorf("dropped: got %d, want 1", dropped)
	}
	if data[1].Count() != 2 || data[1].WeightSum() != 1 {
		t.Errorf("vertex 1: %+v", data[1])
	}
	if data[2].BoneIDs != [4]uint32{0, 1, 2, 3} {
		t.Errorf("vertex 2 ids: %v, first four in input order expected", data[2].BoneIDs)
	}
}

func TestBuildBoneDataOutOfRange(t *testing.T) {
	_, _, err := BuildBoneData(2, []Influence{{Vertex: 2, Bone: 0, Weight: 1}})
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got %v, want ErrIndexOutOfRange", err)
	}
}

func TestNewBoneInfo(t *testing.T) {
	bind := math.Translate(math.Vec3{Y: 2})
	info := NewBoneInfoFromBindPose(bind)

	// The inverse bind pose brings the joint back to the origin
	if got := info.InverseBindPose.TransformPoint(math.Vec3{Y: 2}); !got.NearlyEqual(math.Vec3Zero(), eps) {
		t.Errorf("inverse bind pose of joint: got %v", got)
	}
	if info.Animated != (math.Mat4{}) {
		t.Error("animated transform should start zeroed")
	}
}
