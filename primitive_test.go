package gltfdraco

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Niki123456123456/gltfdraco/decoder"
)

func packF32(values ...float32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func packU16(values ...uint16) []byte {
	out := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out
}

func TestFillPositions(t *testing.T) {
	p := newPrimitive()
	attr := &decoder.Attribute{
		Components: 3,
		DataType:   decoder.DTFloat32,
		Data:       packF32(1, 2, 3, 4, 5, 6),
	}
	if err := p.fill(Semantic{Kind: SemanticPosition}, attr); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if len(p.Positions) != 2 || p.Positions[1] != [3]float32{4, 5, 6} {
		t.Errorf("wrong positions: %v", p.Positions)
	}
}

func TestFillPositionsWrongType(t *testing.T) {
	p := newPrimitive()
	attr := &decoder.Attribute{Components: 3, DataType: decoder.DTUint16, Data: packU16(1, 2, 3)}
	if err := p.fill(Semantic{Kind: SemanticPosition}, attr); err == nil {
		t.Error("expected error for non-float POSITION")
	}
}

func TestFillTexCoordWrongComponents(t *testing.T) {
	p := newPrimitive()
	attr := &decoder.Attribute{Components: 3, DataType: decoder.DTFloat32, Data: packF32(0, 0, 0)}
	if err := p.fill(Semantic{Kind: SemanticTexCoord}, attr); err == nil {
		t.Error("expected error for vec3 TEXCOORD")
	}
}

func TestFillColorsNormalizedU8(t *testing.T) {
	p := newPrimitive()
	attr := &decoder.Attribute{
		Components: 4,
		DataType:   decoder.DTUint8,
		Data:       []byte{0, 51, 102, 255},
	}
	if err := p.fill(Semantic{Kind: SemanticColor, Set: 0}, attr); err != nil {
		t.Fatalf("fill: %v", err)
	}
	colors := p.Colors[0]
	if len(colors) != 1 {
		t.Fatalf("expected 1 color, got %d", len(colors))
	}
	want := [4]float32{0, 51.0 / 255.0, 102.0 / 255.0, 1}
	for i := range want {
		if d := colors[0][i] - want[i]; d > 1e-6 || d < -1e-6 {
			t.Errorf("color[%d]=%v; expected %v", i, colors[0][i], want[i])
		}
	}
}

func TestFillColorsVec3Padded(t *testing.T) {
	p := newPrimitive()
	attr := &decoder.Attribute{
		Components: 3,
		DataType:   decoder.DTFloat32,
		Data:       packF32(0.5, 0.25, 0.125),
	}
	if err := p.fill(Semantic{Kind: SemanticColor, Set: 1}, attr); err != nil {
		t.Fatalf("fill: %v", err)
	}
	colors := p.Colors[1]
	if len(colors) != 1 || colors[0] != [4]float32{0.5, 0.25, 0.125, 1} {
		t.Errorf("wrong colors: %v", colors)
	}
}

func TestFillJointsWidened(t *testing.T) {
	p := newPrimitive()
	attr := &decoder.Attribute{
		Components: 4,
		DataType:   decoder.DTUint8,
		Data:       []byte{1, 2, 3, 4, 250, 0, 0, 0},
	}
	if err := p.fill(Semantic{Kind: SemanticJoints, Set: 0}, attr); err != nil {
		t.Fatalf("fill: %v", err)
	}
	joints := p.Joints[0]
	if len(joints) != 2 || joints[0] != [4]uint16{1, 2, 3, 4} || joints[1] != [4]uint16{250, 0, 0, 0} {
		t.Errorf("wrong joints: %v", joints)
	}
}

func TestFillJointsU16(t *testing.T) {
	p := newPrimitive()
	attr := &decoder.Attribute{
		Components: 4,
		DataType:   decoder.DTUint16,
		Data:       packU16(300, 400, 0, 0),
	}
	if err := p.fill(Semantic{Kind: SemanticJoints, Set: 0}, attr); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if p.Joints[0][0] != [4]uint16{300, 400, 0, 0} {
		t.Errorf("wrong joints: %v", p.Joints[0])
	}
}

func TestFillWeightsNormalizedU16(t *testing.T) {
	p := newPrimitive()
	attr := &decoder.Attribute{
		Components: 4,
		DataType:   decoder.DTUint16,
		Data:       packU16(65535, 0, 32767, 0),
	}
	if err := p.fill(Semantic{Kind: SemanticWeights, Set: 0}, attr); err != nil {
		t.Fatalf("fill: %v", err)
	}
	weights := p.Weights[0]
	if len(weights) != 1 {
		t.Fatalf("expected 1 weight vec, got %d", len(weights))
	}
	if weights[0][0] != 1 || weights[0][1] != 0 {
		t.Errorf("wrong weights: %v", weights[0])
	}
	if d := weights[0][2] - 0.5; d > 1e-3 || d < -1e-3 {
		t.Errorf("weight[2]=%v; expected ~0.5", weights[0][2])
	}
}

func TestFillTangents(t *testing.T) {
	p := newPrimitive()
	attr := &decoder.Attribute{
		Components: 4,
		DataType:   decoder.DTFloat32,
		Data:       packF32(1, 0, 0, -1),
	}
	if err := p.fill(Semantic{Kind: SemanticTangent}, attr); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if len(p.Tangents) != 1 || p.Tangents[0] != [4]float32{1, 0, 0, -1} {
		t.Errorf("wrong tangents: %v", p.Tangents)
	}
}
