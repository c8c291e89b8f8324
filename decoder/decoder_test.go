package decoder

import (
	"os"
	"testing"
)

func TestDecodeMeshFile(t *testing.T) {
	data, err := os.ReadFile("testdata/test_nm.obj.edgebreaker.cl4.2.2.drc")
	if err != nil {
		t.Fatalf("failed to read test file: %v", err)
	}

	g, err := DecodeMesh(data)
	if err != nil {
		t.Fatalf("DecodeMesh: %v", err)
	}

	if g.VertexCount != 99 {
		t.Errorf("VertexCount=%d; expected 99", g.VertexCount)
	}
	if len(g.Indices) != 3*170 {
		t.Errorf("len(Indices)=%d; expected %d (3 per face)", len(g.Indices), 3*170)
	}
	if g.Indices[0] != 0 || g.Indices[1] != 1 || g.Indices[2] != 2 {
		t.Errorf("first face %v; expected [0 1 2]", g.Indices[:3])
	}
	for i, index := range g.Indices {
		if index >= uint32(g.VertexCount) {
			t.Fatalf("index %d at %d out of vertex range", index, i)
		}
	}

	if len(g.Attributes) != 2 {
		t.Fatalf("len(Attributes)=%d; expected 2", len(g.Attributes))
	}
	for _, id := range []uint32{0, 1} {
		attr := g.Attribute(id)
		if attr == nil {
			t.Fatalf("attribute with unique id %d not found", id)
		}
		if attr.DataType != DTFloat32 || attr.Components != 3 {
			t.Errorf("attribute %d: got %s vec%d; expected float32 vec3",
				id, attr.DataType, attr.Components)
		}
		if attr.Count() != g.VertexCount {
			t.Errorf("attribute %d covers %d vertices; expected %d",
				id, attr.Count(), g.VertexCount)
		}
		if v := attr.Vec3f(); len(v) != g.VertexCount {
			t.Errorf("attribute %d: %d vec3 values; expected %d", id, len(v), g.VertexCount)
		}
	}
}

func TestDecodeMeshGarbage(t *testing.T) {
	if _, err := DecodeMesh([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for garbage input")
	}
}
