package gltfdraco

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/Niki123456123456/gltfdraco/ext/dracomesh"
)

func testDocument() *gltf.Document {
	return &gltf.Document{
		Buffers: []*gltf.Buffer{
			{ByteLength: 16, Data: make([]byte, 16)},
		},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 4, ByteLength: 8},
		},
		Accessors: []*gltf.Accessor{
			{ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3, Count: 3},
			{ComponentType: gltf.ComponentUshort, Type: gltf.AccessorScalar, Count: 3},
		},
	}
}

func testPrimitive() *gltf.Primitive {
	return &gltf.Primitive{
		Mode: gltf.PrimitiveTriangles,
		Attributes: map[string]uint32{
			"POSITION": 0,
		},
		Indices: gltf.Index(1),
		Extensions: gltf.Extensions{
			dracomesh.ExtensionName: &dracomesh.Extension{
				BufferView: 0,
				Attributes: map[string]uint32{"POSITION": 0},
			},
		},
	}
}

func TestExtensionMissing(t *testing.T) {
	prim := &gltf.Primitive{Extensions: gltf.Extensions{}}
	if IsCompressed(prim) {
		t.Error("IsCompressed without extension")
	}
	if _, err := Extension(prim); err != ErrNotCompressed {
		t.Errorf("expected ErrNotCompressed, got %v", err)
	}
}

func TestExtensionRawMessage(t *testing.T) {
	prim := &gltf.Primitive{Extensions: gltf.Extensions{
		dracomesh.ExtensionName: json.RawMessage(`{"bufferView":2,"attributes":{"NORMAL":1}}`),
	}}
	ext, err := Extension(prim)
	if err != nil {
		t.Fatalf("Extension: %v", err)
	}
	if ext.BufferView != 2 || ext.Attributes["NORMAL"] != 1 {
		t.Errorf("unexpected extension value: %+v", ext)
	}
}

func TestExtensionMalformed(t *testing.T) {
	prim := &gltf.Primitive{Extensions: gltf.Extensions{
		dracomesh.ExtensionName: json.RawMessage(`{"bufferView":"zero"}`),
	}}
	if _, err := Extension(prim); err == nil {
		t.Error("expected error for malformed extension json")
	}
}

func TestCompressedData(t *testing.T) {
	doc := testDocument()
	for i := range doc.Buffers[0].Data {
		doc.Buffers[0].Data[i] = byte(i)
	}

	data, err := CompressedData(doc, &dracomesh.Extension{BufferView: 0})
	if err != nil {
		t.Fatalf("CompressedData: %v", err)
	}
	if len(data) != 8 || data[0] != 4 || data[7] != 11 {
		t.Errorf("wrong slice: len=%d data=%v", len(data), data)
	}
}

func TestCompressedDataErrors(t *testing.T) {
	doc := testDocument()

	if _, err := CompressedData(doc, &dracomesh.Extension{BufferView: 5}); err == nil {
		t.Error("expected error for unknown bufferView")
	}

	doc.BufferViews[0].Buffer = 3
	if _, err := CompressedData(doc, &dracomesh.Extension{BufferView: 0}); err == nil {
		t.Error("expected error for unknown buffer")
	}

	doc.BufferViews[0].Buffer = 0
	doc.BufferViews[0].ByteLength = 100
	if _, err := CompressedData(doc, &dracomesh.Extension{BufferView: 0}); err == nil {
		t.Error("expected error for truncated buffer region")
	}
}

func TestDecodePrimitiveMode(t *testing.T) {
	prim := testPrimitive()
	prim.Mode = gltf.PrimitiveLines
	if _, err := DecodePrimitive(testDocument(), prim); err == nil {
		t.Error("expected error for non-TRIANGLES primitive")
	}
}

func TestDecodePrimitiveNotCompressed(t *testing.T) {
	prim := testPrimitive()
	delete(prim.Extensions, dracomesh.ExtensionName)
	if _, err := DecodePrimitive(testDocument(), prim); err != ErrNotCompressed {
		t.Errorf("expected ErrNotCompressed, got %v", err)
	}
}

func TestDecodePrimitiveMissingPosition(t *testing.T) {
	prim := testPrimitive()
	delete(prim.Attributes, "POSITION")
	_, err := DecodePrimitive(testDocument(), prim)
	if err == nil || !strings.Contains(err.Error(), "POSITION") {
		t.Errorf("expected missing POSITION error, got %v", err)
	}
}

func TestDecodePrimitiveMissingIndices(t *testing.T) {
	prim := testPrimitive()
	prim.Indices = nil
	_, err := DecodePrimitive(testDocument(), prim)
	if err == nil || !strings.Contains(err.Error(), "indices") {
		t.Errorf("expected missing indices error, got %v", err)
	}
}
