// Package gltfdraco extracts KHR_draco_mesh_compression geometry from
// glTF documents into typed, semantically labeled vertex attributes.
//
// Bitstream decoding is delegated to github.com/qmuntal/draco-go; the
// package only locates the compressed buffer region referenced by a
// primitive's extension, invokes the decoder and remaps its output
// arrays onto glTF attribute semantics.
package gltfdraco

import (
	"encoding/json"
	"log"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/Niki123456123456/gltfdraco/decoder"
	"github.com/Niki123456123456/gltfdraco/ext/dracomesh"
)

// ErrNotCompressed reports a primitive without the
// KHR_draco_mesh_compression extension. Callers iterating over mixed
// documents branch on it to fall back to plain accessor reads.
var ErrNotCompressed = errors.New("primitive has no KHR_draco_mesh_compression extension")

// IsCompressed reports whether the primitive carries the extension.
func IsCompressed(prim *gltf.Primitive) bool {
	_, ok := prim.Extensions[dracomesh.ExtensionName]
	return ok
}

// Extension returns the typed extension value of a primitive. Raw JSON
// values are accepted for documents assembled without the registered
// extension codec.
func Extension(prim *gltf.Primitive) (*dracomesh.Extension, error) {
	value, ok := prim.Extensions[dracomesh.ExtensionName]
	if !ok {
		return nil, ErrNotCompressed
	}
	switch ext := value.(type) {
	case *dracomesh.Extension:
		return ext, nil
	case json.RawMessage:
		parsed := new(dracomesh.Extension)
		if err := json.Unmarshal(ext, parsed); err != nil {
			return nil, errors.Wrap(err, "malformed KHR_draco_mesh_compression extension")
		}
		return parsed, nil
	}
	return nil, errors.Errorf("unexpected KHR_draco_mesh_compression extension type %T", value)
}

// CompressedData slices the Draco byte region out of the document
// buffer referenced by the extension's bufferView.
func CompressedData(doc *gltf.Document, ext *dracomesh.Extension) ([]byte, error) {
	if int(ext.BufferView) >= len(doc.BufferViews) {
		return nil, errors.Errorf("bufferView %d not found", ext.BufferView)
	}
	bv := doc.BufferViews[ext.BufferView]

	if int(bv.Buffer) >= len(doc.Buffers) {
		return nil, errors.Errorf("buffer %d not found", bv.Buffer)
	}
	buffer := doc.Buffers[bv.Buffer]

	start := int(bv.ByteOffset)
	end := start + int(bv.ByteLength)
	if end > len(buffer.Data) {
		return nil, errors.Errorf("bufferView %d [0x%x:0x%x] outside of buffer %d (0x%x bytes)",
			ext.BufferView, start, end, bv.Buffer, len(buffer.Data))
	}
	return buffer.Data[start:end], nil
}

// DecodePrimitive decodes one compressed TRIANGLES primitive. The
// POSITION and indices accessors must be present: the extension spec
// requires them and they cross-check the decoded stream.
func DecodePrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Primitive, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, errors.Errorf("unsupported primitive mode %d (only TRIANGLES)", prim.Mode)
	}

	ext, err := Extension(prim)
	if err != nil {
		return nil, err
	}
	data, err := CompressedData(doc, ext)
	if err != nil {
		return nil, err
	}

	positionAccessor, err := attributeAccessor(doc, prim, "POSITION")
	if err != nil {
		return nil, errors.Wrap(err, "POSITION accessor needed for vertex count")
	}
	if prim.Indices == nil {
		return nil, errors.New("indices accessor missing for TRIANGLES primitive")
	}
	if int(*prim.Indices) >= len(doc.Accessors) {
		return nil, errors.Errorf("indices accessor %d not found", *prim.Indices)
	}
	indicesAccessor := doc.Accessors[*prim.Indices]

	geometry, err := decoder.DecodeMesh(data)
	if err != nil {
		return nil, err
	}

	if geometry.VertexCount != int(positionAccessor.Count) {
		return nil, errors.Errorf("draco stream has %d vertices, POSITION accessor declares %d",
			geometry.VertexCount, positionAccessor.Count)
	}
	if len(geometry.Indices) != int(indicesAccessor.Count) {
		return nil, errors.Errorf("draco stream has %d indices, accessor declares %d",
			len(geometry.Indices), indicesAccessor.Count)
	}

	type mapping struct {
		sem      Semantic
		accessor *gltf.Accessor
	}
	byUniqueID := make(map[uint32]mapping, len(ext.Attributes))
	for name, uniqueID := range ext.Attributes {
		sem, ok := ParseSemantic(name)
		if !ok {
			log.Printf("[gltfdraco] skipping attribute %q: unknown semantic", name)
			continue
		}
		accessor, err := attributeAccessor(doc, prim, name)
		if err != nil {
			return nil, err
		}
		byUniqueID[uniqueID] = mapping{sem: sem, accessor: accessor}
	}

	p := newPrimitive()
	p.Indices = geometry.Indices
	for i := range geometry.Attributes {
		attr := &geometry.Attributes[i]
		m, ok := byUniqueID[attr.UniqueID]
		if !ok {
			return nil, errors.Errorf("attribute id %d from draco stream not in extension attributes map", attr.UniqueID)
		}
		if dims := typeComponents(m.accessor.Type); dims != attr.Components {
			log.Printf("[gltfdraco] %s: draco stream has vec%d, accessor declares vec%d",
				m.sem, attr.Components, dims)
		}
		if err := p.fill(m.sem, attr); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// DecodeMesh decodes every compressed primitive of a mesh, skipping
// uncompressed ones. The result slice is indexed like mesh.Primitives,
// with nil entries for skipped primitives.
func DecodeMesh(doc *gltf.Document, mesh *gltf.Mesh) ([]*Primitive, error) {
	out := make([]*Primitive, len(mesh.Primitives))
	for i, prim := range mesh.Primitives {
		if !IsCompressed(prim) {
			continue
		}
		p, err := DecodePrimitive(doc, prim)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode primitive %d of mesh %q", i, mesh.Name)
		}
		out[i] = p
	}
	return out, nil
}

func attributeAccessor(doc *gltf.Document, prim *gltf.Primitive, name string) (*gltf.Accessor, error) {
	index, ok := prim.Attributes[name]
	if !ok {
		return nil, errors.Errorf("attribute %s missing from primitive attributes", name)
	}
	if int(index) >= len(doc.Accessors) {
		return nil, errors.Errorf("accessor %d not found", index)
	}
	return doc.Accessors[index], nil
}

func typeComponents(t gltf.AccessorType) int {
	switch t {
	case gltf.AccessorScalar:
		return 1
	case gltf.AccessorVec2:
		return 2
	case gltf.AccessorVec3:
		return 3
	case gltf.AccessorVec4:
		return 4
	}
	// matrices never appear in vertex streams
	return 4
}
