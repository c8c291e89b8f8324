// Package decoder is the boundary to the external Draco decoder. All
// bitstream parsing, entropy decoding and connectivity reconstruction
// happens inside github.com/qmuntal/draco-go; this package only turns
// the decoded mesh into a self-contained Geometry value.
package decoder

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
	"github.com/qmuntal/draco-go/draco"
)

// DecodeMesh decodes a Draco-compressed triangular mesh from the byte
// region referenced by a KHR_draco_mesh_compression bufferView.
func DecodeMesh(data []byte) (*Geometry, error) {
	m := draco.NewMesh()
	d := draco.NewDecoder()
	if err := d.DecodeMesh(m, data); err != nil {
		return nil, errors.Wrap(err, "draco decode failed")
	}

	// Faces fills 3 indices per face into the buffer but returns it
	// truncated to NumFaces entries, so keep our own reference.
	indices := make([]uint32, 3*m.NumFaces())
	m.Faces(indices)

	g := &Geometry{
		VertexCount: int(m.NumPoints()),
		Indices:     indices,
		Attributes:  make([]Attribute, 0, m.NumAttrs()),
	}

	for i := int32(0); i < m.NumAttrs(); i++ {
		pa := m.Attr(i)
		attr, err := readAttribute(m, pa, g.VertexCount)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read attribute %d (unique id %d)", i, pa.UniqueID())
		}
		g.Attributes = append(g.Attributes, attr)
	}

	return g, nil
}

func readAttribute(m *draco.Mesh, pa *draco.PointAttr, vertexCount int) (Attribute, error) {
	attr := Attribute{
		UniqueID:   pa.UniqueID(),
		Components: int(pa.NumComponents()),
	}
	n := vertexCount * attr.Components

	switch pa.DataType() {
	case draco.DT_INT8:
		v, ok := m.AttrData(pa, make([]int8, n))
		if !ok {
			return attr, errors.New("attribute data read failed")
		}
		attr.DataType, attr.Data = DTInt8, packInt8(v.([]int8))
	case draco.DT_UINT8:
		v, ok := m.AttrData(pa, make([]uint8, n))
		if !ok {
			return attr, errors.New("attribute data read failed")
		}
		attr.DataType = DTUint8
		attr.Data = append([]byte(nil), v.([]uint8)...)
	case draco.DT_INT16:
		v, ok := m.AttrData(pa, make([]int16, n))
		if !ok {
			return attr, errors.New("attribute data read failed")
		}
		attr.DataType, attr.Data = DTInt16, packInt16(v.([]int16))
	case draco.DT_UINT16:
		v, ok := m.AttrData(pa, make([]uint16, n))
		if !ok {
			return attr, errors.New("attribute data read failed")
		}
		attr.DataType, attr.Data = DTUint16, packUint16(v.([]uint16))
	case draco.DT_INT32:
		v, ok := m.AttrData(pa, make([]int32, n))
		if !ok {
			return attr, errors.New("attribute data read failed")
		}
		attr.DataType, attr.Data = DTInt32, packInt32(v.([]int32))
	case draco.DT_UINT32:
		v, ok := m.AttrData(pa, make([]uint32, n))
		if !ok {
			return attr, errors.New("attribute data read failed")
		}
		attr.DataType, attr.Data = DTUint32, packUint32(v.([]uint32))
	case draco.DT_FLOAT32:
		v, ok := m.AttrData(pa, make([]float32, n))
		if !ok {
			return attr, errors.New("attribute data read failed")
		}
		attr.DataType, attr.Data = DTFloat32, packFloat32(v.([]float32))
	default:
		return attr, errors.Errorf("unsupported draco data type %d", pa.DataType())
	}

	return attr, nil
}

func packInt8(v []int8) []byte {
	out := make([]byte, len(v))
	for i, x := range v {
		out[i] = byte(x)
	}
	return out
}

func packInt16(v []int16) []byte {
	out := make([]byte, len(v)*2)
	for i, x := range v {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(x))
	}
	return out
}

func packUint16(v []uint16) []byte {
	out := make([]byte, len(v)*2)
	for i, x := range v {
		binary.LittleEndian.PutUint16(out[i*2:], x)
	}
	return out
}

func packInt32(v []int32) []byte {
	out := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(x))
	}
	return out
}

func packUint32(v []uint32) []byte {
	out := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(out[i*4:], x)
	}
	return out
}

func packFloat32(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(x))
	}
	return out
}
