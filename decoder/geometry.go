package decoder

import (
	"encoding/binary"
	"math"
)

// DataType enumerates the scalar types a Draco stream can carry for a
// vertex attribute. 64-bit types are not listed: glTF vertex streams
// never use them.
type DataType int

const (
	DTInvalid DataType = iota
	DTInt8
	DTUint8
	DTInt16
	DTUint16
	DTInt32
	DTUint32
	DTFloat32
)

func (dt DataType) Size() int {
	switch dt {
	case DTInt8, DTUint8:
		return 1
	case DTInt16, DTUint16:
		return 2
	case DTInt32, DTUint32, DTFloat32:
		return 4
	}
	return 0
}

func (dt DataType) String() string {
	switch dt {
	case DTInt8:
		return "int8"
	case DTUint8:
		return "uint8"
	case DTInt16:
		return "int16"
	case DTUint16:
		return "uint16"
	case DTInt32:
		return "int32"
	case DTUint32:
		return "uint32"
	case DTFloat32:
		return "float32"
	}
	return "invalid"
}

// Attribute is one decoded point attribute. Data holds Components
// values per vertex, packed little-endian.
type Attribute struct {
	UniqueID   uint32
	Components int
	DataType   DataType
	Data       []byte
}

// Count returns the vertex count covered by the attribute block.
func (a *Attribute) Count() int {
	stride := a.Components * a.DataType.Size()
	if stride == 0 {
		return 0
	}
	return len(a.Data) / stride
}

func (a *Attribute) Floats() []float32 {
	out := make([]float32, len(a.Data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(a.Data[i*4:]))
	}
	return out
}

func (a *Attribute) Vec2f() [][2]float32 {
	f := a.Floats()
	out := make([][2]float32, len(f)/2)
	for i := range out {
		out[i] = [2]float32{f[i*2], f[i*2+1]}
	}
	return out
}

func (a *Attribute) Vec3f() [][3]float32 {
	f := a.Floats()
	out := make([][3]float32, len(f)/3)
	for i := range out {
		out[i] = [3]float32{f[i*3], f[i*3+1], f[i*3+2]}
	}
	return out
}

func (a *Attribute) Vec4f() [][4]float32 {
	f := a.Floats()
	out := make([][4]float32, len(f)/4)
	for i := range out {
		out[i] = [4]float32{f[i*4], f[i*4+1], f[i*4+2], f[i*4+3]}
	}
	return out
}

func (a *Attribute) Vec4u8() [][4]uint8 {
	out := make([][4]uint8, len(a.Data)/4)
	for i := range out {
		copy(out[i][:], a.Data[i*4:i*4+4])
	}
	return out
}

func (a *Attribute) Vec4u16() [][4]uint16 {
	out := make([][4]uint16, len(a.Data)/8)
	for i := range out {
		for j := 0; j < 4; j++ {
			out[i][j] = binary.LittleEndian.Uint16(a.Data[i*8+j*2:])
		}
	}
	return out
}

// Geometry is the decoder output flattened into plain Go: triangle
// indices widened to uint32 and one Attribute per decoded point
// attribute. It carries no handles into the external decoder.
type Geometry struct {
	VertexCount int
	Indices     []uint32
	Attributes  []Attribute
}

// Attribute finds a decoded attribute by its Draco unique id.
func (g *Geometry) Attribute(uniqueID uint32) *Attribute {
	for i := range g.Attributes {
		if g.Attributes[i].UniqueID == uniqueID {
			return &g.Attributes[i]
		}
	}
	return nil
}
