package gltfdraco

import (
	"github.com/pkg/errors"

	"github.com/Niki123456123456/gltfdraco/decoder"
)

// Primitive holds the decoded geometry of one glTF primitive with
// attributes already converted to their glTF reference types. Multi-set
// attributes are keyed by set index (TEXCOORD_1 -> TexCoords[1]).
type Primitive struct {
	Indices   []uint32
	Positions [][3]float32
	Normals   [][3]float32
	Tangents  [][4]float32
	TexCoords map[int][][2]float32
	Colors    map[int][][4]float32
	Joints    map[int][][4]uint16
	Weights   map[int][][4]float32
}

func newPrimitive() *Primitive {
	return &Primitive{
		TexCoords: make(map[int][][2]float32),
		Colors:    make(map[int][][4]float32),
		Joints:    make(map[int][][4]uint16),
		Weights:   make(map[int][][4]float32),
	}
}

func (p *Primitive) fill(sem Semantic, attr *decoder.Attribute) error {
	switch sem.Kind {
	case SemanticPosition:
		v, err := vec3fAttr(attr)
		if err != nil {
			return errors.Wrap(err, "POSITION")
		}
		p.Positions = v
	case SemanticNormal:
		v, err := vec3fAttr(attr)
		if err != nil {
			return errors.Wrap(err, "NORMAL")
		}
		p.Normals = v
	case SemanticTangent:
		if attr.DataType != decoder.DTFloat32 || attr.Components != 4 {
			return errors.Errorf("TANGENT: expected float32 vec4, got %s vec%d", attr.DataType, attr.Components)
		}
		p.Tangents = attr.Vec4f()
	case SemanticTexCoord:
		if attr.DataType != decoder.DTFloat32 || attr.Components != 2 {
			return errors.Errorf("%s: expected float32 vec2, got %s vec%d", sem, attr.DataType, attr.Components)
		}
		p.TexCoords[sem.Set] = attr.Vec2f()
	case SemanticColor:
		v, err := colorsAttr(attr)
		if err != nil {
			return errors.Wrapf(err, "%s", sem)
		}
		p.Colors[sem.Set] = v
	case SemanticJoints:
		v, err := jointsAttr(attr)
		if err != nil {
			return errors.Wrapf(err, "%s", sem)
		}
		p.Joints[sem.Set] = v
	case SemanticWeights:
		v, err := weightsAttr(attr)
		if err != nil {
			return errors.Wrapf(err, "%s", sem)
		}
		p.Weights[sem.Set] = v
	}
	return nil
}

func vec3fAttr(attr *decoder.Attribute) ([][3]float32, error) {
	if attr.DataType != decoder.DTFloat32 || attr.Components != 3 {
		return nil, errors.Errorf("expected float32 vec3, got %s vec%d", attr.DataType, attr.Components)
	}
	return attr.Vec3f(), nil
}

// colorsAttr converts COLOR_n to float32 vec4. Normalized uint8/uint16
// sources are expanded to [0,1]; vec3 colors get alpha=1.
func colorsAttr(attr *decoder.Attribute) ([][4]float32, error) {
	if attr.Components != 3 && attr.Components != 4 {
		return nil, errors.Errorf("expected vec3 or vec4, got vec%d", attr.Components)
	}

	var flat []float32
	switch attr.DataType {
	case decoder.DTFloat32:
		flat = attr.Floats()
	case decoder.DTUint8:
		flat = make([]float32, len(attr.Data))
		for i, b := range attr.Data {
			flat[i] = float32(b) / 255.0
		}
	case decoder.DTUint16:
		flat = make([]float32, len(attr.Data)/2)
		for i := range flat {
			flat[i] = float32(uint16(attr.Data[i*2])|uint16(attr.Data[i*2+1])<<8) / 65535.0
		}
	default:
		return nil, errors.Errorf("unsupported data type %s", attr.DataType)
	}

	out := make([][4]float32, len(flat)/attr.Components)
	for i := range out {
		base := i * attr.Components
		c := [4]float32{0, 0, 0, 1}
		copy(c[:attr.Components], flat[base:base+attr.Components])
		out[i] = c
	}
	return out, nil
}

// jointsAttr keeps JOINTS_n as uint16 vec4, widening uint8 sources.
func jointsAttr(attr *decoder.Attribute) ([][4]uint16, error) {
	if attr.Components != 4 {
		return nil, errors.Errorf("expected vec4, got vec%d", attr.Components)
	}
	switch attr.DataType {
	case decoder.DTUint16:
		return attr.Vec4u16(), nil
	case decoder.DTUint8:
		raw := attr.Vec4u8()
		out := make([][4]uint16, len(raw))
		for i, j := range raw {
			out[i] = [4]uint16{uint16(j[0]), uint16(j[1]), uint16(j[2]), uint16(j[3])}
		}
		return out, nil
	}
	return nil, errors.Errorf("unsupported data type %s", attr.DataType)
}

// weightsAttr converts WEIGHTS_n to float32 vec4, normalizing
// uint8/uint16 sources to [0,1].
func weightsAttr(attr *decoder.Attribute) ([][4]float32, error) {
	if attr.Components != 4 {
		return nil, errors.Errorf("expected vec4, got vec%d", attr.Components)
	}
	switch attr.DataType {
	case decoder.DTFloat32:
		return attr.Vec4f(), nil
	case decoder.DTUint16:
		raw := attr.Vec4u16()
		out := make([][4]float32, len(raw))
		for i, w := range raw {
			out[i] = [4]float32{
				float32(w[0]) / 65535.0,
				float32(w[1]) / 65535.0,
				float32(w[2]) / 65535.0,
				float32(w[3]) / 65535.0,
			}
		}
		return out, nil
	case decoder.DTUint8:
		raw := attr.Vec4u8()
		out := make([][4]float32, len(raw))
		for i, w := range raw {
			out[i] = [4]float32{
				float32(w[0]) / 255.0,
				float32(w[1]) / 255.0,
				float32(w[2]) / 255.0,
				float32(w[3]) / 255.0,
			}
		}
		return out, nil
	}
	return nil, errors.Errorf("unsupported data type %s", attr.DataType)
}
