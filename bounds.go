package gltfdraco

import "github.com/go-gl/mathgl/mgl32"

// Bounds returns the axis-aligned bounding box of the decoded
// positions. Both vectors are zero when no POSITION data was decoded.
func (p *Primitive) Bounds() (bboxMin, bboxMax mgl32.Vec3) {
	if len(p.Positions) == 0 {
		return
	}
	bboxMin = mgl32.Vec3(p.Positions[0])
	bboxMax = bboxMin
	for _, pos := range p.Positions[1:] {
		for i := 0; i < 3; i++ {
			if pos[i] < bboxMin[i] {
				bboxMin[i] = pos[i]
			}
			if pos[i] > bboxMax[i] {
				bboxMax[i] = pos[i]
			}
		}
	}
	return
}

// BoundingSphere returns a center pose and radius enclosing the
// decoded positions. Center is the box center, not the minimal sphere.
func (p *Primitive) BoundingSphere() (center mgl32.Vec3, radius float32) {
	if len(p.Positions) == 0 {
		return
	}
	bboxMin, bboxMax := p.Bounds()
	center = bboxMin.Add(bboxMax).Mul(0.5)
	for _, pos := range p.Positions {
		if d := mgl32.Vec3(pos).Sub(center).Len(); d > radius {
			radius = d
		}
	}
	return
}
