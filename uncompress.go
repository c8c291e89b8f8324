package gltfdraco

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Niki123456123456/gltfdraco/ext/dracomesh"
)

// UncompressDocument rewrites every compressed primitive of the
// document as plain accessors and removes the extension declarations.
// The original compressed bufferViews are left in place: the document
// stays valid, just larger.
func UncompressDocument(doc *gltf.Document) error {
	for iMesh, mesh := range doc.Meshes {
		if err := UncompressMesh(doc, mesh); err != nil {
			return errors.Wrapf(err, "failed to uncompress mesh %d", iMesh)
		}
	}
	return nil
}

// UncompressMesh rewrites the compressed primitives of a single mesh.
// The extension declarations are dropped from the document once no
// primitive uses them anymore.
func UncompressMesh(doc *gltf.Document, mesh *gltf.Mesh) error {
	for iPrim, prim := range mesh.Primitives {
		if !IsCompressed(prim) {
			continue
		}
		p, err := DecodePrimitive(doc, prim)
		if err != nil {
			return errors.Wrapf(err, "failed to decode primitive %d", iPrim)
		}
		rewritePrimitive(doc, prim, p)
	}

	if !documentCompressed(doc) {
		doc.ExtensionsUsed = removeString(doc.ExtensionsUsed, dracomesh.ExtensionName)
		doc.ExtensionsRequired = removeString(doc.ExtensionsRequired, dracomesh.ExtensionName)
	}
	return nil
}

func rewritePrimitive(doc *gltf.Document, prim *gltf.Primitive, p *Primitive) {
	attributes := make(map[string]uint32)

	if p.Positions != nil {
		attributes["POSITION"] = modeler.WritePosition(doc, p.Positions)
	}
	if p.Normals != nil {
		normals := make([][3]float32, len(p.Normals))
		for i := range p.Normals {
			normal := mgl32.Vec3(p.Normals[i])
			if normal.Len() > 0.5 {
				normal = normal.Normalize()
			}
			normals[i] = normal
		}
		attributes["NORMAL"] = modeler.WriteNormal(doc, normals)
	}
	if p.Tangents != nil {
		attributes["TANGENT"] = modeler.WriteTangent(doc, p.Tangents)
	}
	for set, uvs := range p.TexCoords {
		attributes[fmt.Sprintf("TEXCOORD_%d", set)] = modeler.WriteTextureCoord(doc, uvs)
	}
	for set, colors := range p.Colors {
		attributes[fmt.Sprintf("COLOR_%d", set)] = modeler.WriteColor(doc, colors)
	}
	for set, joints := range p.Joints {
		attributes[fmt.Sprintf("JOINTS_%d", set)] = modeler.WriteJoints(doc, joints)
	}
	for set, weights := range p.Weights {
		attributes[fmt.Sprintf("WEIGHTS_%d", set)] = modeler.WriteWeights(doc, weights)
	}

	prim.Indices = gltf.Index(modeler.WriteIndices(doc, p.Indices))
	prim.Attributes = attributes
	delete(prim.Extensions, dracomesh.ExtensionName)
}

func documentCompressed(doc *gltf.Document) bool {
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			if IsCompressed(prim) {
				return true
			}
		}
	}
	return false
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, s := range list {
		if s != value {
			out = append(out, s)
		}
	}
	return out
}
