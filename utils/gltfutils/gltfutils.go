package gltfutils

import (
	"io"

	"github.com/qmuntal/gltf"
)

// ExportBinary encodes the document as a GLB container.
func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}

// EmbedBuffers inlines buffer payloads as data URIs so the document
// can be saved as a standalone .gltf without sidecar .bin files.
func EmbedBuffers(doc *gltf.Document) {
	for _, buffer := range doc.Buffers {
		if buffer.URI == "" && len(buffer.Data) > 0 {
			buffer.EmbeddedResource()
		}
	}
}
