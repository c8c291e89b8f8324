// Package dracomesh provides typed access to the
// KHR_draco_mesh_compression glTF extension.
package dracomesh

import (
	"encoding/json"

	"github.com/qmuntal/gltf"
)

const ExtensionName = "KHR_draco_mesh_compression"

// Extension is the primitive-level extension value. Attributes maps
// glTF attribute names (POSITION, TEXCOORD_0, ...) to the unique
// attribute ids inside the Draco stream.
type Extension struct {
	BufferView uint32            `json:"bufferView"`
	Attributes map[string]uint32 `json:"attributes"`
}

func Unmarshal(data []byte) (interface{}, error) {
	ext := new(Extension)
	err := json.Unmarshal(data, ext)
	return ext, err
}

func init() {
	gltf.RegisterExtension(ExtensionName, Unmarshal)
}
