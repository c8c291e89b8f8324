package web

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/Niki123456123456/gltfdraco"
	"github.com/Niki123456123456/gltfdraco/status"
	"github.com/Niki123456123456/gltfdraco/utils/gltfutils"
	"github.com/Niki123456123456/gltfdraco/webutils"
)

type primitiveInfo struct {
	Mesh        int
	Primitive   int
	MeshName    string
	Compressed  bool
	BufferView  uint32            `json:",omitempty"`
	Attributes  map[string]uint32 `json:",omitempty"`
	VertexCount uint32
	IndexCount  uint32
}

type documentInfo struct {
	Path               string
	ExtensionsUsed     []string
	ExtensionsRequired []string
	Primitives         []primitiveInfo
}

func HandlerInfo(w http.ResponseWriter, r *http.Request) {
	served.Lock()
	defer served.Unlock()

	doc := served.doc
	info := documentInfo{
		Path:               served.path,
		ExtensionsUsed:     doc.ExtensionsUsed,
		ExtensionsRequired: doc.ExtensionsRequired,
	}

	for iMesh, mesh := range doc.Meshes {
		for iPrim, prim := range mesh.Primitives {
			pi := primitiveInfo{
				Mesh:      iMesh,
				Primitive: iPrim,
				MeshName:  mesh.Name,
			}
			if ext, err := gltfdraco.Extension(prim); err == nil {
				pi.Compressed = true
				pi.BufferView = ext.BufferView
				pi.Attributes = ext.Attributes
			}
			if iAccessor, ok := prim.Attributes["POSITION"]; ok && int(iAccessor) < len(doc.Accessors) {
				pi.VertexCount = doc.Accessors[iAccessor].Count
			}
			if prim.Indices != nil && int(*prim.Indices) < len(doc.Accessors) {
				pi.IndexCount = doc.Accessors[*prim.Indices].Count
			}
			info.Primitives = append(info.Primitives, pi)
		}
	}

	webutils.WriteJson(w, &info)
}

func primitiveVars(r *http.Request) (int, int, error) {
	iMesh, err := strconv.Atoi(mux.Vars(r)["mesh"])
	if err != nil {
		return 0, 0, errors.Errorf("mesh param %q is not integer", mux.Vars(r)["mesh"])
	}
	iPrim, err := strconv.Atoi(mux.Vars(r)["prim"])
	if err != nil {
		return 0, 0, errors.Errorf("prim param %q is not integer", mux.Vars(r)["prim"])
	}
	return iMesh, iPrim, nil
}

func getPrimitive(iMesh, iPrim int) (*gltfdraco.Primitive, error) {
	served.Lock()
	defer served.Unlock()

	if p, ok := served.primitives[[2]int{iMesh, iPrim}]; ok {
		return p, nil
	}

	doc := served.doc
	if iMesh < 0 || iMesh >= len(doc.Meshes) {
		return nil, errors.Errorf("mesh %d not found", iMesh)
	}
	mesh := doc.Meshes[iMesh]
	if iPrim < 0 || iPrim >= len(mesh.Primitives) {
		return nil, errors.Errorf("primitive %d not found in mesh %d", iPrim, iMesh)
	}

	status.Info("Decoding mesh %d primitive %d", iMesh, iPrim)
	p, err := gltfdraco.DecodePrimitive(doc, mesh.Primitives[iPrim])
	if err != nil {
		status.Error("Decode of mesh %d primitive %d failed: %v", iMesh, iPrim, err)
		return nil, err
	}
	status.Info("Decoded mesh %d primitive %d: %d vertices, %d indices",
		iMesh, iPrim, len(p.Positions), len(p.Indices))

	served.primitives[[2]int{iMesh, iPrim}] = p
	return p, nil
}

func HandlerPrimitive(w http.ResponseWriter, r *http.Request) {
	iMesh, iPrim, err := primitiveVars(r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	if p, err := getPrimitive(iMesh, iPrim); err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJson(w, p)
	}
}

func HandlerPrimitiveBounds(w http.ResponseWriter, r *http.Request) {
	iMesh, iPrim, err := primitiveVars(r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	p, err := getPrimitive(iMesh, iPrim)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	bboxMin, bboxMax := p.Bounds()
	center, radius := p.BoundingSphere()
	webutils.WriteJson(w, map[string]interface{}{
		"Min":    bboxMin,
		"Max":    bboxMax,
		"Center": center,
		"Radius": radius,
	})
}

func HandlerDumpPrimitive(w http.ResponseWriter, r *http.Request) {
	iMesh, iPrim, err := primitiveVars(r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	if p, err := getPrimitive(iMesh, iPrim); err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJsonFile(w, p, fmt.Sprintf("mesh%d-prim%d", iMesh, iPrim))
	}
}

func HandlerPrimitiveAsYaml(w http.ResponseWriter, r *http.Request) {
	iMesh, iPrim, err := primitiveVars(r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	if p, err := getPrimitive(iMesh, iPrim); err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteYamlFile(w, p, fmt.Sprintf("mesh%d-prim%d", iMesh, iPrim))
	}
}

// HandlerDumpGltf reloads the source file, uncompresses every
// primitive and streams the result as a GLB. The served document is
// left untouched so browsing keeps working afterwards.
func HandlerDumpGltf(w http.ResponseWriter, r *http.Request) {
	served.Lock()
	docPath := served.path
	served.Unlock()

	doc, err := gltf.Open(docPath)
	if err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Failed to reload %q", docPath))
		return
	}

	status.Info("Uncompressing %q", docPath)
	if err := gltfdraco.UncompressDocument(doc); err != nil {
		status.Error("Uncompress failed: %v", err)
		webutils.WriteError(w, err)
		return
	}

	var buffer bytes.Buffer
	if err := gltfutils.ExportBinary(&buffer, doc); err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Failed to encode glb"))
		return
	}

	name := filepath.Base(docPath)
	name = name[:len(name)-len(filepath.Ext(name))]
	webutils.WriteFile(w, &buffer, name+".uncompressed.glb")
}
