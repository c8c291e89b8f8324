// Package web serves one loaded glTF document for inspection: decoded
// primitives as JSON/YAML, bounds, and an uncompressed GLB download.
package web

import (
	"log"
	"net/http"
	"os"
	"path"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/qmuntal/gltf"

	"github.com/Niki123456123456/gltfdraco"
	"github.com/Niki123456123456/gltfdraco/status"
)

var served struct {
	sync.Mutex
	doc  *gltf.Document
	path string

	// decoded primitive cache, keyed by mesh/primitive index
	primitives map[[2]int]*gltfdraco.Primitive
}

func StartServer(addr string, doc *gltf.Document, docPath string, webPath string) error {
	served.doc = doc
	served.path = docPath
	served.primitives = make(map[[2]int]*gltfdraco.Primitive)

	r := mux.NewRouter()
	r.HandleFunc("/json/info", HandlerInfo)
	r.HandleFunc("/json/mesh/{mesh}/{prim}", HandlerPrimitive)
	r.HandleFunc("/json/mesh/{mesh}/{prim}/bounds", HandlerPrimitiveBounds)
	r.HandleFunc("/dump/mesh/{mesh}/{prim}", HandlerDumpPrimitive)
	r.HandleFunc("/action/mesh/{mesh}/{prim}/asyaml", HandlerPrimitiveAsYaml)
	r.HandleFunc("/dump/gltf", HandlerDumpGltf)
	r.HandleFunc("/ws/status", status.Handler)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
