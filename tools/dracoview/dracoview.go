package main

import (
	"flag"
	"log"

	"github.com/qmuntal/gltf"

	"github.com/Niki123456123456/gltfdraco/web"

	"net/http"
	_ "net/http/pprof"
)

func main() {
	var addr, file, webPath string
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&file, "f", "", "Path to .gltf/.glb file")
	flag.StringVar(&webPath, "web", "tools/dracoview/web", "Path to web resources")
	flag.Parse()

	if file == "" {
		flag.PrintDefaults()
		return
	}

	doc, err := gltf.Open(file)
	if err != nil {
		log.Fatal(err)
	}

	go http.ListenAndServe(":7777", http.DefaultServeMux)

	if err := web.StartServer(addr, doc, file, webPath); err != nil {
		log.Fatal(err)
	}
}
