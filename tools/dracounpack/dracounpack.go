package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/qmuntal/gltf"
	"gopkg.in/yaml.v3"

	"github.com/Niki123456123456/gltfdraco"
	"github.com/Niki123456123456/gltfdraco/utils/gltfutils"
)

var spewConfig *spew.ConfigState

func init() {
	spewConfig = spew.NewDefaultConfig()
	spewConfig.DisableCapacities = true
	spewConfig.MaxDepth = 3
}

func main() {
	var input, output string
	var asYaml, asSpew bool
	flag.StringVar(&input, "f", "", "Path to compressed .gltf/.glb file")
	flag.StringVar(&output, "o", "", "Output path (.gltf or .glb)")
	flag.BoolVar(&asYaml, "yaml", false, "Dump decoded primitives as yaml to stdout")
	flag.BoolVar(&asSpew, "spew", false, "Dump decoded primitives structure to stdout")
	flag.Parse()

	if input == "" || output == "" {
		flag.PrintDefaults()
		return
	}

	doc, err := gltf.Open(input)
	if err != nil {
		log.Fatalf("Failed to open %q: %v", input, err)
	}

	for iMesh, mesh := range doc.Meshes {
		for iPrim, prim := range mesh.Primitives {
			if !gltfdraco.IsCompressed(prim) {
				continue
			}
			p, err := gltfdraco.DecodePrimitive(doc, prim)
			if err != nil {
				log.Fatalf("Failed to decode mesh %d primitive %d: %v", iMesh, iPrim, err)
			}

			center, radius := p.BoundingSphere()
			log.Printf("[unpack] mesh %d prim %d: %d vertices, %d indices, %d uv sets, center %v radius %v",
				iMesh, iPrim, len(p.Positions), len(p.Indices), len(p.TexCoords), center, radius)

			if asYaml {
				if err := yaml.NewEncoder(os.Stdout).Encode(p); err != nil {
					log.Fatalf("Failed to marshal yaml: %v", err)
				}
			}
			if asSpew {
				spewConfig.Dump(p)
			}
		}
	}

	if err := gltfdraco.UncompressDocument(doc); err != nil {
		log.Fatalf("Failed to uncompress: %v", err)
	}

	if strings.HasSuffix(strings.ToLower(output), ".glb") {
		f, err := os.Create(output)
		if err != nil {
			log.Fatalf("Failed to create %q: %v", output, err)
		}
		defer f.Close()
		if err := gltfutils.ExportBinary(f, doc); err != nil {
			log.Fatalf("Failed to encode glb: %v", err)
		}
	} else {
		gltfutils.EmbedBuffers(doc)
		if err := gltf.Save(doc, output); err != nil {
			log.Fatalf("Failed to save %q: %v", output, err)
		}
	}

	log.Printf("[unpack] saved %q", output)
}
