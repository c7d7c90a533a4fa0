package util

import (
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// MeshBatch is an indexed triangle list that becomes one glTF primitive.
type MeshBatch struct {
	Name      string
	Positions [][3]float32
	UVs       [][2]float32
	Indices   []uint32
}

func NewMeshBatch(name string) *MeshBatch {
	return &MeshBatch{Name: name}
}

// AppendQuad adds four corners in winding order as two triangles.
func (b *MeshBatch) AppendQuad(corners [4]mgl32.Vec3, uvs [4]mgl32.Vec2) {
	base := uint32(len(b.Positions))
	for i := 0; i < 4; i++ {
		b.Positions = append(b.Positions, corners[i])
		b.UVs = append(b.UVs, uvs[i])
	}
	b.Indices = append(b.Indices, base, base+1, base+2, base+2, base+3, base)
}

func (b *MeshBatch) IsEmpty() bool {
	return len(b.Indices) == 0
}

// BuildGLTFDocument puts every non-empty batch into a single mesh, one
// primitive and material per batch.
func BuildGLTFDocument(meshName string, batches []*MeshBatch) *gltf.Document {
	doc := gltf.NewDocument()
	mesh := &gltf.Mesh{Name: meshName}
	for _, batch := range batches {
		if batch.IsEmpty() {
			continue
		}
		doc.Materials = append(doc.Materials, &gltf.Material{Name: batch.Name})
		materialIndex := uint32(len(doc.Materials) - 1)

		positionAccessor := modeler.WritePosition(doc, batch.Positions)
		uvAccessor := modeler.WriteTextureCoord(doc, batch.UVs)
		indicesAccessor := modeler.WriteIndices(doc, batch.Indices)
		mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
			Indices: gltf.Index(indicesAccessor),
			Attributes: gltf.Attribute{
				gltf.POSITION:   positionAccessor,
				gltf.TEXCOORD_0: uvAccessor,
			},
			Material: gltf.Index(materialIndex),
		})
	}
	doc.Meshes = append(doc.Meshes, mesh)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: meshName, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	return doc
}

// WriteGLB saves the batches as binary glTF. A filename ending in ".gz" is
// gzip compressed on the way out.
func WriteGLB(filename, meshName string, batches []*MeshBatch) error {
	doc := BuildGLTFDocument(meshName, batches)
	var err error
	if strings.HasSuffix(filename, ".gz") {
		err = saveCompressedBinary(doc, filename)
	} else {
		err = gltf.SaveBinary(doc, filename)
	}
	if err != nil {
		return errors.Wrapf(err, "could not write %s", filename)
	}
	LogSystemInfo("[glTF] wrote %s with %d primitives", filename, len(doc.Meshes[0].Primitives))
	return nil
}

func saveCompressedBinary(doc *gltf.Document, filename string) error {
	outfile, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer outfile.Close()

	gzipWriter := gzip.NewWriter(outfile)
	encoder := gltf.NewEncoder(gzipWriter)
	encoder.AsBinary = true
	if err = encoder.Encode(doc); err != nil {
		gzipWriter.Close()
		return err
	}
	if err = gzipWriter.Close(); err != nil {
		return err
	}
	return outfile.Close()
}
