package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/gzip"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func quad(y float32) [4]mgl32.Vec3 {
	return [4]mgl32.Vec3{{0, y, 0}, {1, y, 0}, {1, y, 1}, {0, y, 1}}
}

var quadUVs = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func TestBuildGLTFDocumentSkipsEmptyBatches(t *testing.T) {
	grass := NewMeshBatch("GrassTop")
	grass.AppendQuad(quad(1), quadUVs)
	grass.AppendQuad(quad(2), quadUVs)
	empty := NewMeshBatch("Dirt")

	doc := BuildGLTFDocument("world", []*MeshBatch{grass, empty})
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("expected one mesh with one primitive")
	}
	if len(doc.Materials) != 1 || doc.Materials[0].Name != "GrassTop" {
		t.Fatalf("unexpected materials %v", doc.Materials)
	}
	if len(grass.Indices) != 12 || len(grass.Positions) != 8 {
		t.Fatalf("unexpected batch sizes %d indices %d positions", len(grass.Indices), len(grass.Positions))
	}
}

func TestWriteGLBRoundTrip(t *testing.T) {
	stone := NewMeshBatch("Stone")
	stone.AppendQuad(quad(0), quadUVs)
	path := filepath.Join(t.TempDir(), "world.glb")
	if err := WriteGLB(path, "world", []*MeshBatch{stone}); err != nil {
		t.Fatal(err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	prim := doc.Meshes[0].Primitives[0]
	positions, err := modeler.ReadPosition(doc, doc.Accessors[prim.Attributes[gltf.POSITION]], nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(positions) != 4 {
		t.Fatalf("expected 4 positions, got %d", len(positions))
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(indices) != 6 {
		t.Fatalf("expected 6 indices, got %d", len(indices))
	}
}

func TestWriteGLBCompressed(t *testing.T) {
	dirt := NewMeshBatch("Dirt")
	dirt.AppendQuad(quad(3), quadUVs)
	path := filepath.Join(t.TempDir(), "world.glb.gz")
	if err := WriteGLB(path, "world", []*MeshBatch{dirt}); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	var doc gltf.Document
	if err := gltf.NewDecoder(zr).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Materials) != 1 || doc.Materials[0].Name != "Dirt" {
		t.Fatalf("unexpected materials %v", doc.Materials)
	}
}
