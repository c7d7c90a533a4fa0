package voxel

import (
	"testing"
)

func TestMeshBatchesGroupByKind(t *testing.T) {
	w := NewEmptyWorld()
	a := NewChunk(Int3{})
	a.SetBlock(1, 1, 1, STONE)
	a.SetBlock(5, 5, 5, GRASS_TOP)
	a.GenerateMesh()
	w.AddChunk(a)
	b := NewChunk(Int3{X: 16})
	b.SetBlock(0, 0, 0, STONE)
	b.GenerateMesh()
	w.AddChunk(b)

	batches := w.MeshBatches()
	counts := map[string]int{}
	for _, batch := range batches {
		counts[batch.Name] = len(batch.Indices) / 6
	}
	if counts["Stone"] != 12 || counts["GrassTop"] != 6 || counts["Dirt"] != 0 {
		t.Fatalf("unexpected faces per kind %v", counts)
	}
	for _, batch := range batches {
		if batch.Name != "Stone" {
			continue
		}
		// the second stone block lives in the chunk at x=16
		found := false
		for _, p := range batch.Positions {
			if p[0] >= 16 {
				found = true
			}
		}
		if !found {
			t.Fatal("expected world-space positions from the second chunk")
		}
	}
}
