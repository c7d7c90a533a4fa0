package voxel

import (
	"sort"

	"github.com/memmaker/voxelpeers/engine/util"
)

// World maps chunk origins to chunks. Chunks are owned exclusively by the
// World and never shared.
type World struct {
	chunks  map[Int3]*Chunk
	terrain *Terrain
}

func NewEmptyWorld() *World {
	return &World{
		chunks: make(map[Int3]*Chunk),
	}
}

// NewWorld eagerly generates and meshes a gridSize x gridSize layer of chunks
// at y=0, starting at the origin.
func NewWorld(terrain *Terrain, gridSize int32) *World {
	w := NewEmptyWorld()
	w.terrain = terrain
	totalFaces := 0
	for cx := int32(0); cx < gridSize; cx++ {
		for cz := int32(0); cz < gridSize; cz++ {
			chunk := NewChunk(Int3{X: cx * CHUNK_SIZE, Z: cz * CHUNK_SIZE})
			chunk.Populate(terrain)
			chunk.GenerateMesh()
			totalFaces += chunk.FaceCount()
			w.AddChunk(chunk)
		}
	}
	util.LogVoxelInfo("[World] generated %d chunks, %d faces", len(w.chunks), totalFaces)
	return w
}

// ChunkOriginFor floors each axis to the enclosing multiple of CHUNK_SIZE.
func ChunkOriginFor(x, y, z int32) Int3 {
	return Int3{
		X: FloorDiv(x, CHUNK_SIZE) * CHUNK_SIZE,
		Y: FloorDiv(y, CHUNK_SIZE) * CHUNK_SIZE,
		Z: FloorDiv(z, CHUNK_SIZE) * CHUNK_SIZE,
	}
}

// AddChunk replaces any chunk already stored at the same origin.
func (w *World) AddChunk(c *Chunk) {
	w.chunks[c.Origin()] = c
}

func (w *World) GetChunk(origin Int3) *Chunk {
	return w.chunks[origin]
}

func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// Chunks returns all chunks ordered by origin.
func (w *World) Chunks() []*Chunk {
	result := make([]*Chunk, 0, len(w.chunks))
	for _, c := range w.chunks {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Origin().Less(result[j].Origin())
	})
	return result
}

// BlockAt resolves a global block coordinate. Missing chunks read as EMPTY.
func (w *World) BlockAt(x, y, z int32) Kind {
	origin := ChunkOriginFor(x, y, z)
	chunk, ok := w.chunks[origin]
	if !ok {
		return EMPTY
	}
	return chunk.GetLocalBlock(FloorMod(x, CHUNK_SIZE), FloorMod(y, CHUNK_SIZE), FloorMod(z, CHUNK_SIZE))
}

func (w *World) IsSolidBlockAt(x, y, z int32) bool {
	return w.BlockAt(x, y, z).IsSolid()
}

// SetBlock writes into an existing chunk and is a no-op where none exists.
// The chunk mesh is left stale until RegenerateDirty is called.
func (w *World) SetBlock(x, y, z int32, kind Kind) {
	origin := ChunkOriginFor(x, y, z)
	chunk, ok := w.chunks[origin]
	if !ok {
		return
	}
	chunk.SetBlock(FloorMod(x, CHUNK_SIZE), FloorMod(y, CHUNK_SIZE), FloorMod(z, CHUNK_SIZE), kind)
}

func (w *World) RegenerateDirty() int {
	count := 0
	for _, c := range w.chunks {
		if c.IsDirty() {
			c.GenerateMesh()
			count++
		}
	}
	return count
}
