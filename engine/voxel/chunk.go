package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/voxelpeers/engine/util"
)

// Chunk is a 16³ cube of voxels. Its origin is a multiple of CHUNK_SIZE on
// every axis and doubles as its key in the World.
type Chunk struct {
	data       [CHUNK_SIZE_CUBED]Kind
	origin     Int3
	meshBuffer *MeshBuffer
	isDirty    bool
}

func NewChunk(origin Int3) *Chunk {
	return &Chunk{
		origin:     origin,
		meshBuffer: NewMeshBuffer(),
		isDirty:    true,
	}
}

func blockIndex(i, j, k int32) int32 {
	return i + j*CHUNK_SIZE + k*CHUNK_SIZE_SQUARED
}

func (c *Chunk) Contains(x, y, z int32) bool {
	return x >= 0 && x < CHUNK_SIZE && y >= 0 && y < CHUNK_SIZE && z >= 0 && z < CHUNK_SIZE
}

func (c *Chunk) Origin() Int3 {
	return c.origin
}

// GetLocalBlock returns EMPTY for coordinates outside [0,16).
func (c *Chunk) GetLocalBlock(i, j, k int32) Kind {
	if !c.Contains(i, j, k) {
		return EMPTY
	}
	return c.data[blockIndex(i, j, k)]
}

// SetBlock ignores coordinates outside [0,16).
func (c *Chunk) SetBlock(x, y, z int32, kind Kind) {
	if !c.Contains(x, y, z) {
		return
	}
	c.data[blockIndex(x, y, z)] = kind
	c.isDirty = true
}

func (c *Chunk) IsDirty() bool {
	return c.isDirty
}

// Populate fills every column from the terrain height map: stone at the
// bottom, three layers of dirt, one grass cell on top, air above.
func (c *Chunk) Populate(terrain *Terrain) {
	for x := int32(0); x < CHUNK_SIZE; x++ {
		for z := int32(0); z < CHUNK_SIZE; z++ {
			height := terrain.HeightAt(c.origin.X+x, c.origin.Z+z) - c.origin.Y
			for y := int32(0); y < CHUNK_SIZE; y++ {
				c.data[blockIndex(x, y, z)] = columnKind(y, height)
			}
		}
	}
	c.isDirty = true
}

func columnKind(y, height int32) Kind {
	switch {
	case y >= height:
		return EMPTY
	case y == height-1:
		return GRASS_TOP
	case y >= height-4:
		return DIRT
	default:
		return STONE
	}
}

// ExposedFaces lists the faces of the cell at (x,y,z) whose neighbour is not
// solid. Neighbours outside the chunk count as open.
func (c *Chunk) ExposedFaces(x, y, z int32) []FaceType {
	if !c.GetLocalBlock(x, y, z).IsSolid() {
		return nil
	}
	var faces []FaceType
	pos := Int3{x, y, z}
	for _, side := range AllFaces {
		n := pos.Add(side.Normal())
		if !c.GetLocalBlock(n.X, n.Y, n.Z).IsSolid() {
			faces = append(faces, side)
		}
	}
	return faces
}

// GenerateMesh rebuilds the culled face list. Each face is two triangles.
func (c *Chunk) GenerateMesh() {
	c.meshBuffer.Reset()
	for k := int32(0); k < CHUNK_SIZE; k++ {
		for j := int32(0); j < CHUNK_SIZE; j++ {
			for i := int32(0); i < CHUNK_SIZE; i++ {
				kind := c.data[blockIndex(i, j, k)]
				if !kind.IsSolid() {
					continue
				}
				for _, side := range c.ExposedFaces(i, j, k) {
					c.meshBuffer.AppendFace(Int3{i, j, k}, side, kind)
				}
			}
		}
	}
	c.isDirty = false
	util.LogVoxelDebug("[Chunk] meshed %s: %d faces, %d triangles, %d vertices",
		c.origin.ToString(), c.meshBuffer.FaceCount(), c.meshBuffer.TriangleCount(), c.meshBuffer.VertexCount())
}

// Mesh returns the chunk-local vertices of the last GenerateMesh call.
func (c *Chunk) Mesh() []Vertex {
	return c.meshBuffer.Vertices()
}

func (c *Chunk) FaceCount() int {
	return c.meshBuffer.FaceCount()
}

func (c *Chunk) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(float32(c.origin.X), float32(c.origin.Y), float32(c.origin.Z))
}
