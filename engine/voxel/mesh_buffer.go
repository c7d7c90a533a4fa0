package voxel

const VERTICES_PER_FACE = 6

// MeshBuffer collects the flat vertex list of one chunk. It holds no GPU
// resources; the renderer uploads Vertices() once after generation.
type MeshBuffer struct {
	vertices  []Vertex
	faceCount int
}

func NewMeshBuffer() *MeshBuffer {
	return &MeshBuffer{
		vertices: make([]Vertex, 0),
	}
}

// AppendFace adds the two triangles of one block face, offset by the block's
// local position.
func (m *MeshBuffer) AppendFace(blockPos Int3, side FaceType, kind Kind) {
	origin := blockPos.ToVec3()
	for _, corner := range faceTemplates[side] {
		m.vertices = append(m.vertices, Vertex{
			Position: origin.Add(corner.pos),
			UV:       corner.uv,
			Kind:     kind,
		})
	}
	m.faceCount++
}

func (m *MeshBuffer) Reset() {
	m.vertices = m.vertices[:0]
	m.faceCount = 0
}

func (m *MeshBuffer) Vertices() []Vertex {
	return m.vertices
}

func (m *MeshBuffer) VertexCount() int {
	return len(m.vertices)
}

func (m *MeshBuffer) FaceCount() int {
	return m.faceCount
}

func (m *MeshBuffer) TriangleCount() int {
	return len(m.vertices) / 3
}
