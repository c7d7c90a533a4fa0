package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/voxelpeers/engine/util"
)

// MeshBatches bakes every chunk mesh into world space, one batch per solid
// kind. Each face's six vertices collapse into four indexed corners.
func (w *World) MeshBatches() []*util.MeshBatch {
	batches := make(map[Kind]*util.MeshBatch, len(AllKinds))
	result := make([]*util.MeshBatch, 0, len(AllKinds))
	for _, kind := range AllKinds {
		batch := util.NewMeshBatch(kind.String())
		batches[kind] = batch
		result = append(result, batch)
	}
	for _, chunk := range w.Chunks() {
		offset := chunk.Origin().ToVec3()
		mesh := chunk.Mesh()
		for i := 0; i+VERTICES_PER_FACE <= len(mesh); i += VERTICES_PER_FACE {
			face := mesh[i : i+VERTICES_PER_FACE]
			batch, ok := batches[face[0].Kind]
			if !ok {
				continue
			}
			// vertices 3 and 5 repeat 2 and 0
			corners := [4]mgl32.Vec3{
				face[0].Position.Add(offset),
				face[1].Position.Add(offset),
				face[2].Position.Add(offset),
				face[4].Position.Add(offset),
			}
			uvs := [4]mgl32.Vec2{face[0].UV, face[1].UV, face[2].UV, face[4].UV}
			batch.AppendQuad(corners, uvs)
		}
	}
	return result
}

// ExportGLB writes the whole world as one binary glTF mesh.
func (w *World) ExportGLB(filename string) error {
	return util.WriteGLB(filename, "world", w.MeshBatches())
}
