package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/voxelpeers/engine/util"
	"github.com/memmaker/voxelpeers/engine/voxel"
)

type RemoteModel struct {
	ID   uint64
	Body mgl32.Mat4
	Head mgl32.Mat4
}

// RenderFrame is everything a renderer needs for one frame. NewChunks is
// only filled once, on the first frame of play; chunk meshes never change
// afterwards.
type RenderFrame struct {
	State          StateKind
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	CameraPosition mgl32.Vec3
	NewChunks      []*voxel.Chunk
	Remotes        []RemoteModel
	PacketsPerSec  int
	PointerLocked  bool
}

// Renderer draws frames. Window handling and GPU uploads live behind it.
type Renderer interface {
	Size() (int, int)
	RenderFrame(frame RenderFrame)
}

// HeadlessRenderer counts what it would have drawn.
type HeadlessRenderer struct {
	width, height  int
	Frames         int
	UploadedChunks int
	UploadedFaces  int
	Last           RenderFrame
}

func NewHeadlessRenderer(width, height int) *HeadlessRenderer {
	return &HeadlessRenderer{width: width, height: height}
}

func (h *HeadlessRenderer) Size() (int, int) {
	return h.width, h.height
}

func (h *HeadlessRenderer) RenderFrame(frame RenderFrame) {
	h.Frames++
	if len(frame.NewChunks) > 0 {
		for _, chunk := range frame.NewChunks {
			h.UploadedFaces += chunk.FaceCount()
		}
		h.UploadedChunks += len(frame.NewChunks)
		util.LogSystemInfo("[HeadlessRenderer] uploaded %d chunks, %d faces", h.UploadedChunks, h.UploadedFaces)
	}
	h.Last = frame
}
