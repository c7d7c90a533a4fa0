package voxel

import "github.com/go-gl/mathgl/mgl32"

type FaceType int32

const (
	XP FaceType = iota
	XN
	YP
	YN
	ZP
	ZN
)

var AllFaces = [6]FaceType{XP, XN, YP, YN, ZP, ZN}

// Normal is the offset to the neighbouring cell this face looks at.
func (f FaceType) Normal() Int3 {
	switch f {
	case XP:
		return Int3{X: 1}
	case XN:
		return Int3{X: -1}
	case YP:
		return Int3{Y: 1}
	case YN:
		return Int3{Y: -1}
	case ZP:
		return Int3{Z: 1}
	default:
		return Int3{Z: -1}
	}
}

func (f FaceType) String() string {
	return [...]string{"XP", "XN", "YP", "YN", "ZP", "ZN"}[f]
}

// Vertex is one corner of a face triangle. Position is chunk-local.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
	Kind     Kind
}

type faceCorner struct {
	pos mgl32.Vec3
	uv  mgl32.Vec2
}

// Two triangles per face, unit cube spanning [0,1) on every axis.
var faceTemplates = map[FaceType][VERTICES_PER_FACE]faceCorner{
	ZN: {
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 0}},
	},
	ZP: {
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 0}},
	},
	XN: {
		{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 0}},
	},
	XP: {
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 0}},
	},
	YN: {
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 1}},
	},
	YP: {
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 1}},
	},
}
