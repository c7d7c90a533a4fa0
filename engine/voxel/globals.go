package voxel

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	CHUNK_SIZE         int32 = 16
	CHUNK_SIZE_SQUARED int32 = CHUNK_SIZE * CHUNK_SIZE
	CHUNK_SIZE_CUBED   int32 = CHUNK_SIZE * CHUNK_SIZE * CHUNK_SIZE
)

type Int3 struct {
	X, Y, Z int32
}

func (i Int3) Add(other Int3) Int3 {
	return Int3{i.X + other.X, i.Y + other.Y, i.Z + other.Z}
}

func (i Int3) ToVec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(i.X), float32(i.Y), float32(i.Z)}
}

func (i Int3) ToString() string {
	return fmt.Sprintf("%d,%d,%d", i.X, i.Y, i.Z)
}

// Less orders by X, then Y, then Z.
func (i Int3) Less(other Int3) bool {
	if i.X != other.X {
		return i.X < other.X
	}
	if i.Y != other.Y {
		return i.Y < other.Y
	}
	return i.Z < other.Z
}

// FloorDiv rounds towards negative infinity, so FloorDiv(-1, 16) == -1.
func FloorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod is the non-negative remainder matching FloorDiv.
func FloorMod(a, b int32) int32 {
	return a - FloorDiv(a, b)*b
}

func FloorToInt32(v float32) int32 {
	i := int32(v)
	if float32(i) > v {
		i--
	}
	return i
}
