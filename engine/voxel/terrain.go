package voxel

import (
	"github.com/ojrac/opensimplex-go"
)

// Terrain is a 2D height map sampled per world column.
type Terrain struct {
	noise       opensimplex.Noise32
	frequency   float32
	heightScale float32
}

func NewTerrain(seed int64, frequency, heightScale float32) *Terrain {
	return &Terrain{
		noise:       opensimplex.New32(seed),
		frequency:   frequency,
		heightScale: heightScale,
	}
}

// HeightAt is the number of solid cells in the column at (wx, wz), so the
// surface cell sits at HeightAt-1.
func (t *Terrain) HeightAt(wx, wz int32) int32 {
	n := t.noise.Eval2(float32(wx)*t.frequency, float32(wz)*t.frequency)
	h := int32((n + 1) * t.heightScale)
	if h < 0 {
		return 0
	}
	if h > CHUNK_SIZE {
		return CHUNK_SIZE
	}
	return h
}
