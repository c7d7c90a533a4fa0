package voxel

// Kind is the closed set of block types. The numeric value is handed to the
// renderer as-is, so the order must stay stable.
type Kind byte

const (
	EMPTY Kind = iota
	GRASS_TOP
	DIRT
	STONE
)

func (k Kind) IsSolid() bool {
	return k != EMPTY
}

func (k Kind) String() string {
	switch k {
	case EMPTY:
		return "Empty"
	case GRASS_TOP:
		return "GrassTop"
	case DIRT:
		return "Dirt"
	case STONE:
		return "Stone"
	}
	return "Unknown"
}

// AllKinds lists the solid kinds in render order.
var AllKinds = []Kind{GRASS_TOP, DIRT, STONE}
