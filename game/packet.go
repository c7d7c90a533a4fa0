package game

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type PacketKind uint8

const (
	PacketPosition PacketKind = 1
)

// PositionPacketSize is kind(1) + senderId(8) + x,y,z,yaw,pitch(5*4).
const PositionPacketSize = 1 + 8 + 5*4

// PositionUpdate is the only record peers exchange.
type PositionUpdate struct {
	SenderID uint64
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

// EncodePosition writes the fixed little-endian layout.
func EncodePosition(u PositionUpdate) []byte {
	buf := make([]byte, PositionPacketSize)
	buf[0] = byte(PacketPosition)
	binary.LittleEndian.PutUint64(buf[1:9], u.SenderID)
	putFloat(buf[9:], u.Position.X())
	putFloat(buf[13:], u.Position.Y())
	putFloat(buf[17:], u.Position.Z())
	putFloat(buf[21:], u.Yaw)
	putFloat(buf[25:], u.Pitch)
	return buf
}

// DecodePosition rejects anything that is not exactly one position record,
// including records carrying NaN or infinite values.
func DecodePosition(data []byte) (PositionUpdate, bool) {
	if len(data) != PositionPacketSize || PacketKind(data[0]) != PacketPosition {
		return PositionUpdate{}, false
	}
	u := PositionUpdate{
		SenderID: binary.LittleEndian.Uint64(data[1:9]),
		Position: mgl32.Vec3{getFloat(data[9:]), getFloat(data[13:]), getFloat(data[17:])},
		Yaw:      getFloat(data[21:]),
		Pitch:    getFloat(data[25:]),
	}
	for _, v := range [5]float32{u.Position.X(), u.Position.Y(), u.Position.Z(), u.Yaw, u.Pitch} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return PositionUpdate{}, false
		}
	}
	return u, true
}

func putFloat(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func getFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
