package game

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPositionPacketLayout(t *testing.T) {
	u := PositionUpdate{SenderID: 0x0102030405060708, Position: mgl32.Vec3{1.5, -2, 3.25}, Yaw: -90, Pitch: 12.5}
	buf := EncodePosition(u)
	if len(buf) != 29 {
		t.Fatalf("expected 29 bytes, got %d", len(buf))
	}
	if buf[0] != byte(PacketPosition) {
		t.Fatalf("unexpected kind byte %d", buf[0])
	}
	if binary.LittleEndian.Uint64(buf[1:9]) != u.SenderID {
		t.Fatal("sender id not little endian at offset 1")
	}
	if math.Float32frombits(binary.LittleEndian.Uint32(buf[21:25])) != -90 {
		t.Fatal("yaw not at offset 21")
	}
	got, ok := DecodePosition(buf)
	if !ok || got != u {
		t.Fatalf("decode mismatch: %+v %v", got, ok)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	valid := EncodePosition(PositionUpdate{SenderID: 9})
	nan := EncodePosition(PositionUpdate{SenderID: 9, Yaw: float32(math.NaN())})
	wrongKind := append([]byte(nil), valid...)
	wrongKind[0] = 2

	cases := map[string][]byte{
		"empty":      nil,
		"short":      valid[:28],
		"long":       append(append([]byte(nil), valid...), 0),
		"wrong kind": wrongKind,
		"nan":        nan,
	}
	for name, data := range cases {
		if _, ok := DecodePosition(data); ok {
			t.Errorf("%s: expected rejection", name)
		}
	}
}
