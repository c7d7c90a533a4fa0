package game

import "testing"

func TestNetTickerFiresAtRate(t *testing.T) {
	ticker := NewNetTicker(30)
	fired := 0
	for i := 0; i < 600; i++ {
		if ticker.Tick(0.01) {
			fired++
		}
	}
	// 6 seconds at 30 Hz
	if fired < 179 || fired > 180 {
		t.Fatalf("expected about 180 sends, got %d", fired)
	}
}

func TestNetTickerKeepsRateUnderFrameJitter(t *testing.T) {
	ticker := NewNetTicker(30)
	fired := 0
	for i := 0; i < 600; i++ {
		dt := float32(0.0166)
		if i%2 == 1 {
			dt = 0.0167
		}
		if ticker.Tick(dt) {
			fired++
		}
	}
	// 9.99 seconds at 30 Hz
	if fired < 298 || fired > 300 {
		t.Fatalf("expected about 300 sends, got %d", fired)
	}
}

func TestNetTickerDropsBacklogAfterLongFrame(t *testing.T) {
	ticker := NewNetTicker(30)
	if !ticker.Tick(1) {
		t.Fatal("long frame should fire")
	}
	if ticker.Tick(0.001) {
		t.Fatal("backlog should have been dropped")
	}
}
