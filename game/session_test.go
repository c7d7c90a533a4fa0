package game

import (
	"bytes"
	"testing"
	"time"

	"github.com/memmaker/voxelpeers/config"
)

func TestLoopbackDeliversToAddressedPeerOnly(t *testing.T) {
	hub := NewLoopbackHub(8)
	a := hub.Join(1)
	b := hub.Join(2)
	c := hub.Join(3)

	if err := a.SendUnreliable(2, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	got, ok := b.Poll()
	if !ok || string(got) != "hello" {
		t.Fatalf("expected hello, got %q %v", got, ok)
	}
	if _, ok := c.Poll(); ok {
		t.Fatal("peer 3 should not receive anything")
	}
	if _, ok := a.Poll(); ok {
		t.Fatal("sender should not receive its own datagram")
	}
	if err := a.SendUnreliable(42, []byte("x")); err == nil {
		t.Fatal("expected error for unknown peer")
	}
}

func TestLoopbackCopiesPayload(t *testing.T) {
	hub := NewLoopbackHub(8)
	a := hub.Join(1)
	b := hub.Join(2)
	payload := []byte{1, 2, 3}
	_ = a.SendUnreliable(2, payload)
	payload[0] = 9
	got, _ := b.Poll()
	if got[0] != 1 {
		t.Fatal("datagram aliased the sender's buffer")
	}
}

func TestLoopbackDropsWhenFull(t *testing.T) {
	hub := NewLoopbackHub(2)
	a := hub.Join(1)
	b := hub.Join(2)
	for i := 0; i < 5; i++ {
		if err := a.SendUnreliable(2, []byte{byte(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if b.Dropped() != 3 {
		t.Fatalf("expected 3 drops, got %d", b.Dropped())
	}
	count := 0
	for {
		if _, ok := b.Poll(); !ok {
			break
		}
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 queued datagrams, got %d", count)
	}
}

func TestLoopbackMembersAndClose(t *testing.T) {
	hub := NewLoopbackHub(8)
	a := hub.Join(5)
	b := hub.Join(2)
	if m := a.Members(); len(m) != 2 || m[0] != 2 || m[1] != 5 {
		t.Fatalf("unexpected members %v", m)
	}
	_ = b.Close()
	if m := a.Members(); len(m) != 1 || m[0] != 5 {
		t.Fatalf("unexpected members after close %v", m)
	}
}

func TestBroadcastPoseSkipsSelf(t *testing.T) {
	hub := NewLoopbackHub(8)
	a := hub.Join(1)
	b := hub.Join(2)
	c := hub.Join(3)
	sent := BroadcastPose(a, PositionUpdate{SenderID: 1})
	if sent != 2 {
		t.Fatalf("expected 2 sends, got %d", sent)
	}
	for _, s := range []*LoopbackSession{b, c} {
		got, ok := s.Poll()
		if !ok {
			t.Fatalf("peer %d got nothing", s.LocalID())
		}
		if u, ok := DecodePosition(got); !ok || u.SenderID != 1 {
			t.Fatalf("peer %d got %v", s.LocalID(), got)
		}
	}
	if _, ok := a.Poll(); ok {
		t.Fatal("sender received its own broadcast")
	}
}

func pollWithin(s Session, d time.Duration) ([]byte, bool) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if data, ok := s.Poll(); ok {
			return data, true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return nil, false
}

func TestUDPSessionExchange(t *testing.T) {
	a, err := NewUDPSession(1, "127.0.0.1:0", nil, 16)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := NewUDPSession(2, "127.0.0.1:0", []config.Peer{{ID: 1, Addr: a.LocalAddr()}}, 16)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if err := a.AddPeer(2, b.LocalAddr()); err != nil {
		t.Fatal(err)
	}

	if m := a.Members(); len(m) != 2 || m[0] != 1 || m[1] != 2 {
		t.Fatalf("unexpected members %v", m)
	}
	payload := EncodePosition(PositionUpdate{SenderID: 2})
	if err := b.SendUnreliable(1, payload); err != nil {
		t.Fatal(err)
	}
	got, ok := pollWithin(a, 2*time.Second)
	if !ok {
		t.Fatal("no datagram received")
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch %v", got)
	}
	if err := a.SendUnreliable(99, payload); err == nil {
		t.Fatal("expected error for unknown peer")
	}
}

func TestUDPSessionPollDoesNotBlock(t *testing.T) {
	s, err := NewUDPSession(1, "127.0.0.1:0", nil, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	start := time.Now()
	if _, ok := s.Poll(); ok {
		t.Fatal("expected empty queue")
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("poll blocked")
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal("second close should be a no-op")
	}
}

func TestRelayFrameCodec(t *testing.T) {
	frame := EncodeRelayFrame(77, []byte("abc"))
	peer, payload, ok := DecodeRelayFrame(frame)
	if !ok || peer != 77 || string(payload) != "abc" {
		t.Fatalf("unexpected decode %d %q %v", peer, payload, ok)
	}
	if _, _, ok := DecodeRelayFrame([]byte{1, 2, 3}); ok {
		t.Fatal("expected short frame to be rejected")
	}
}
