package game

import (
	"sync/atomic"
)

// Session is the handle to the set of peers in a match. The orchestrator owns
// its lifecycle and passes it to every call site that sends or receives.
type Session interface {
	LocalID() uint64
	// Members lists every peer in the session, the local one included.
	Members() []uint64
	// SendUnreliable is fire-and-forget. It must not block the caller.
	SendUnreliable(peer uint64, payload []byte) error
	// Poll returns the next queued datagram without blocking.
	Poll() ([]byte, bool)
	Close() error
}

const DefaultInboxSize = 512

// inbox is a bounded datagram queue filled by a transport goroutine and
// drained by the frame loop. Pushes never block; overflow is dropped.
type inbox struct {
	queue   chan []byte
	dropped atomic.Uint64
}

func newInbox(capacity int) *inbox {
	if capacity < 1 {
		capacity = DefaultInboxSize
	}
	return &inbox{queue: make(chan []byte, capacity)}
}

func (i *inbox) push(datagram []byte) bool {
	select {
	case i.queue <- datagram:
		return true
	default:
		i.dropped.Add(1)
		return false
	}
}

func (i *inbox) poll() ([]byte, bool) {
	select {
	case datagram := <-i.queue:
		return datagram, true
	default:
		return nil, false
	}
}

func (i *inbox) droppedCount() uint64 {
	return i.dropped.Load()
}
