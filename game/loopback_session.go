package game

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// LoopbackHub connects sessions living in the same process.
type LoopbackHub struct {
	mu        sync.Mutex
	members   map[uint64]*LoopbackSession
	inboxSize int
}

func NewLoopbackHub(inboxSize int) *LoopbackHub {
	return &LoopbackHub{
		members:   make(map[uint64]*LoopbackSession),
		inboxSize: inboxSize,
	}
}

// Join registers a new member. Joining twice with the same id replaces the
// earlier session.
func (h *LoopbackHub) Join(id uint64) *LoopbackSession {
	s := &LoopbackSession{hub: h, id: id, inbox: newInbox(h.inboxSize)}
	h.mu.Lock()
	h.members[id] = s
	h.mu.Unlock()
	return s
}

func (h *LoopbackHub) leave(id uint64, s *LoopbackSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.members[id] == s {
		delete(h.members, id)
	}
}

func (h *LoopbackHub) memberIDs() []uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]uint64, 0, len(h.members))
	for id := range h.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (h *LoopbackHub) deliver(to uint64, payload []byte) error {
	h.mu.Lock()
	target, ok := h.members[to]
	h.mu.Unlock()
	if !ok {
		return errors.Errorf("no loopback member %d", to)
	}
	datagram := make([]byte, len(payload))
	copy(datagram, payload)
	target.inbox.push(datagram)
	return nil
}

type LoopbackSession struct {
	hub   *LoopbackHub
	id    uint64
	inbox *inbox
}

func (s *LoopbackSession) LocalID() uint64 {
	return s.id
}

func (s *LoopbackSession) Members() []uint64 {
	return s.hub.memberIDs()
}

func (s *LoopbackSession) SendUnreliable(peer uint64, payload []byte) error {
	return s.hub.deliver(peer, payload)
}

func (s *LoopbackSession) Poll() ([]byte, bool) {
	return s.inbox.poll()
}

func (s *LoopbackSession) Dropped() uint64 {
	return s.inbox.droppedCount()
}

func (s *LoopbackSession) Close() error {
	s.hub.leave(s.id, s)
	return nil
}
