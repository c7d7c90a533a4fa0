package game

import (
	"net"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/memmaker/voxelpeers/config"
	"github.com/memmaker/voxelpeers/engine/util"
	"github.com/pkg/errors"
)

const maxDatagramSize = 1500

// UDPSession sends raw datagrams to a static peer table. A reader goroutine
// moves inbound datagrams into a bounded queue for the frame loop.
type UDPSession struct {
	localID uint64
	conn    *net.UDPConn
	inbox   *inbox

	mu    sync.RWMutex
	peers map[uint64]*net.UDPAddr

	closed atomic.Bool
	done   chan struct{}
}

func NewUDPSession(localID uint64, listen string, peers []config.Peer, inboxSize int) (*UDPSession, error) {
	laddr, err := net.ResolveUDPAddr("udp", listen)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve listen address %q", listen)
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, errors.Wrap(err, "listen udp")
	}
	s := &UDPSession{
		localID: localID,
		conn:    conn,
		inbox:   newInbox(inboxSize),
		peers:   make(map[uint64]*net.UDPAddr),
		done:    make(chan struct{}),
	}
	for _, p := range peers {
		if err := s.AddPeer(p.ID, p.Addr); err != nil {
			conn.Close()
			return nil, err
		}
	}
	go s.readLoop()
	util.LogNetworkInfo("[UDPSession] peer %d listening on %s with %d peers", localID, conn.LocalAddr(), len(peers))
	return s, nil
}

func (s *UDPSession) AddPeer(id uint64, addr string) error {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return errors.Wrapf(err, "resolve peer %d address %q", id, addr)
	}
	s.mu.Lock()
	s.peers[id] = udpAddr
	s.mu.Unlock()
	return nil
}

func (s *UDPSession) LocalAddr() string {
	return s.conn.LocalAddr().String()
}

func (s *UDPSession) LocalID() uint64 {
	return s.localID
}

func (s *UDPSession) Members() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint64, 0, len(s.peers)+1)
	ids = append(ids, s.localID)
	for id := range s.peers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *UDPSession) SendUnreliable(peer uint64, payload []byte) error {
	s.mu.RLock()
	addr, ok := s.peers[peer]
	s.mu.RUnlock()
	if !ok {
		return errors.Errorf("unknown peer %d", peer)
	}
	if _, err := s.conn.WriteToUDP(payload, addr); err != nil {
		return errors.Wrapf(err, "send to peer %d", peer)
	}
	return nil
}

func (s *UDPSession) Poll() ([]byte, bool) {
	return s.inbox.poll()
}

func (s *UDPSession) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := s.conn.Close()
	<-s.done
	return err
}

func (s *UDPSession) readLoop() {
	defer close(s.done)
	buf := make([]byte, maxDatagramSize)
	for {
		n, from, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			util.LogNetworkWarning("[UDPSession] read failed: %v", err)
			continue
		}
		datagram := make([]byte, n)
		copy(datagram, buf[:n])
		if !s.inbox.push(datagram) {
			util.LogNetworkDebug("[UDPSession] inbox full, dropped %d bytes from %s", n, from)
		}
	}
}
