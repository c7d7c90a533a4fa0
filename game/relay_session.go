package game

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/memmaker/voxelpeers/engine/util"
	"github.com/pkg/errors"
)

// Relay wire format. Binary frames carry an 8-byte little-endian peer id
// followed by the datagram: the destination on the way to the relay, the
// sender on the way back. Text frames carry membership updates as JSON.
const RelayHeaderSize = 8

type MembershipMessage struct {
	Type    string   `json:"type"`
	Members []uint64 `json:"members"`
}

const MembershipType = "members"

func EncodeRelayFrame(peer uint64, payload []byte) []byte {
	frame := make([]byte, RelayHeaderSize+len(payload))
	binary.LittleEndian.PutUint64(frame, peer)
	copy(frame[RelayHeaderSize:], payload)
	return frame
}

func DecodeRelayFrame(frame []byte) (uint64, []byte, bool) {
	if len(frame) < RelayHeaderSize {
		return 0, nil, false
	}
	return binary.LittleEndian.Uint64(frame), frame[RelayHeaderSize:], true
}

const relayWriteTimeout = 5 * time.Second

// RelaySession tunnels datagrams through a websocket relay for peers that
// cannot reach each other directly.
type RelaySession struct {
	localID uint64
	conn    *websocket.Conn
	inbox   *inbox
	outbox  chan []byte

	mu      sync.RWMutex
	members []uint64

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func DialRelay(ctx context.Context, relayURL string, localID uint64, queueSize int) (*RelaySession, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	endpoint := fmt.Sprintf("%s?id=%d", relayURL, localID)
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dial relay %s", relayURL)
	}
	if queueSize < 1 {
		queueSize = DefaultInboxSize
	}
	sessionCtx, cancel := context.WithCancel(context.Background())
	s := &RelaySession{
		localID: localID,
		conn:    conn,
		inbox:   newInbox(queueSize),
		outbox:  make(chan []byte, queueSize),
		members: []uint64{localID},
		ctx:     sessionCtx,
		cancel:  cancel,
	}
	s.wg.Add(2)
	go s.readLoop()
	go s.writeLoop()
	util.LogNetworkInfo("[RelaySession] peer %d connected to %s", localID, relayURL)
	return s, nil
}

func (s *RelaySession) LocalID() uint64 {
	return s.localID
}

func (s *RelaySession) Members() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]uint64, len(s.members))
	copy(result, s.members)
	return result
}

// SendUnreliable queues the frame for the writer goroutine. A full queue
// drops the datagram.
func (s *RelaySession) SendUnreliable(peer uint64, payload []byte) error {
	select {
	case <-s.ctx.Done():
		return errors.New("relay session closed")
	default:
	}
	select {
	case s.outbox <- EncodeRelayFrame(peer, payload):
		return nil
	default:
		return errors.Errorf("relay outbox full, dropped datagram to %d", peer)
	}
}

func (s *RelaySession) Poll() ([]byte, bool) {
	return s.inbox.poll()
}

func (s *RelaySession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()
		_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		err = s.conn.Close()
		s.wg.Wait()
	})
	return err
}

func (s *RelaySession) readLoop() {
	defer s.wg.Done()
	defer s.cancel()
	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if s.ctx.Err() == nil {
				util.LogNetworkWarning("[RelaySession] connection lost: %v", err)
			}
			return
		}
		switch messageType {
		case websocket.BinaryMessage:
			_, payload, ok := DecodeRelayFrame(data)
			if !ok {
				continue
			}
			if !s.inbox.push(payload) {
				util.LogNetworkDebug("[RelaySession] inbox full, dropped datagram")
			}
		case websocket.TextMessage:
			var msg MembershipMessage
			if err := json.Unmarshal(data, &msg); err != nil || msg.Type != MembershipType {
				continue
			}
			sort.Slice(msg.Members, func(i, j int) bool { return msg.Members[i] < msg.Members[j] })
			s.mu.Lock()
			s.members = msg.Members
			s.mu.Unlock()
			util.LogNetworkInfo("[RelaySession] members now %v", msg.Members)
		}
	}
}

func (s *RelaySession) writeLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case frame := <-s.outbox:
			_ = s.conn.SetWriteDeadline(time.Now().Add(relayWriteTimeout))
			if err := s.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				util.LogNetworkDebug("[RelaySession] write failed: %v", err)
				s.cancel()
				return
			}
		}
	}
}
