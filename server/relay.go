package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/memmaker/voxelpeers/engine/util"
	"github.com/memmaker/voxelpeers/game"
	"github.com/pkg/errors"
)

const (
	RelayPath        = "/v1/relay"
	relayWriteWait   = 5 * time.Second
	defaultOutboxLen = 256
)

type outboundFrame struct {
	messageType int
	data        []byte
}

type relayMember struct {
	id     uint64
	conn   *websocket.Conn
	outbox chan outboundFrame
	done   chan struct{}
}

// Relay forwards datagrams between peers that connect over websockets. It
// never interprets payloads and never sends a frame back to its sender.
type Relay struct {
	upgrader   websocket.Upgrader
	outboxSize int

	mu      sync.Mutex
	members map[uint64]*relayMember
}

func NewRelay(outboxSize int) *Relay {
	if outboxSize < 1 {
		outboxSize = defaultOutboxLen
	}
	return &Relay{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		outboxSize: outboxSize,
		members:    make(map[uint64]*relayMember),
	}
}

func (r *Relay) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(RelayPath, r.serveRelay)
	return mux
}

func (r *Relay) MemberIDs() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.memberIDsLocked()
}

func (r *Relay) memberIDsLocked() []uint64 {
	ids := make([]uint64, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (r *Relay) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "relay listen")
	}
	return r.Serve(ctx, listener)
}

// Serve accepts on listener until ctx is cancelled. Cancellation also closes
// every member connection, since upgraded connections are no longer tracked
// by the http server.
func (r *Relay) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{Handler: r.Handler()}
	errCh := make(chan error, 1)
	go func() {
		util.LogNetworkInfo("[Relay] listening on %s%s", listener.Addr(), RelayPath)
		errCh <- srv.Serve(listener)
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		r.disconnectAll()
		return err
	case err := <-errCh:
		r.disconnectAll()
		return errors.Wrap(err, "relay server")
	}
}

// disconnectAll closes member connections; each read loop then fails and the
// member leaves on its own.
func (r *Relay) disconnectAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		m.conn.Close()
	}
}

func (r *Relay) serveRelay(rw http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseUint(req.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.Error(rw, "missing or invalid id", http.StatusBadRequest)
		return
	}
	r.mu.Lock()
	_, taken := r.members[id]
	r.mu.Unlock()
	if taken {
		http.Error(rw, "id already connected", http.StatusConflict)
		return
	}

	conn, err := r.upgrader.Upgrade(rw, req, nil)
	if err != nil {
		return
	}
	member := &relayMember{
		id:     id,
		conn:   conn,
		outbox: make(chan outboundFrame, r.outboxSize),
		done:   make(chan struct{}),
	}
	if !r.join(member) {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "id already connected"), time.Now().Add(time.Second))
		conn.Close()
		return
	}
	go r.writeLoop(member)
	r.readLoop(member)
	r.leave(member)
}

func (r *Relay) join(m *relayMember) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.members[m.id]; taken {
		return false
	}
	r.members[m.id] = m
	util.LogNetworkInfo("[Relay] peer %d joined (%d members)", m.id, len(r.members))
	r.broadcastMembershipLocked()
	return true
}

func (r *Relay) leave(m *relayMember) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.members[m.id] != m {
		return
	}
	delete(r.members, m.id)
	close(m.done)
	m.conn.Close()
	util.LogNetworkInfo("[Relay] peer %d left (%d members)", m.id, len(r.members))
	r.broadcastMembershipLocked()
}

func (r *Relay) broadcastMembershipLocked() {
	data, err := json.Marshal(game.MembershipMessage{Type: game.MembershipType, Members: r.memberIDsLocked()})
	if err != nil {
		util.LogNetworkError("[Relay] encode membership: %v", err)
		return
	}
	for _, m := range r.members {
		enqueue(m, outboundFrame{messageType: websocket.TextMessage, data: data})
	}
}

func (r *Relay) readLoop(m *relayMember) {
	for {
		messageType, data, err := m.conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		dest, payload, ok := game.DecodeRelayFrame(data)
		if !ok || dest == m.id {
			continue
		}
		r.forward(m.id, dest, payload)
	}
}

func (r *Relay) forward(from, to uint64, payload []byte) {
	r.mu.Lock()
	target, ok := r.members[to]
	r.mu.Unlock()
	if !ok {
		util.LogNetworkDebug("[Relay] drop %d -> %d: not connected", from, to)
		return
	}
	if !enqueue(target, outboundFrame{messageType: websocket.BinaryMessage, data: game.EncodeRelayFrame(from, payload)}) {
		util.LogNetworkDebug("[Relay] drop %d -> %d: outbox full", from, to)
	}
}

func enqueue(m *relayMember, frame outboundFrame) bool {
	select {
	case m.outbox <- frame:
		return true
	default:
		return false
	}
}

func (r *Relay) writeLoop(m *relayMember) {
	for {
		select {
		case <-m.done:
			return
		case frame := <-m.outbox:
			_ = m.conn.SetWriteDeadline(time.Now().Add(relayWriteWait))
			if err := m.conn.WriteMessage(frame.messageType, frame.data); err != nil {
				m.conn.Close()
				return
			}
		}
	}
}
