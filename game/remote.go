package game

import (
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/voxelpeers/config"
	"github.com/memmaker/voxelpeers/engine/util"
)

type RemotePose struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

// RemotePlayer is the smoothed view of one peer. Current is what gets drawn,
// Target is the last value received.
type RemotePlayer struct {
	ID       uint64
	Current  RemotePose
	Target   RemotePose
	lastSeen time.Time
}

// BodyTransform places a 0.6 x 1.2 x 0.4 box over the feet, turned to face
// along the yaw.
func (r *RemotePlayer) BodyTransform() mgl32.Mat4 {
	p := r.Current.Position
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(mgl32.Translate3D(0, 0.6, 0)).
		Mul4(mgl32.HomogRotate3DY(util.ToRadian(-(r.Current.Yaw - 90)))).
		Mul4(mgl32.Scale3D(0.6, 1.2, 0.4))
}

// HeadTransform places a 0.4 cube on top of the body, tilted by the pitch.
func (r *RemotePlayer) HeadTransform() mgl32.Mat4 {
	p := r.Current.Position
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(mgl32.Translate3D(0, 1.6, 0)).
		Mul4(mgl32.HomogRotate3DY(util.ToRadian(-(r.Current.Yaw - 90)))).
		Mul4(mgl32.HomogRotate3DX(util.ToRadian(-r.Current.Pitch))).
		Mul4(mgl32.Scale3D(0.4, 0.4, 0.4))
}

type SyncSettings struct {
	SmoothFactor     float32
	MaxDrainPerFrame int
	// ShortestArc interpolates yaw along the shorter way round instead of
	// numerically.
	ShortestArc bool
	// StaleAfter evicts peers that have been silent this long. Zero keeps
	// them forever.
	StaleAfter time.Duration
}

func SyncSettingsFromConfig(n config.Network) SyncSettings {
	return SyncSettings{
		SmoothFactor:     n.SmoothFactor,
		MaxDrainPerFrame: n.MaxDrainPerFrame,
		ShortestArc:      n.ShortestArc,
		StaleAfter:       n.StaleAfter,
	}
}

// RemotePlayers tracks every peer we have heard from. It is owned by the
// frame loop and never touched concurrently.
type RemotePlayers struct {
	settings SyncSettings
	localID  uint64
	players  map[uint64]*RemotePlayer
	now      func() time.Time

	packetCount      int
	packetWindow     time.Time
	packetsPerSecond int
}

func NewRemotePlayers(localID uint64, settings SyncSettings) *RemotePlayers {
	return &RemotePlayers{
		settings: settings,
		localID:  localID,
		players:  make(map[uint64]*RemotePlayer),
		now:      time.Now,
	}
}

// SetClock replaces the wall clock used for staleness and packet rates.
func (r *RemotePlayers) SetClock(now func() time.Time) {
	r.now = now
}

// ApplyIncoming records the latest pose of a peer. A peer seen for the first
// time starts with current equal to target so it does not slide in from the
// origin.
func (r *RemotePlayers) ApplyIncoming(peerID uint64, pos mgl32.Vec3, yaw, pitch float32) {
	pose := RemotePose{Position: pos, Yaw: yaw, Pitch: pitch}
	player, ok := r.players[peerID]
	if !ok {
		player = &RemotePlayer{ID: peerID, Current: pose}
		r.players[peerID] = player
		util.LogNetworkInfo("[Remote] first update from peer %d", peerID)
	}
	player.Target = pose
	player.lastSeen = r.now()
}

// Advance moves every current pose toward its target by min(1, smooth*dt).
func (r *RemotePlayers) Advance(dt float32) {
	if r.settings.StaleAfter > 0 {
		r.evictStale()
	}
	if dt <= 0 {
		return
	}
	factor := util.Min(1, r.settings.SmoothFactor*dt)
	for _, player := range r.players {
		cur, target := player.Current, player.Target
		cur.Position = util.Lerp3(cur.Position, target.Position, factor)
		if r.settings.ShortestArc {
			cur.Yaw = util.MixAngle(cur.Yaw, target.Yaw, factor)
		} else {
			cur.Yaw = util.Mix(cur.Yaw, target.Yaw, factor)
		}
		cur.Pitch = util.Mix(cur.Pitch, target.Pitch, factor)
		player.Current = cur
	}
}

// Drain pulls at most MaxDrainPerFrame datagrams without blocking. Anything
// that does not decode, or that claims to come from us, is dropped.
func (r *RemotePlayers) Drain(session Session) int {
	limit := r.settings.MaxDrainPerFrame
	if limit < 1 {
		limit = DefaultInboxSize
	}
	applied := 0
	for i := 0; i < limit; i++ {
		datagram, ok := session.Poll()
		if !ok {
			break
		}
		update, ok := DecodePosition(datagram)
		if !ok {
			util.LogNetworkDebug("[Remote] discarded %d byte datagram", len(datagram))
			continue
		}
		if update.SenderID == r.localID {
			continue
		}
		r.ApplyIncoming(update.SenderID, update.Position, update.Yaw, update.Pitch)
		applied++
	}
	r.countPackets(applied)
	return applied
}

func (r *RemotePlayers) countPackets(n int) {
	now := r.now()
	if r.packetWindow.IsZero() {
		r.packetWindow = now
	}
	r.packetCount += n
	if elapsed := now.Sub(r.packetWindow); elapsed >= time.Second {
		r.packetsPerSecond = int(float64(r.packetCount) / elapsed.Seconds())
		r.packetCount = 0
		r.packetWindow = now
	}
}

// PacketsPerSecond is the inbound rate over the last full second.
func (r *RemotePlayers) PacketsPerSecond() int {
	return r.packetsPerSecond
}

func (r *RemotePlayers) evictStale() {
	cutoff := r.now().Add(-r.settings.StaleAfter)
	for id, player := range r.players {
		if player.lastSeen.Before(cutoff) {
			delete(r.players, id)
			util.LogNetworkInfo("[Remote] peer %d went silent, removed", id)
		}
	}
}

func (r *RemotePlayers) Get(peerID uint64) (*RemotePlayer, bool) {
	player, ok := r.players[peerID]
	return player, ok
}

func (r *RemotePlayers) Count() int {
	return len(r.players)
}

// All returns the tracked peers ordered by id.
func (r *RemotePlayers) All() []*RemotePlayer {
	result := make([]*RemotePlayer, 0, len(r.players))
	for _, p := range r.players {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
