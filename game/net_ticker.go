package game

import (
	"github.com/memmaker/voxelpeers/engine/util"
)

// NetTicker decouples the outbound send rate from the frame rate.
type NetTicker struct {
	interval    float32
	accumulated float32
}

func NewNetTicker(rateHz float32) *NetTicker {
	return &NetTicker{interval: 1 / rateHz}
}

// Tick adds frame time and reports whether a send is due. Leftover time
// carries into the next interval; a backlog of a whole interval or more is
// dropped so a long frame fires only once.
func (t *NetTicker) Tick(dt float32) bool {
	t.accumulated += dt
	if t.accumulated < t.interval {
		return false
	}
	t.accumulated -= t.interval
	if t.accumulated >= t.interval {
		t.accumulated = 0
	}
	return true
}

// BroadcastPose sends the local pose to every session member except
// ourselves. Send failures are logged and otherwise ignored. It returns the
// number of peers the datagram was handed to.
func BroadcastPose(session Session, position PositionUpdate) int {
	payload := EncodePosition(position)
	sent := 0
	for _, member := range session.Members() {
		if member == session.LocalID() {
			continue
		}
		if err := session.SendUnreliable(member, payload); err != nil {
			util.LogNetworkDebug("[Broadcast] to %d: %v", member, err)
			continue
		}
		sent++
	}
	return sent
}
