package game

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/voxelpeers/config"
	"github.com/memmaker/voxelpeers/engine/util"
	"github.com/memmaker/voxelpeers/engine/voxel"
)

const (
	statsEveryFrames = 300
	maxFrameDelta    = 0.25
)

// Client is the frame loop of one peer. It owns the world, the local player
// and the remote peers; the session is injected and closed by the caller.
type Client struct {
	world    *voxel.World
	player   *Player
	remotes  *RemotePlayers
	session  Session
	renderer Renderer
	input    InputSource
	states   *StateMachine
	ticker   *NetTicker
	timer    *util.Timer

	frameRateHz    float32
	pointerLocked  bool
	chunksUploaded bool
	frameCount     uint64
	quit           bool
}

func NewClient(cfg config.Config, world *voxel.World, session Session, renderer Renderer, input InputSource) *Client {
	spawn := mgl32.Vec3{cfg.Player.Spawn[0], cfg.Player.Spawn[1], cfg.Player.Spawn[2]}
	camera := util.NewFPSCamera(spawn, cfg.Player.LookSensitivity)
	c := &Client{
		world:       world,
		player:      NewPlayer(spawn, PlayerSettingsFromConfig(cfg.Player), camera),
		remotes:     NewRemotePlayers(session.LocalID(), SyncSettingsFromConfig(cfg.Network)),
		session:     session,
		renderer:    renderer,
		input:       input,
		ticker:      NewNetTicker(cfg.Network.TickRateHz),
		timer:       util.NewTimer(),
		frameRateHz: cfg.Client.FrameRateHz,
	}
	c.states = NewStateMachine(map[StateKind]StateHandlers{
		StateMenu: {
			Update: c.updateMenu,
			Render: c.renderMenu,
		},
		StatePlay: {
			OnEnter: c.enterPlay,
			OnExit:  c.exitPlay,
			Update:  c.updatePlay,
			Render:  c.renderPlay,
		},
	})
	if cfg.Client.StartInMenu {
		c.states.Request(StateMenu)
	} else {
		c.states.Request(StatePlay)
	}
	return c
}

func (c *Client) Player() *Player {
	return c.player
}

func (c *Client) Remotes() *RemotePlayers {
	return c.remotes
}

func (c *Client) States() *StateMachine {
	return c.states
}

func (c *Client) PointerLocked() bool {
	return c.pointerLocked
}

func (c *Client) ShouldQuit() bool {
	return c.quit
}

// Frame runs one frame. Pending state changes are applied first, so a
// transition requested during this frame's update takes effect next frame.
func (c *Client) Frame(dt float32) {
	stopFrame := c.timer.Start("frame")
	c.states.ApplyPending()

	in := c.input.Poll()
	if in.Quit {
		c.quit = true
	}
	c.states.Update(dt, in)

	stopRender := c.timer.Start("render")
	c.states.Render()
	stopRender()

	stopFrame()
	c.frameCount++
	if c.frameCount%statsEveryFrames == 0 {
		util.LogSystemDebug("[Client] %d frames, %s\n%s", c.frameCount, c.player.GetCamera().DebugAim(), c.timer.String())
		c.timer.Reset()
	}
}

// Run drives frames at the configured rate until ctx is cancelled or the
// input asks to quit.
func (c *Client) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / float64(c.frameRateHz))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	util.LogSystemInfo("[Client] peer %d running at %.0f fps", c.session.LocalID(), c.frameRateHz)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			if dt > maxFrameDelta {
				dt = maxFrameDelta
			}
			c.Frame(dt)
			if c.quit {
				util.LogSystemInfo("[Client] quit requested")
				return nil
			}
		}
	}
}

func (c *Client) updateMenu(dt float32, in Input) {
	if in.StartGame {
		c.states.Request(StatePlay)
	}
}

func (c *Client) renderMenu() {
	c.renderer.RenderFrame(RenderFrame{State: StateMenu})
}

func (c *Client) enterPlay() {
	c.pointerLocked = true
}

func (c *Client) exitPlay() {
	c.pointerLocked = false
}

func (c *Client) updatePlay(dt float32, in Input) {
	if in.ToggleLock {
		c.pointerLocked = !c.pointerLocked
	}

	stopNet := c.timer.Start("remote")
	c.remotes.Drain(c.session)
	c.remotes.Advance(dt)
	stopNet()

	stopPhysics := c.timer.Start("physics")
	c.player.Update(dt, in, c.world)
	stopPhysics()

	if c.pointerLocked {
		c.player.UpdateCameraRotation(in.LookDX, in.LookDY)
	}

	if c.ticker.Tick(dt) {
		BroadcastPose(c.session, PositionUpdate{
			SenderID: c.session.LocalID(),
			Position: c.player.GetPosition(),
			Yaw:      c.player.GetYaw(),
			Pitch:    c.player.GetPitch(),
		})
	}
}

func (c *Client) renderPlay() {
	width, height := c.renderer.Size()
	camera := c.player.GetCamera()
	frame := RenderFrame{
		State:          StatePlay,
		View:           camera.GetViewMatrix(),
		Projection:     camera.GetProjectionMatrix(width, height),
		CameraPosition: camera.GetPosition(),
		PacketsPerSec:  c.remotes.PacketsPerSecond(),
		PointerLocked:  c.pointerLocked,
	}
	if !c.chunksUploaded {
		frame.NewChunks = c.world.Chunks()
		c.chunksUploaded = true
	}
	for _, remote := range c.remotes.All() {
		frame.Remotes = append(frame.Remotes, RemoteModel{
			ID:   remote.ID,
			Body: remote.BodyTransform(),
			Head: remote.HeadTransform(),
		})
	}
	c.renderer.RenderFrame(frame)
}
