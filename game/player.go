package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/voxelpeers/config"
	"github.com/memmaker/voxelpeers/engine/util"
	"github.com/memmaker/voxelpeers/engine/voxel"
)

const (
	// skin keeps collision samples off the exact cell boundaries the player
	// rests on.
	skin    = 0.01
	epsilon = 0.001
)

// BlockQuery is the only view of the world the movement solver needs.
type BlockQuery interface {
	IsSolidBlockAt(x, y, z int32) bool
}

type PlayerSettings struct {
	MaxSpeed    float32
	JumpImpulse float32
	Gravity     float32
	StepHeight  float32
	HalfWidth   float32
	Height      float32
	EyeHeight   float32
	GroundBias  float32
}

func PlayerSettingsFromConfig(p config.Player) PlayerSettings {
	return PlayerSettings{
		MaxSpeed:    p.MaxSpeed,
		JumpImpulse: p.JumpImpulse,
		Gravity:     p.Gravity,
		StepHeight:  p.StepHeight,
		HalfWidth:   p.HalfWidth,
		Height:      p.Height,
		EyeHeight:   p.EyeHeight,
		GroundBias:  p.GroundBias,
	}
}

func DefaultPlayerSettings() PlayerSettings {
	return PlayerSettingsFromConfig(config.Defaults().Player)
}

// Player is the locally simulated body. Position is the center of the feet.
type Player struct {
	settings PlayerSettings
	position mgl32.Vec3
	velocity mgl32.Vec3
	grounded bool
	yaw      float32
	pitch    float32
	camera   *util.FPSCamera
}

func NewPlayer(spawn mgl32.Vec3, settings PlayerSettings, camera *util.FPSCamera) *Player {
	p := &Player{
		settings: settings,
		position: spawn,
		camera:   camera,
	}
	p.yaw, p.pitch = camera.GetRotation()
	p.syncCamera()
	return p
}

func (p *Player) GetPosition() mgl32.Vec3 {
	return p.position
}

func (p *Player) SetPosition(pos mgl32.Vec3) {
	p.position = pos
	p.syncCamera()
}

func (p *Player) GetVelocity() mgl32.Vec3 {
	return p.velocity
}

func (p *Player) IsGrounded() bool {
	return p.grounded
}

func (p *Player) GetYaw() float32 {
	return p.yaw
}

func (p *Player) GetPitch() float32 {
	return p.pitch
}

func (p *Player) GetCamera() *util.FPSCamera {
	return p.camera
}

func (p *Player) GetEyePosition() mgl32.Vec3 {
	return p.position.Add(mgl32.Vec3{0, p.settings.EyeHeight, 0})
}

// Update advances the body by one tick. It never fails; open air is assumed
// wherever the world has no data.
func (p *Player) Update(dt float32, input Input, world BlockQuery) {
	s := p.settings

	if !p.grounded {
		p.velocity[1] += s.Gravity * dt
	} else if p.velocity[1] < 0 {
		p.velocity[1] = s.GroundBias
	}

	intent := p.movementIntent(input.MovementAxes())
	p.velocity[0] = intent.X() * s.MaxSpeed
	p.velocity[2] = intent.Z() * s.MaxSpeed

	if p.grounded && input.Jump {
		p.velocity[1] = s.JumpImpulse
		p.grounded = false
	}

	p.moveHorizontal(0, dt, world)
	p.moveHorizontal(2, dt, world)
	p.moveVertical(dt, world)

	p.syncCamera()
}

// UpdateCameraRotation applies pointer look and copies the resulting angles
// into the player. Callers skip it while the pointer is released.
func (p *Player) UpdateCameraRotation(dx, dy float32) {
	p.camera.ChangeAngles(dx, dy)
	p.yaw, p.pitch = p.camera.GetRotation()
}

func (p *Player) movementIntent(axes [2]int) mgl32.Vec3 {
	if axes[0] == 0 && axes[1] == 0 {
		return mgl32.Vec3{}
	}
	forward := p.camera.GetWalkDirection()
	right := util.HorizontalNormalize(p.camera.GetRight())
	dir := forward.Mul(float32(axes[1])).Add(right.Mul(float32(axes[0])))
	return util.HorizontalNormalize(dir)
}

// moveHorizontal resolves one horizontal axis (0 = X, 2 = Z).
func (p *Player) moveHorizontal(axis int, dt float32, world BlockQuery) {
	if p.velocity[axis] == 0 {
		return
	}
	target := p.position
	target[axis] += p.velocity[axis] * dt
	if !p.collidesAt(target, world) {
		p.position = target
		return
	}
	if stepY, ok := p.tryStep(target, world); ok {
		util.LogPhysicsDebug("[Player] step up %.2f -> %.2f", p.position.Y(), stepY)
		target[1] = stepY
		p.position = target
		return
	}
	p.velocity[axis] = 0
}

// tryStep checks whether the body fits at target raised by the step height and
// returns the height of the surface it would land on.
func (p *Player) tryStep(target mgl32.Vec3, world BlockQuery) (float32, bool) {
	s := p.settings
	if s.StepHeight <= 0 {
		return 0, false
	}
	raised := target
	raised[1] += s.StepHeight
	if p.collidesAt(raised, world) {
		return 0, false
	}
	minX, maxX, minZ, maxZ := p.footprint(target)
	top := voxel.FloorToInt32(raised.Y() - epsilon)
	bottom := voxel.FloorToInt32(target.Y())
	for y := top; y >= bottom; y-- {
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				if world.IsSolidBlockAt(x, y, z) {
					return float32(y + 1), true
				}
			}
		}
	}
	return 0, false
}

func (p *Player) moveVertical(dt float32, world BlockQuery) {
	s := p.settings
	newY := p.position.Y() + p.velocity.Y()*dt

	if p.velocity.Y() > 0 {
		head := p.position
		head[1] = newY + s.Height
		if p.touchesLayer(head, voxel.FloorToInt32(head.Y()), world) {
			p.position[1] = float32(voxel.FloorToInt32(head.Y())) - s.Height - skin
			p.velocity[1] = 0
		} else {
			p.position[1] = newY
		}
		p.grounded = false
		return
	}

	probe := p.position
	probe[1] = newY
	below := voxel.FloorToInt32(newY - epsilon)
	if p.touchesLayer(probe, below, world) {
		if !p.grounded {
			util.LogPhysicsDebug("[Player] landed at y=%d", below+1)
		}
		p.position[1] = float32(below + 1)
		p.velocity[1] = 0
		p.grounded = true
		return
	}
	p.position[1] = newY
	p.grounded = false
}

func (p *Player) footprint(pos mgl32.Vec3) (minX, maxX, minZ, maxZ int32) {
	hw := p.settings.HalfWidth - skin
	minX = voxel.FloorToInt32(pos.X() - hw)
	maxX = voxel.FloorToInt32(pos.X() + hw)
	minZ = voxel.FloorToInt32(pos.Z() - hw)
	maxZ = voxel.FloorToInt32(pos.Z() + hw)
	return
}

func (p *Player) touchesLayer(pos mgl32.Vec3, y int32, world BlockQuery) bool {
	minX, maxX, minZ, maxZ := p.footprint(pos)
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			if world.IsSolidBlockAt(x, y, z) {
				return true
			}
		}
	}
	return false
}

// collidesAt samples the body's column from just above the feet to just below
// the head, one sample per block layer.
func (p *Player) collidesAt(pos mgl32.Vec3, world BlockQuery) bool {
	bottom := voxel.FloorToInt32(pos.Y() + skin)
	top := voxel.FloorToInt32(pos.Y() + p.settings.Height - skin)
	for y := bottom; y <= top; y++ {
		if p.touchesLayer(pos, y, world) {
			return true
		}
	}
	return false
}

func (p *Player) syncCamera() {
	p.camera.SetPosition(p.GetEyePosition())
}
