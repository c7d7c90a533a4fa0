package util

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFOV      float32 = 45
	DefaultNearClip float32 = 0.1
	DefaultFarClip  float32 = 1000
)

// FPSCamera is a yaw/pitch camera in degrees. Yaw -90 looks down -Z.
type FPSCamera struct {
	position         mgl32.Vec3
	cameraFront      mgl32.Vec3
	cameraRight      mgl32.Vec3
	cameraUp         mgl32.Vec3
	fpsWalkDirection mgl32.Vec3
	rotatex          float32
	rotatey          float32
	lookSensitivity  float32
	invertedY        bool
	fov              float32
	nearClip         float32
	farClip          float32
}

func NewFPSCamera(pos mgl32.Vec3, sensitivity float32) *FPSCamera {
	f := &FPSCamera{
		position:        pos,
		cameraFront:     mgl32.Vec3{0, 0, -1},
		cameraUp:        mgl32.Vec3{0, 1, 0},
		lookSensitivity: sensitivity,
		rotatey:         0,
		rotatex:         -90,
		invertedY:       true,
		fov:             DefaultFOV,
		nearClip:        DefaultNearClip,
		farClip:         DefaultFarClip,
	}
	f.updateTransform()
	return f
}

func (c *FPSCamera) GetPosition() mgl32.Vec3 {
	return c.position
}

func (c *FPSCamera) SetPosition(pos mgl32.Vec3) {
	c.position = pos
}

func (c *FPSCamera) GetFront() mgl32.Vec3 {
	return c.cameraFront
}

func (c *FPSCamera) GetRight() mgl32.Vec3 {
	return c.cameraRight
}

func (c *FPSCamera) GetUp() mgl32.Vec3 {
	return c.cameraUp
}

// GetWalkDirection is the front vector flattened onto the ground plane.
func (c *FPSCamera) GetWalkDirection() mgl32.Vec3 {
	return c.fpsWalkDirection
}

func (c *FPSCamera) SetInvertedY(inverted bool) {
	c.invertedY = inverted
}

// ChangeAngles applies a pointer delta in screen units. Deltas above 200 are
// treated as a warp (pointer re-capture) and ignored.
func (c *FPSCamera) ChangeAngles(dx, dy float32) {
	if mgl32.Abs(dx) > 200 || mgl32.Abs(dy) > 200 {
		return
	}
	c.rotatex += dx * c.lookSensitivity
	yChange := dy * c.lookSensitivity
	if c.invertedY {
		c.rotatey -= yChange
	} else {
		c.rotatey += yChange
	}
	c.updateTransform()
}

// GetRotation returns yaw and pitch in degrees.
func (c *FPSCamera) GetRotation() (float32, float32) {
	return c.rotatex, c.rotatey
}

func (c *FPSCamera) Reposition(pos mgl32.Vec3, yaw, pitch float32) {
	c.position = pos
	c.rotatex = yaw
	c.rotatey = pitch
	c.updateTransform()
}

func (c *FPSCamera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.cameraFront), c.cameraUp)
}

// GetProjectionMatrix builds the perspective for a viewport; a zero height
// falls back to a square aspect.
func (c *FPSCamera) GetProjectionMatrix(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(ToRadian(c.fov), aspect, c.nearClip, c.farClip)
}

func (c *FPSCamera) updateTransform() {
	c.rotatey = Clamp(c.rotatey, -89, 89)
	front := mgl32.Vec3{
		Cos(ToRadian(c.rotatey)) * Cos(ToRadian(c.rotatex)),
		Sin(ToRadian(c.rotatey)),
		Cos(ToRadian(c.rotatey)) * Sin(ToRadian(c.rotatex)),
	}
	c.cameraFront = front.Normalize()
	c.cameraRight = c.cameraFront.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	c.cameraUp = c.cameraRight.Cross(c.cameraFront).Normalize()
	c.fpsWalkDirection = mgl32.Vec3{0, 1, 0}.Cross(c.cameraRight).Normalize()
}

func (c *FPSCamera) DebugAim() string {
	pos := c.position
	return fmt.Sprintf("Pos: (%0.2f, %0.2f, %0.2f) Aim: (%0.2f, %0.2f)", pos.X(), pos.Y(), pos.Z(), c.rotatex, c.rotatey)
}
