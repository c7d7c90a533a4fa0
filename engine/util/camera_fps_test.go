package util

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// nearVec3 compares with an absolute tolerance. Components that should be
// zero come out of sin/cos as tiny nonzero values.
func nearVec3(got, want mgl32.Vec3) bool {
	return got.Sub(want).Len() < 1e-5
}

func TestDefaultCameraLooksDownNegativeZ(t *testing.T) {
	cam := NewFPSCamera(mgl32.Vec3{0, 0, 0}, 0.1)
	if !nearVec3(cam.GetFront(), mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("unexpected front %v", cam.GetFront())
	}
	if !nearVec3(cam.GetRight(), mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("unexpected right %v", cam.GetRight())
	}
	if !nearVec3(cam.GetWalkDirection(), mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("unexpected walk direction %v", cam.GetWalkDirection())
	}
}

func TestPitchIsClamped(t *testing.T) {
	cam := NewFPSCamera(mgl32.Vec3{}, 1)
	cam.SetInvertedY(false)
	for i := 0; i < 10; i++ {
		cam.ChangeAngles(0, 50)
	}
	if _, pitch := cam.GetRotation(); pitch != 89 {
		t.Fatalf("expected pitch clamped to 89, got %f", pitch)
	}
	for i := 0; i < 20; i++ {
		cam.ChangeAngles(0, -50)
	}
	if _, pitch := cam.GetRotation(); pitch != -89 {
		t.Fatalf("expected pitch clamped to -89, got %f", pitch)
	}
}

func TestWalkDirectionStaysHorizontal(t *testing.T) {
	cam := NewFPSCamera(mgl32.Vec3{}, 1)
	cam.Reposition(mgl32.Vec3{}, 30, 60)
	walk := cam.GetWalkDirection()
	if mgl32.Abs(walk.Y()) > 1e-6 {
		t.Fatalf("walk direction has vertical component %v", walk)
	}
	if mgl32.Abs(walk.Len()-1) > 1e-5 {
		t.Fatalf("walk direction not normalized %v", walk)
	}
}

func TestLargePointerJumpsAreIgnored(t *testing.T) {
	cam := NewFPSCamera(mgl32.Vec3{}, 0.1)
	cam.ChangeAngles(500, 0)
	if yaw, _ := cam.GetRotation(); yaw != -90 {
		t.Fatalf("expected yaw unchanged, got %f", yaw)
	}
	cam.ChangeAngles(100, 0)
	if yaw, _ := cam.GetRotation(); mgl32.Abs(yaw-(-80)) > 1e-4 {
		t.Fatalf("expected yaw -80, got %f", yaw)
	}
}

func TestViewMatrixMapsEyeToOrigin(t *testing.T) {
	eye := mgl32.Vec3{3, 10, -4}
	cam := NewFPSCamera(eye, 0.1)
	p := cam.GetViewMatrix().Mul4x1(eye.Vec4(1))
	if p.Vec3().Len() > 1e-4 {
		t.Fatalf("eye should map to view origin, got %v", p)
	}
	ahead := cam.GetViewMatrix().Mul4x1(eye.Add(cam.GetFront()).Vec4(1))
	if ahead.Z() >= 0 {
		t.Fatalf("point ahead of the camera should have negative view z, got %v", ahead)
	}
}

func TestProjectionHandlesZeroHeight(t *testing.T) {
	cam := NewFPSCamera(mgl32.Vec3{}, 0.1)
	m := cam.GetProjectionMatrix(800, 0)
	for i := 0; i < 16; i++ {
		if math.IsNaN(float64(m[i])) || math.IsInf(float64(m[i]), 0) {
			t.Fatalf("projection entry %d is not finite: %f", i, m[i])
		}
	}
}

func TestDebugAimReportsPositionAndAngles(t *testing.T) {
	cam := NewFPSCamera(mgl32.Vec3{1, 2, 3}, 0.1)
	if got := cam.DebugAim(); !strings.Contains(got, "(1.00, 2.00, 3.00)") || !strings.Contains(got, "(-90.00, 0.00)") {
		t.Fatalf("unexpected aim string %q", got)
	}
}
