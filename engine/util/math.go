package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

func ToRadian(angle float32) float32 {
	return mgl32.DegToRad(angle)
}

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func Mix(a, b, factor float32) float32 {
	return a*(1-factor) + factor*b
}

func Lerp3(one, two mgl32.Vec3, factor float32) mgl32.Vec3 {
	return mgl32.Vec3{Mix(one.X(), two.X(), factor), Mix(one.Y(), two.Y(), factor), Mix(one.Z(), two.Z(), factor)}
}

// WrapDegrees maps an angle into (-180, 180].
func WrapDegrees(angle float32) float32 {
	a := float32(math.Mod(float64(angle), 360))
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}

// MixAngle interpolates along the shorter arc between two angles in degrees.
// The result is not wrapped, so it stays continuous with a.
func MixAngle(a, b, factor float32) float32 {
	return a + WrapDegrees(b-a)*factor
}

// HorizontalNormalize drops the Y component and normalizes. A zero-length
// input stays zero instead of producing NaNs.
func HorizontalNormalize(v mgl32.Vec3) mgl32.Vec3 {
	flat := mgl32.Vec3{v.X(), 0, v.Z()}
	if flat.Len() < 1e-6 {
		return mgl32.Vec3{}
	}
	return flat.Normalize()
}
