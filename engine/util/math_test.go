package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWrapDegrees(t *testing.T) {
	cases := []struct{ in, want float32 }{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{720, 0},
		{350, -10},
	}
	for _, tc := range cases {
		if got := WrapDegrees(tc.in); mgl32.Abs(got-tc.want) > 1e-4 {
			t.Errorf("WrapDegrees(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}

func TestMixAngleTakesShortArc(t *testing.T) {
	got := MixAngle(350, 10, 0.5)
	if mgl32.Abs(got-360) > 1e-4 {
		t.Fatalf("expected 360, got %f", got)
	}
	got = MixAngle(10, 350, 0.5)
	if mgl32.Abs(got-0) > 1e-4 {
		t.Fatalf("expected 0, got %f", got)
	}
}

func TestHorizontalNormalizeZero(t *testing.T) {
	if got := HorizontalNormalize(mgl32.Vec3{0, 5, 0}); got != (mgl32.Vec3{}) {
		t.Fatalf("expected zero vector, got %v", got)
	}
	got := HorizontalNormalize(mgl32.Vec3{3, 7, 4})
	if !got.ApproxEqualThreshold(mgl32.Vec3{0.6, 0, 0.8}, 1e-5) {
		t.Fatalf("unexpected %v", got)
	}
}

func TestLerp3(t *testing.T) {
	got := Lerp3(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, -10, 4}, 0.25)
	if !got.ApproxEqualThreshold(mgl32.Vec3{2.5, -2.5, 1}, 1e-6) {
		t.Fatalf("unexpected %v", got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ in, want float32 }{{-100, -89}, {-89, -89}, {12.5, 12.5}, {89, 89}, {90, 89}}
	for _, c := range cases {
		if got := Clamp(c.in, -89, 89); got != c.want {
			t.Errorf("Clamp(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}
