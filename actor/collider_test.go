package actor

import (
	"math"
	"testing"

	"github.com/go-feather/rigidcore/mathutil"
)

// =============================================================================
// ComputeMass Tests
// =============================================================================

func TestCollider_ComputeMass(t *testing.T) {
	tests := []struct {
		name     string
		collider Collider
		density  float64
		want     float64
	}{
		{"unit box", NewBoxCollider(mathutil.Vec3{1, 1, 1}), 1.0, 8.0},
		{"box double density", NewBoxCollider(mathutil.Vec3{1, 1, 1}), 2.0, 16.0},
		{"non-cube box", NewBoxCollider(mathutil.Vec3{0.5, 1, 2}), 1.0, 8.0},
		{"unit sphere", NewSphereCollider(1.0), 1.0, 4.0 / 3.0 * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.collider.ComputeMass(tt.density)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ComputeMass() = %v, want %v", got, tt.want)
			}
		})
	}
}

// =============================================================================
// ComputeInertia Tests
// =============================================================================

func TestCollider_ComputeInertia_Box(t *testing.T) {
	c := NewBoxCollider(mathutil.Vec3{1, 2, 3})
	mass := 6.0

	got := c.ComputeInertia(mass)
	want := mathutil.Vec3{
		mass * (2*2 + 3*3) / 12.0,
		mass * (1*1 + 3*3) / 12.0,
		mass * (1*1 + 2*2) / 12.0,
	}

	if got != want {
		t.Errorf("ComputeInertia() = %v, want %v", got, want)
	}
}

func TestCollider_ComputeInertia_Sphere(t *testing.T) {
	c := NewSphereCollider(2.0)
	mass := 5.0

	got := c.ComputeInertia(mass)
	i := (2.0 / 5.0) * mass * 2.0 * 2.0
	want := mathutil.Vec3{i, i, i}

	if got != want {
		t.Errorf("ComputeInertia() = %v, want %v", got, want)
	}
}

// =============================================================================
// BoundingRadius Tests
// =============================================================================

func TestNewBoxCollider_BoundingRadiusCoversCorners(t *testing.T) {
	he := mathutil.Vec3{1, 2, 3}
	c := NewBoxCollider(he)

	if c.BoundingRadius != he.Len() {
		t.Errorf("BoundingRadius = %v, want %v", c.BoundingRadius, he.Len())
	}
}

func TestNewSphereCollider_BoundingRadiusIsRadius(t *testing.T) {
	c := NewSphereCollider(3.5)
	if c.BoundingRadius != 3.5 {
		t.Errorf("BoundingRadius = %v, want 3.5", c.BoundingRadius)
	}
}

// =============================================================================
// ClearGrounded Tests
// =============================================================================

func TestClearGrounded_ResetsState(t *testing.T) {
	c := NewBoxCollider(mathutil.Vec3{1, 1, 1})
	c.Grounded = true
	c.GroundNormal = mathutil.Vec3{1, 0, 0}

	c.ClearGrounded()

	if c.Grounded {
		t.Error("Grounded should be false after ClearGrounded")
	}
	if c.GroundNormal != mathutil.Up {
		t.Errorf("GroundNormal = %v, want Up", c.GroundNormal)
	}
}
