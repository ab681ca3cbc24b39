package constraint

import (
	"math"
	"testing"

	"github.com/go-feather/rigidcore/actor"
	"github.com/go-feather/rigidcore/mathutil"
)

// =============================================================================
// Material combiner tests
// =============================================================================

func TestComputeRestitution_Averages(t *testing.T) {
	tests := []struct {
		name     string
		matA     actor.Material
		matB     actor.Material
		expected float64
	}{
		{"both zero", actor.Material{Restitution: 0}, actor.Material{Restitution: 0}, 0},
		{"zero and high", actor.Material{Restitution: 0}, actor.Material{Restitution: 0.8}, 0.4},
		{"both equal", actor.Material{Restitution: 0.5}, actor.Material{Restitution: 0.5}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRestitution(tt.matA, tt.matB)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ComputeRestitution() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestComputeDynamicFriction_AveragesAndScales(t *testing.T) {
	matA := actor.Material{DynamicFriction: 0.2}
	matB := actor.Material{DynamicFriction: 0.4}

	got := ComputeDynamicFriction(matA, matB, 2.0)
	want := (0.2 + 0.4) / 2.0 * 2.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("ComputeDynamicFriction() = %v, want %v", got, want)
	}
}

// =============================================================================
// effectiveMass Tests
// =============================================================================

func staticBody(pos mathutil.Vec3) *actor.RigidBody {
	return actor.NewRigidBody(actor.BodySpec{
		Transform: actor.Transform{Position: pos, Rotation: mathutil.IdentityQuat()},
		Collider:  actor.NewBoxCollider(mathutil.Vec3{10, 1, 10}),
		IsDynamic: false,
	})
}

func dynamicBody(pos mathutil.Vec3) *actor.RigidBody {
	return actor.NewRigidBody(actor.BodySpec{
		Transform: actor.Transform{Position: pos, Rotation: mathutil.IdentityQuat()},
		Collider:  actor.NewBoxCollider(mathutil.Vec3{0.5, 0.5, 0.5}),
		IsDynamic: true,
		Density:   1.0,
	})
}

func TestEffectiveMass_ZeroWhenBothStatic(t *testing.T) {
	a := staticBody(mathutil.Zero3)
	b := staticBody(mathutil.Vec3{1, 0, 0})

	got := effectiveMass(a, b, mathutil.Zero3, mathutil.Zero3, mathutil.Up)
	if got != 0 {
		t.Errorf("effectiveMass() = %v, want 0 for two static bodies", got)
	}
}

func TestEffectiveMass_PositiveWhenOneDynamic(t *testing.T) {
	floor := staticBody(mathutil.Vec3{0, -1, 0})
	box := dynamicBody(mathutil.Vec3{0, 0.5, 0})

	got := effectiveMass(floor, box, mathutil.Zero3, mathutil.Zero3, mathutil.Up)
	if got <= 0 {
		t.Errorf("effectiveMass() = %v, want > 0", got)
	}
}
