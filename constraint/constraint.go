// Package constraint implements the sequential-impulse contact and
// friction solvers: Baumgarte-stabilized non-negative normal impulses with
// warm starting, and two-tangent Coulomb friction coupled to the live
// normal impulse of the contact it rides on.
package constraint

import (
	"math"

	"github.com/go-feather/rigidcore/actor"
	"github.com/go-feather/rigidcore/mathutil"
)

// SolverParams carries the tunables both solvers need, supplied by World
// each step so nothing here depends on the root package.
type SolverParams struct {
	Beta               float64 // Baumgarte factor, ~0.2
	Slop               float64 // penetration allowance before bias kicks in, ~0.01
	FrictionMultiplier float64 // global scale on the combined friction coefficient
}

// ComputeRestitution combines two materials' restitution by simple
// average.
func ComputeRestitution(matA, matB actor.Material) float64 {
	return (matA.Restitution + matB.Restitution) / 2.0
}

// ComputeDynamicFriction combines two materials' dynamic friction: the
// average of both coefficients, scaled by the solver's global multiplier.
func ComputeDynamicFriction(matA, matB actor.Material, frictionMultiplier float64) float64 {
	return (matA.DynamicFriction + matB.DynamicFriction) / 2.0 * frictionMultiplier
}

// effectiveMass computes 1 / (J M^-1 J^T) for an axis (normal or tangent)
// acting at lever arms rA/rB against bodies a/b, or 0 if the denominator is
// non-positive (both bodies static/infinite-mass along this axis).
func effectiveMass(a, b *actor.RigidBody, rA, rB, axis mathutil.Vec3) float64 {
	invMassA, invMassB := a.InverseMass(), b.InverseMass()
	invIA, invIB := a.InverseInertia(), b.InverseInertia()

	raXn := mathutil.Cross(rA, axis)
	rbXn := mathutil.Cross(rB, axis)

	angularA := mathutil.Dot(mathutil.Vec3{raXn.X() * invIA.X(), raXn.Y() * invIA.Y(), raXn.Z() * invIA.Z()}, raXn)
	angularB := mathutil.Dot(mathutil.Vec3{rbXn.X() * invIB.X(), rbXn.Y() * invIB.Y(), rbXn.Z() * invIB.Z()}, rbXn)

	denom := invMassA + invMassB + angularA + angularB
	if denom <= 0 {
		return 0
	}
	return 1.0 / denom
}

// relativeVelocity returns (v_B + omega_B x r_b) - (v_A + omega_A x r_a).
func relativeVelocity(a, b *actor.RigidBody, rA, rB mathutil.Vec3) mathutil.Vec3 {
	va := a.Velocity.Add(mathutil.Cross(a.AngularVelocity, rA))
	vb := b.Velocity.Add(mathutil.Cross(b.AngularVelocity, rB))
	return vb.Sub(va)
}

// leverArms returns point minus each body's world center of gravity.
func leverArms(a, b *actor.RigidBody, point mathutil.Vec3) (mathutil.Vec3, mathutil.Vec3) {
	return point.Sub(a.WorldCenterOfGravity()), point.Sub(b.WorldCenterOfGravity())
}

func clampFloat(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
