package constraint

import (
	"math"

	"github.com/go-feather/rigidcore/actor"
	"github.com/go-feather/rigidcore/mathutil"
)

// FrictionConstraint applies Coulomb friction along one tangent direction
// of a contact, clamped by that contact's live accumulated normal
// impulse. Two of these (orthogonal tangents) ride on every
// ContactConstraint.
type FrictionConstraint struct {
	Contact *ContactConstraint
	Tangent mathutil.Vec3

	DynamicFriction float64

	AccumulatedImpulse float64

	effMass float64
}

// NewFrictionPair builds the two tangent friction constraints for a
// contact. tangent1 is relative_velocity's component orthogonal to the
// normal, falling back to a basis vector when that's degenerate; tangent2
// completes the orthonormal pair.
func NewFrictionPair(c *ContactConstraint, matA, matB actor.Material, frictionMultiplier float64) (*FrictionConstraint, *FrictionConstraint) {
	relVel := relativeVelocity(c.BodyA, c.BodyB, c.rA, c.rB)
	tangentFromVelocity := relVel.Sub(c.Normal.Mul(mathutil.Dot(relVel, c.Normal)))

	var tangent1 mathutil.Vec3
	if mathutil.Dot(tangentFromVelocity, tangentFromVelocity) < 1e-6 {
		ex := mathutil.Vec3{1, 0, 0}
		if math.Abs(c.Normal.X()) > 0.9 {
			ex = mathutil.Vec3{0, 1, 0}
		}
		tangent1 = mathutil.Normalize(mathutil.Cross(c.Normal, ex))
	} else {
		tangent1 = mathutil.Normalize(tangentFromVelocity)
	}
	tangent2 := mathutil.Normalize(mathutil.Cross(c.Normal, tangent1))

	mu := ComputeDynamicFriction(matA, matB, frictionMultiplier)

	f1 := &FrictionConstraint{Contact: c, Tangent: tangent1, DynamicFriction: mu}
	f2 := &FrictionConstraint{Contact: c, Tangent: tangent2, DynamicFriction: mu}
	return f1, f2
}

// Prepare computes this tangent's effective mass.
func (f *FrictionConstraint) Prepare() {
	c := f.Contact
	f.effMass = effectiveMass(c.BodyA, c.BodyB, c.rA, c.rB, f.Tangent)
}

// Solve runs one iteration: the tangential impulse needed to cancel
// sliding velocity, clamped to [-maxFriction, maxFriction] where
// maxFriction is read from the coupled contact's current accumulated
// normal impulse.
func (f *FrictionConstraint) Solve() {
	if f.effMass <= 0 {
		return
	}
	c := f.Contact

	vt := mathutil.Dot(relativeVelocity(c.BodyA, c.BodyB, c.rA, c.rB), f.Tangent)
	lambda := -vt * f.effMass

	maxFriction := f.DynamicFriction * c.AccumulatedImpulse

	old := f.AccumulatedImpulse
	f.AccumulatedImpulse = clampFloat(old+lambda, -maxFriction, maxFriction)
	applied := f.AccumulatedImpulse - old
	if applied == 0 {
		return
	}

	impulse := f.Tangent.Mul(applied)
	c.BodyA.ApplyImpulse(impulse.Mul(-1))
	c.BodyB.ApplyImpulse(impulse)
	c.BodyA.ApplyTorque(mathutil.Cross(c.rA, impulse.Mul(-1)))
	c.BodyB.ApplyTorque(mathutil.Cross(c.rB, impulse))
}
