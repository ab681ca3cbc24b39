package constraint

import (
	"math"

	"github.com/go-feather/rigidcore/actor"
	"github.com/go-feather/rigidcore/mathutil"
)

// restitutionVelocityFloor is the minimum closing speed (along the
// normal) before restitution kicks in; below it a resting contact would
// re-inject a sliver of energy from gravity's per-step closing velocity
// on every solve, which reads as jitter rather than a bounce.
const restitutionVelocityFloor = 0.5

// ContactConstraint resolves one non-penetration contact between two
// bodies via a non-negative accumulated normal impulse. One instance is
// built per contact point produced by narrowphase, each step.
type ContactConstraint struct {
	BodyA, BodyB *actor.RigidBody
	Point        mathutil.Vec3
	Normal       mathutil.Vec3
	Penetration  float64

	AccumulatedImpulse float64

	rA, rB          mathutil.Vec3
	effMass         float64
	bias            float64
	restitutionBias float64
}

// NewContactConstraint builds a constraint for one contact. Call Prepare
// once before the solve loop begins.
func NewContactConstraint(a, b *actor.RigidBody, point, normal mathutil.Vec3, penetration float64) *ContactConstraint {
	return &ContactConstraint{
		BodyA:       a,
		BodyB:       b,
		Point:       point,
		Normal:      normal,
		Penetration: penetration,
	}
}

// Prepare computes the lever arms, effective mass, Baumgarte bias and a
// one-shot restitution target, then applies the warm start impulse
// (AccumulatedImpulse starts at 0 for a freshly built constraint, so this
// is a no-op unless a caller seeded it).
func (c *ContactConstraint) Prepare(dt float64, params SolverParams) {
	c.rA, c.rB = leverArms(c.BodyA, c.BodyB, c.Point)
	c.effMass = effectiveMass(c.BodyA, c.BodyB, c.rA, c.rB, c.Normal)

	overshoot := math.Min(math.Max(0, c.Penetration-params.Slop), 0.1)
	c.bias = clampFloat(params.Beta/dt*overshoot, 0, 10)

	vn0 := mathutil.Dot(relativeVelocity(c.BodyA, c.BodyB, c.rA, c.rB), c.Normal)
	c.restitutionBias = 0
	if vn0 < -restitutionVelocityFloor {
		e := ComputeRestitution(c.BodyA.Material, c.BodyB.Material)
		c.restitutionBias = -e * vn0
	}

	c.warmStart()
}

func (c *ContactConstraint) warmStart() {
	if c.AccumulatedImpulse == 0 {
		return
	}
	c.applyImpulse(c.AccumulatedImpulse)
}

// Solve runs one sequential-impulse iteration: compute the normal impulse
// increment needed to drive the closing velocity to the bias/restitution
// target, clamp the running total to stay non-negative, and apply the
// delta.
func (c *ContactConstraint) Solve() {
	if c.effMass <= 0 {
		return
	}

	vn := mathutil.Dot(relativeVelocity(c.BodyA, c.BodyB, c.rA, c.rB), c.Normal)

	lambda := -(vn - c.bias - c.restitutionBias) * c.effMass
	lambda = clampFloat(lambda, -100, 100)

	old := c.AccumulatedImpulse
	c.AccumulatedImpulse = math.Max(old+lambda, 0)
	applied := c.AccumulatedImpulse - old
	if applied == 0 {
		return
	}
	c.applyImpulse(applied)
}

func (c *ContactConstraint) applyImpulse(magnitude float64) {
	impulse := c.Normal.Mul(magnitude)
	c.BodyA.ApplyImpulse(impulse.Mul(-1))
	c.BodyB.ApplyImpulse(impulse)
	c.BodyA.ApplyTorque(mathutil.Cross(c.rA, impulse.Mul(-1)))
	c.BodyB.ApplyTorque(mathutil.Cross(c.rB, impulse))
}
