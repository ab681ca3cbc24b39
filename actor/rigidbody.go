package actor

import (
	"github.com/go-feather/rigidcore/mathutil"
)

// SleepState is one of the two states in the rigid body's sleep/wake
// machine: Awake bodies participate fully in simulation, Sleeping bodies
// are excluded from broadphase iteration and hold zero velocity.
type SleepState uint8

const (
	Awake SleepState = iota
	Sleeping
)

// sleepStillDuration is how long a body must stay below its sleep
// threshold, continuously, before it falls asleep.
const sleepStillDuration = 2.0

// RigidBody is a single simulated body: pose, kinematics, mass properties,
// material, and the collider it owns. Bodies with Mass == 0 are treated as
// infinite-mass/static regardless of IsDynamic, matching the rest of the
// engine's convention that zero mass means immovable.
type RigidBody struct {
	Transform Transform

	Velocity        mathutil.Vec3
	AngularVelocity mathutil.Vec3

	Mass            float64
	InertiaTensor   mathutil.Vec3 // diagonal, body space
	CenterOfGravity mathutil.Vec3 // body-space offset

	Material Material

	UseGravity    bool
	GravityFactor float64
	IsDynamic     bool

	sleepState     SleepState
	SleepThreshold float64
	SleepTimer     float64

	TiltTimer   float64
	AngleToFlat float64 // degrees
	ClosestUp   mathutil.Vec3

	// Layer names this body's collision layer for LayerTable lookups; the
	// empty string means "no layer assigned" (treated as "NONE").
	Layer string

	Collider Collider
}

// BodySpec is the creation-time description a caller hands to World.CreateBody.
// It is intentionally plain data; World is responsible for turning it into a
// fully initialized RigidBody (computing inertia, assigning a handle).
type BodySpec struct {
	Transform      Transform
	Collider       Collider
	IsDynamic      bool
	Density        float64 // used to derive Mass for dynamic bodies
	Material       Material
	UseGravity     bool
	GravityFactor  float64
	SleepThreshold float64
	Layer          string
}

// NewRigidBody builds a body from a spec, computing mass and inertia from
// the collider and density for dynamic bodies. Static bodies always get
// zero mass (the engine's convention for "infinite mass").
func NewRigidBody(spec BodySpec) *RigidBody {
	rb := &RigidBody{
		Transform:      spec.Transform,
		Material:       spec.Material,
		UseGravity:     spec.UseGravity,
		GravityFactor:  spec.GravityFactor,
		IsDynamic:      spec.IsDynamic,
		SleepThreshold: spec.SleepThreshold,
		Collider:       spec.Collider,
		ClosestUp:      mathutil.Up,
		Layer:          spec.Layer,
	}
	if rb.Transform.Rotation == (mathutil.Quat{}) {
		rb.Transform.Rotation = mathutil.IdentityQuat()
	}

	if rb.IsDynamic {
		rb.Mass = rb.Collider.ComputeMass(spec.Density)
	}
	rb.UpdateCenterOfGravity()
	rb.ComputeInertiaTensor()

	return rb
}

// InverseMass returns 1/Mass, or 0 for static/zero-mass bodies.
func (rb *RigidBody) InverseMass() float64 {
	if !rb.IsDynamic || rb.Mass <= 0 {
		return 0
	}
	return 1.0 / rb.Mass
}

// InverseInertia returns the componentwise reciprocal of the body-space
// inertia diagonal, 0 for any axis that is static or non-positive.
func (rb *RigidBody) InverseInertia() mathutil.Vec3 {
	if !rb.IsDynamic {
		return mathutil.Zero3
	}
	inv := func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		return 1.0 / x
	}
	return mathutil.Vec3{
		inv(rb.InertiaTensor.X()),
		inv(rb.InertiaTensor.Y()),
		inv(rb.InertiaTensor.Z()),
	}
}

// WorldCenterOfGravity returns the body's center of gravity in world space.
func (rb *RigidBody) WorldCenterOfGravity() mathutil.Vec3 {
	return rb.Transform.Position.Add(rb.Transform.Rotation.Rotate(rb.CenterOfGravity))
}

// ComputeInertiaTensor derives the diagonal body-space inertia tensor from
// the collider and current mass. Pure in body state: calling it twice in a
// row without any other mutation yields the same result both times.
func (rb *RigidBody) ComputeInertiaTensor() {
	if !rb.IsDynamic || rb.Mass <= 0 {
		rb.InertiaTensor = mathutil.Zero3
		return
	}
	rb.InertiaTensor = rb.Collider.ComputeInertia(rb.Mass)
}

// UpdateCenterOfGravity biases a box's center of gravity 20% of its largest
// half-extent toward the dominant axis (down if tallest, +X if widest, +Z
// if deepest); spheres and any other shape are centered.
func (rb *RigidBody) UpdateCenterOfGravity() {
	if rb.Collider.Kind != ShapeBox {
		rb.CenterOfGravity = mathutil.Zero3
		return
	}

	he := rb.Collider.HalfExtents
	hx, hy, hz := he.X(), he.Y(), he.Z()

	switch {
	case hy >= hx && hy >= hz:
		rb.CenterOfGravity = mathutil.Vec3{0, -0.2 * hy, 0}
	case hx >= hy && hx >= hz:
		rb.CenterOfGravity = mathutil.Vec3{0.2 * hx, 0, 0}
	default:
		rb.CenterOfGravity = mathutil.Vec3{0, 0, 0.2 * hz}
	}
}

// IsSleeping reports whether the body is currently in the Sleeping state.
func (rb *RigidBody) IsSleeping() bool {
	return rb.sleepState == Sleeping
}

// Wake transitions the body to Awake and resets its stillness timer. Any
// external force, impulse or torque wakes the body.
func (rb *RigidBody) Wake() {
	rb.sleepState = Awake
	rb.SleepTimer = 0
}

// sleep transitions the body to Sleeping and zeroes both velocities, per
// the invariant that sleeping bodies always have zero velocity.
func (rb *RigidBody) sleep() {
	rb.sleepState = Sleeping
	rb.SleepTimer = 0
	rb.Velocity = mathutil.Zero3
	rb.AngularVelocity = mathutil.Zero3
}

// AdvanceSleepTimer runs one tick of the sleep state machine: if both
// velocities stay under the threshold continuously for more than 2 seconds
// the body falls asleep; any excess speed wakes it and resets the timer.
func (rb *RigidBody) AdvanceSleepTimer(dt float64) {
	if !rb.IsDynamic {
		return
	}
	if rb.Velocity.Len() < rb.SleepThreshold && rb.AngularVelocity.Len() < rb.SleepThreshold {
		rb.SleepTimer += dt
		if rb.SleepTimer > sleepStillDuration {
			rb.sleep()
		}
	} else {
		rb.SleepTimer = 0
		rb.sleepState = Awake
	}
}

// ApplyForce treats f as one step's worth of acceleration impulse:
// velocity += f / mass. No-op for static or zero-mass bodies.
func (rb *RigidBody) ApplyForce(f mathutil.Vec3) {
	if !rb.IsDynamic || rb.Mass <= 0 {
		return
	}
	rb.Wake()
	rb.Velocity = rb.Velocity.Add(f.Mul(rb.InverseMass()))
}

// ApplyImpulse adds j/mass to the body's velocity. No-op for static or
// zero-mass bodies.
func (rb *RigidBody) ApplyImpulse(j mathutil.Vec3) {
	if !rb.IsDynamic || rb.Mass <= 0 {
		return
	}
	rb.Wake()
	rb.Velocity = rb.Velocity.Add(j.Mul(rb.InverseMass()))
}

// ApplyTorque adds tau/inertia (componentwise, in body space) to the
// body's angular velocity. No-op for static bodies.
func (rb *RigidBody) ApplyTorque(tau mathutil.Vec3) {
	if !rb.IsDynamic {
		return
	}
	rb.Wake()
	invI := rb.InverseInertia()
	rb.AngularVelocity = rb.AngularVelocity.Add(mathutil.Vec3{
		tau.X() * invI.X(),
		tau.Y() * invI.Y(),
		tau.Z() * invI.Z(),
	})
}
