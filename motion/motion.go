// Package motion runs the post-solve integration pass: gravity, surface
// projection for grounded bodies, pose integration, damping, the sleep
// timer, and upright-tilt correction. It runs once per World.Step after
// the solvers clear.
package motion

import (
	"math"

	"github.com/go-feather/rigidcore/actor"
	"github.com/go-feather/rigidcore/mathutil"
)

// Params bundles the tunables Run needs that don't live on RigidBody
// itself: the world's gravity vector, the tilt-correction cadence, and
// the damping coefficients. These are empirically tuned and exposed as
// world tunables rather than hardcoded literals.
type Params struct {
	Gravity mathutil.Vec3

	// TiltInterval is how often (in seconds) the tilt pass runs per body;
	// 0.05s (20Hz) is a typical cadence.
	TiltInterval float64

	DampingLinear          float64
	DampingAngularBase     float64
	DampingAngularNearFlat float64 // extra factor while 2 deg <= angle_to_flat < 15 deg
	DampingAngularNearZero float64 // extra factor while |omega|^2 < slowAngularThreshold
}

const (
	slowAngularThreshold = 0.0025

	tiltEngageDegrees = 1.0
	tiltFastDegrees   = 15.0
	tiltSlowDegrees   = 2.0
	tiltSnapOmegaSq   = 0.01
	tiltTorqueScale   = 5.0
)

// Run advances every dynamic, non-sleeping body with a collider through
// one post-solve motion step: gravity, surface projection, pose
// integration, damping, the sleep timer, and (throttled) tilt
// correction.
func Run(bodies []*actor.RigidBody, dt float64, params Params) {
	for _, rb := range bodies {
		step(rb, dt, params)
	}
}

func step(rb *actor.RigidBody, dt float64, params Params) {
	if !rb.IsDynamic || rb.IsSleeping() {
		return
	}

	applyGravity(rb, dt, params.Gravity)
	projectOntoSurface(rb)
	integratePose(rb, dt)
	applyDamping(rb, dt, params)
	rb.AdvanceSleepTimer(dt)

	rb.TiltTimer += dt
	if rb.TiltTimer >= params.TiltInterval {
		rb.TiltTimer = 0
		if angle, closestUp, ok := evaluateTilt(rb); ok {
			applyTilt(rb, angle, closestUp)
		}
	}
}

// applyGravity adds gravity * gravity_factor * dt straight to Velocity.
// It deliberately bypasses RigidBody.ApplyImpulse, which calls Wake and
// would reset SleepTimer to 0 every step — since this runs on every
// UseGravity body every frame, that would reset the stillness timer
// before AdvanceSleepTimer ever sees it accumulate, and a settled body
// could never fall asleep.
func applyGravity(rb *actor.RigidBody, dt float64, gravity mathutil.Vec3) {
	if !rb.UseGravity {
		return
	}
	rb.Velocity = rb.Velocity.Add(gravity.Mul(rb.GravityFactor * dt))
}

// projectOntoSurface removes the velocity component pushing a grounded
// body into its ground plane, leaving any lateral (sliding) component
// untouched.
func projectOntoSurface(rb *actor.RigidBody) {
	if !rb.Collider.Grounded {
		return
	}
	n := rb.Collider.GroundNormal
	into := mathutil.Dot(rb.Velocity, n)
	if into < 0 {
		rb.Velocity = rb.Velocity.Sub(n.Mul(into))
	}
}

// integratePose applies semi-implicit Euler for position and quaternion
// spin integration for orientation.
func integratePose(rb *actor.RigidBody, dt float64) {
	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))

	if mathutil.Dot(rb.AngularVelocity, rb.AngularVelocity) > 1e-6 {
		spin := mathutil.Quat{W: 0, V: rb.AngularVelocity}
		delta := spin.Mul(rb.Transform.Rotation).Scale(0.5 * dt)
		rb.Transform.Rotation = rb.Transform.Rotation.Add(delta).Normalize()
	}
}

// applyDamping applies the linear damping curve and the tiered angular
// damping curve (flat-angle band, low-angular-velocity band, base decay).
func applyDamping(rb *actor.RigidBody, dt float64, params Params) {
	rb.Velocity = rb.Velocity.Mul(math.Pow(params.DampingLinear, dt*60.0))

	if rb.AngleToFlat >= tiltSlowDegrees && rb.AngleToFlat < tiltFastDegrees {
		rb.AngularVelocity = rb.AngularVelocity.Mul(params.DampingAngularNearFlat)
	}
	if mathutil.Dot(rb.AngularVelocity, rb.AngularVelocity) < slowAngularThreshold {
		rb.AngularVelocity = rb.AngularVelocity.Mul(params.DampingAngularNearZero)
	} else {
		rb.AngularVelocity = rb.AngularVelocity.Mul(math.Pow(params.DampingAngularBase, dt*60.0))
	}
}

// evaluateTilt finds the body axis closest to world up and reports the
// angle between them, if it exceeds the engagement threshold.
func evaluateTilt(rb *actor.RigidBody) (angleDegrees float64, closestUp mathutil.Vec3, engage bool) {
	candidates := [6]mathutil.Vec3{
		rb.Transform.Rotation.Rotate(mathutil.Vec3{0, 1, 0}),
		rb.Transform.Rotation.Rotate(mathutil.Vec3{0, -1, 0}),
		rb.Transform.Rotation.Rotate(mathutil.Vec3{1, 0, 0}),
		rb.Transform.Rotation.Rotate(mathutil.Vec3{-1, 0, 0}),
		rb.Transform.Rotation.Rotate(mathutil.Vec3{0, 0, 1}),
		rb.Transform.Rotation.Rotate(mathutil.Vec3{0, 0, -1}),
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if math.Abs(mathutil.Dot(c, mathutil.Up)) > math.Abs(mathutil.Dot(best, mathutil.Up)) {
			best = c
		}
	}

	rb.ClosestUp = best
	angle := mathutil.DegreesBetween(best, mathutil.Up)
	rb.AngleToFlat = angle

	return angle, best, angle > tiltEngageDegrees
}

// applyTilt computes the correction torque toward upright and applies
// it, or snaps rotation flat once the body is nearly upright and nearly
// still.
func applyTilt(rb *actor.RigidBody, angleToFlat float64, closestUp mathutil.Vec3) {
	axis := mathutil.Cross(closestUp, mathutil.Up)
	if mathutil.Dot(axis, axis) < 1e-10 {
		axis = mathutil.Vec3{1, 0, 0}
	} else {
		axis = mathutil.Normalize(axis)
	}

	scale := mathutil.Clamp(angleToFlat/tiltFastDegrees, 0, 1)
	torque := axis.Mul(scale * tiltTorqueScale)

	switch {
	case angleToFlat >= tiltFastDegrees:
		rb.ApplyTorque(torque)
	case angleToFlat >= tiltSlowDegrees:
		rb.ApplyTorque(torque.Mul(1.25))
	case mathutil.Dot(rb.AngularVelocity, rb.AngularVelocity) < tiltSnapOmegaSq:
		rb.AngularVelocity = mathutil.Zero3
		rb.Transform.Rotation = rb.Transform.Rotation.Normalize()
	}
}
