// Package feather is a fixed-step 3D rigid-body dynamics core: oriented
// box/sphere narrowphase, a sequential-impulse contact+friction solver
// with Baumgarte stabilization and warm starting, and a post-solve
// integration pipeline (gravity, surface projection, Euler+quaternion
// integration, damping, sleep, upright-tilt correction).
package feather

import (
	"fmt"

	"github.com/go-feather/rigidcore/actor"
	"github.com/go-feather/rigidcore/constraint"
	"github.com/go-feather/rigidcore/mathutil"
	"github.com/go-feather/rigidcore/motion"
	"github.com/go-feather/rigidcore/narrowphase"
)

// maxGravity bounds the componentwise magnitude SetGravity will accept.
const maxGravity = 100.0

// Tunables holds every knob World.Step consults.
type Tunables struct {
	Gravity mathutil.Vec3

	// AngleLimitDegrees is the maximum angle between a contact normal and
	// world up for Step to mark a body grounded.
	AngleLimitDegrees float64

	BaumgarteFactor    float64
	Slop               float64
	FrictionMultiplier float64

	SolverIterations int

	// CollisionThreshold is the prospective-pair count past which
	// Update grows the substep count (and switches pair-finding to the
	// spatial grid, see SpatialGrid below).
	CollisionThreshold int
	SubstepGrowth      int
	MaxSubsteps        int

	TiltIntervalSeconds float64

	DampingLinear          float64
	DampingAngularBase     float64
	DampingAngularNearFlat float64
	DampingAngularNearZero float64
}

// DefaultTunables returns the stock tuning values used when a World is
// built without an overriding config.
func DefaultTunables() Tunables {
	return Tunables{
		Gravity:                mathutil.Vec3{0, -9.81, 0},
		AngleLimitDegrees:      45.0,
		BaumgarteFactor:        0.2,
		Slop:                   0.01,
		FrictionMultiplier:     1.0,
		SolverIterations:       10,
		CollisionThreshold:     64,
		SubstepGrowth:          1,
		MaxSubsteps:            8,
		TiltIntervalSeconds:    0.05,
		DampingLinear:          0.99,
		DampingAngularBase:     0.95,
		DampingAngularNearFlat: 0.90,
		DampingAngularNearZero: 0.85,
	}
}

// World owns every body in the simulation plus the tunables and
// supporting tables World.Step consults each tick.
type World struct {
	Tunables Tunables
	Layers   *LayerTable
	Logger   Logger

	// OnForceClose, if set, is invoked by ForceClose before it panics.
	OnForceClose func(target string, reason error)

	bodies map[Handle]*actor.RigidBody
	order  []Handle // insertion order, for the deterministic pairwise loop

	grid *SpatialGrid

	contactSolver  *constraint.ContactSolver
	frictionSolver *constraint.FrictionSolver
}

// NewWorld builds an empty world with default tunables. A nil logger
// falls back to a no-op sink.
func NewWorld(logger Logger) *World {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &World{
		Tunables: DefaultTunables(),
		Layers:   NewLayerTable(logger),
		Logger:   logger,
		bodies:   make(map[Handle]*actor.RigidBody),
	}
}

// SetGravity assigns the world's gravity, clamping X and Z to
// [0, maxGravity] and Y to [-maxGravity, 0]; a negative X or Z, or a
// positive Y, becomes 0.
func (w *World) SetGravity(v mathutil.Vec3) {
	w.Tunables.Gravity = mathutil.Vec3{
		mathutil.Clamp(v.X(), 0, maxGravity),
		mathutil.Clamp(v.Y(), -maxGravity, 0),
		mathutil.Clamp(v.Z(), 0, maxGravity),
	}
}

// CreateBody constructs a RigidBody from spec, assigns it a fresh
// Handle, and adds it to the world.
func (w *World) CreateBody(spec actor.BodySpec) Handle {
	h := newHandle()
	w.bodies[h] = actor.NewRigidBody(spec)
	w.order = append(w.order, h)
	return h
}

// RemoveBody deletes a body by handle. A miss is logged, not panicked.
func (w *World) RemoveBody(h Handle) {
	if _, ok := w.bodies[h]; !ok {
		w.Logger.Warnf("RemoveBody: handle %q not found", h)
		return
	}
	delete(w.bodies, h)
	for i, oh := range w.order {
		if oh == h {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// GetBody looks up a body by handle.
func (w *World) GetBody(h Handle) (*actor.RigidBody, bool) {
	rb, ok := w.bodies[h]
	return rb, ok
}

// BodyCount returns the number of bodies currently in the world.
func (w *World) BodyCount() int {
	return len(w.order)
}

// ForceClose reports an unrecoverable condition: it runs OnForceClose (if
// set) and then panics. The core never calls os.Exit here, since that
// would prevent a caller from installing its own recover.
func (w *World) ForceClose(target string, reason error) {
	if w.OnForceClose != nil {
		w.OnForceClose(target, reason)
	}
	panic(fmt.Sprintf("feather: force close %s: %v", target, reason))
}

// Update divides dt by substeps (growing that count automatically once
// the number of prospective pairs crosses Tunables.CollisionThreshold,
// capped at Tunables.MaxSubsteps) and runs that many Step calls.
func (w *World) Update(dt float64, substeps int) {
	if substeps < 1 {
		substeps = 1
	}

	pairCount := w.BodyCount() * (w.BodyCount() - 1) / 2
	if pairCount > w.Tunables.CollisionThreshold {
		substeps += w.Tunables.SubstepGrowth
	}
	if substeps > w.Tunables.MaxSubsteps {
		substeps = w.Tunables.MaxSubsteps
	}

	h := dt / float64(substeps)
	for i := 0; i < substeps; i++ {
		w.Step(h)
	}
}

// Step runs one simulation tick: clear grounded flags, detect and
// resolve every surviving pair's contacts, then run the motion pass.
func (w *World) Step(dt float64) {
	if w.contactSolver == nil {
		w.contactSolver = constraint.NewContactSolver(w.solverParams())
		w.frictionSolver = constraint.NewFrictionSolver()
	}
	w.contactSolver.Params = w.solverParams()

	for _, h := range w.order {
		w.bodies[h].Collider.ClearGrounded()
	}

	for _, pair := range w.findPairs() {
		manifold := narrowphase.Generate(pair.A, pair.B)
		if !manifold.Colliding {
			continue
		}
		for _, c := range manifold.Contacts {
			cc := constraint.NewContactConstraint(pair.A, pair.B, c.Point, manifold.Normal, c.Penetration)
			w.contactSolver.Add(cc, dt)

			f1, f2 := constraint.NewFrictionPair(cc, pair.A.Material, pair.B.Material, w.Tunables.FrictionMultiplier)
			w.frictionSolver.Add(f1)
			w.frictionSolver.Add(f2)

			w.markGrounded(pair.A, pair.B, manifold.Normal)
		}
	}

	w.contactSolver.Solve(w.Tunables.SolverIterations)
	w.frictionSolver.Solve(w.Tunables.SolverIterations)
	w.contactSolver.Clear()
	w.frictionSolver.Clear()

	bodies := make([]*actor.RigidBody, 0, len(w.order))
	for _, h := range w.order {
		bodies = append(bodies, w.bodies[h])
	}
	motion.Run(bodies, dt, motion.Params{
		Gravity:                w.Tunables.Gravity,
		TiltInterval:           w.Tunables.TiltIntervalSeconds,
		DampingLinear:          w.Tunables.DampingLinear,
		DampingAngularBase:     w.Tunables.DampingAngularBase,
		DampingAngularNearFlat: w.Tunables.DampingAngularNearFlat,
		DampingAngularNearZero: w.Tunables.DampingAngularNearZero,
	})
}

func (w *World) solverParams() constraint.SolverParams {
	return constraint.SolverParams{
		Beta:               w.Tunables.BaumgarteFactor,
		Slop:               w.Tunables.Slop,
		FrictionMultiplier: w.Tunables.FrictionMultiplier,
	}
}

// markGrounded sets whichever body's up-aligned side matches the
// contact normal as grounded.
func (w *World) markGrounded(a, b *actor.RigidBody, normal mathutil.Vec3) {
	if a.IsDynamic && mathutil.DegreesBetween(normal, mathutil.Up) <= w.Tunables.AngleLimitDegrees {
		a.Collider.Grounded = true
		a.Collider.GroundNormal = normal
		return
	}
	inverted := normal.Mul(-1)
	if b.IsDynamic && mathutil.DegreesBetween(inverted, mathutil.Up) <= w.Tunables.AngleLimitDegrees {
		b.Collider.Grounded = true
		b.Collider.GroundNormal = inverted
	}
}
