package actor

import "github.com/go-feather/rigidcore/mathutil"

// ShapeKind identifies which variant of Collider is active. Only box and
// sphere are implemented; the source engine this was distilled from also
// carries capsule, k-DOP and convex-hull variants whose Initialize() never
// got past returning nil, so they are not reproduced here.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
)

// Collider is the collision shape owned by a RigidBody. It is a value type
// (no separate identity, no pointer back to its body) dispatched by Kind
// rather than through an interface, since only two variants exist.
type Collider struct {
	Kind        ShapeKind
	HalfExtents mathutil.Vec3 // valid when Kind == ShapeBox
	Radius      float64       // valid when Kind == ShapeSphere

	// BoundingRadius is always >= the distance from the collider's local
	// origin to its farthest point, used by the broadphase radius cull.
	BoundingRadius float64

	// Grounded and GroundNormal are cleared at the start of every step and
	// set by the step driver when a contact with a near-up normal is found.
	Grounded     bool
	GroundNormal mathutil.Vec3
}

// NewBoxCollider builds a box collider from half-extents.
func NewBoxCollider(halfExtents mathutil.Vec3) Collider {
	return Collider{
		Kind:           ShapeBox,
		HalfExtents:    halfExtents,
		BoundingRadius: halfExtents.Len(),
		GroundNormal:   mathutil.Up,
	}
}

// NewSphereCollider builds a sphere collider from a radius.
func NewSphereCollider(radius float64) Collider {
	return Collider{
		Kind:           ShapeSphere,
		Radius:         radius,
		BoundingRadius: radius,
		GroundNormal:   mathutil.Up,
	}
}

// ClearGrounded resets the per-step grounded state. Called once per body at
// the start of every World.Step before narrowphase runs.
func (c *Collider) ClearGrounded() {
	c.Grounded = false
	c.GroundNormal = mathutil.Up
}

// ComputeMass returns the mass this collider would have at the given
// density. Box volume is 8*hx*hy*hz; sphere volume is (4/3)*pi*r^3.
func (c *Collider) ComputeMass(density float64) float64 {
	switch c.Kind {
	case ShapeBox:
		volume := 8.0 * c.HalfExtents.X() * c.HalfExtents.Y() * c.HalfExtents.Z()
		return density * volume
	case ShapeSphere:
		return density * sphereVolume(c.Radius)
	default:
		return 0
	}
}

func sphereVolume(r float64) float64 {
	const fourThirdsPi = 4.0 / 3.0 * 3.14159265358979323846
	return fourThirdsPi * r * r * r
}

// ComputeInertia returns the diagonal of the body-space inertia tensor for
// the given mass.
//
//	Box:    I = m * (hy^2+hz^2, hx^2+hz^2, hx^2+hy^2) / 12
//	Sphere: I = (2/5) * m * r^2 on all three axes
func (c *Collider) ComputeInertia(mass float64) mathutil.Vec3 {
	switch c.Kind {
	case ShapeBox:
		hx, hy, hz := c.HalfExtents.X(), c.HalfExtents.Y(), c.HalfExtents.Z()
		return mathutil.Vec3{
			mass * (hy*hy + hz*hz) / 12.0,
			mass * (hx*hx + hz*hz) / 12.0,
			mass * (hx*hx + hy*hy) / 12.0,
		}
	case ShapeSphere:
		i := (2.0 / 5.0) * mass * c.Radius * c.Radius
		return mathutil.Vec3{i, i, i}
	default:
		return mathutil.Vec3{}
	}
}
