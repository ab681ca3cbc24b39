package feather

import "github.com/go-feather/rigidcore/mathutil"

// Ray is a ray-query parameter set: an origin, a normalized direction,
// and the maximum distance along it worth testing.
type Ray struct {
	Origin      mathutil.Vec3
	Direction   mathutil.Vec3
	MaxDistance float64
}

// RayHit reports where a Ray struck a body: the handle, the world-space
// hit point and surface normal, and the distance traveled.
type RayHit struct {
	Body     Handle
	Point    mathutil.Vec3
	Normal   mathutil.Vec3
	Distance float64
}

// RayCaster is the ray-query surface a World could expose once swept
// box/sphere intersection lands in narrowphase. It is declared here as an
// interface only; no implementation ships, since nothing in this module
// yet performs ray-versus-collider intersection.
type RayCaster interface {
	// HitAny returns the closest body the ray strikes within MaxDistance,
	// if any.
	HitAny(r Ray) (RayHit, bool)
	// HitCollider tests the ray against a single body by handle.
	HitCollider(r Ray, h Handle) (RayHit, bool)
}
