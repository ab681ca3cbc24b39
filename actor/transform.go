package actor

import "github.com/go-feather/rigidcore/mathutil"

// Transform is a body's pose: world position and unit orientation.
type Transform struct {
	Position mathutil.Vec3
	Rotation mathutil.Quat
}

// NewTransform returns the identity transform at the origin.
func NewTransform() Transform {
	return Transform{
		Position: mathutil.Zero3,
		Rotation: mathutil.IdentityQuat(),
	}
}
