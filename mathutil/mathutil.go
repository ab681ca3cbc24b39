// Package mathutil is the scalar math layer the rest of the engine builds
// on: vectors, quaternions and 3x3 matrices. It is a thin alias over
// github.com/go-gl/mathgl's float64 flavor (mgl64) rather than a
// reimplementation, so callers can freely mix feather types with any other
// mgl64-based code.
package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type (
	Vec3 = mgl64.Vec3
	Quat = mgl64.Quat
	Mat3 = mgl64.Mat3
)

// Zero3 is the zero vector, handy as a named default.
var Zero3 = Vec3{0, 0, 0}

// Up is the world up direction used for grounding, tilt and gravity sign checks.
var Up = Vec3{0, 1, 0}

// IdentityQuat returns the identity rotation.
func IdentityQuat() Quat {
	return mgl64.QuatIdent()
}

// Normalize returns v scaled to unit length, or the zero vector if v is
// itself (numerically) zero.
func Normalize(v Vec3) Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Zero3
	}
	return v.Mul(1.0 / l)
}

// Cross returns a x b.
func Cross(a, b Vec3) Vec3 {
	return a.Cross(b)
}

// Dot returns a . b.
func Dot(a, b Vec3) float64 {
	return a.Dot(b)
}

// Length returns |v|.
func Length(v Vec3) float64 {
	return v.Len()
}

// QuatToMat3 converts a unit quaternion to its equivalent rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	return q.Mat4().Mat3()
}

// Clamp clamps x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// DegreesBetween returns the angle, in degrees, between two unit vectors.
func DegreesBetween(a, b Vec3) float64 {
	d := Clamp(a.Dot(b), -1, 1)
	return math.Acos(d) * 180.0 / math.Pi
}
