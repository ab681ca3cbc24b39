// Package narrowphase generates contact manifolds for the two collider
// kinds feather supports: oriented boxes and spheres. Sphere-sphere and
// box-sphere use closed-form formulas; box-box uses the Separating Axis
// Theorem followed by Sutherland-Hodgman face clipping.
package narrowphase

import (
	"sort"

	"github.com/go-feather/rigidcore/actor"
	"github.com/go-feather/rigidcore/mathutil"
)

// Contact is a single point of a ContactManifold: world-space position,
// the manifold's shared normal, and non-negative penetration depth.
type Contact struct {
	Point       mathutil.Vec3
	Normal      mathutil.Vec3
	Penetration float64
}

// ContactManifold is the result of testing one pair of bodies. Normal and
// every Contact.Normal point from body A toward body B.
type ContactManifold struct {
	Colliding bool
	Normal    mathutil.Vec3
	Contacts  []Contact
}

// Generate dispatches to the sphere-sphere, box-sphere or box-box routine
// based on each body's collider kind and returns the resulting manifold.
func Generate(a, b *actor.RigidBody) ContactManifold {
	aBox := a.Collider.Kind == actor.ShapeBox
	bBox := b.Collider.Kind == actor.ShapeBox

	switch {
	case !aBox && !bBox:
		return sphereSphere(a, b)
	case aBox && bBox:
		return boxBox(a, b)
	case aBox && !bBox:
		return boxSphere(a, b, false)
	default:
		return boxSphere(b, a, true)
	}
}

func sphereSphere(a, b *actor.RigidBody) ContactManifold {
	delta := b.Transform.Position.Sub(a.Transform.Position)
	r := a.Collider.Radius + b.Collider.Radius

	if mathutil.Dot(delta, delta) > r*r {
		return ContactManifold{}
	}

	dist := delta.Len()
	normal := mathutil.Up
	if dist > 1e-5 {
		normal = delta.Mul(1.0 / dist)
	}

	point := a.Transform.Position.Add(normal.Mul(a.Collider.Radius))
	return ContactManifold{
		Colliding: true,
		Normal:    normal,
		Contacts: []Contact{{
			Point:       point,
			Normal:      normal,
			Penetration: r - dist,
		}},
	}
}

// boxSphere handles one box-sphere pair. When swapped is true, box is
// actually body B and sphere is body A, so the result's normal (which must
// point from A to B) is flipped before returning.
func boxSphere(box, sphere *actor.RigidBody, swapped bool) ContactManifold {
	rot := mathutil.QuatToMat3(box.Transform.Rotation)
	rel := sphere.Transform.Position.Sub(box.Transform.Position)

	local := mathutil.Vec3{
		mathutil.Dot(rel, rot.Col(0)),
		mathutil.Dot(rel, rot.Col(1)),
		mathutil.Dot(rel, rot.Col(2)),
	}

	he := box.Collider.HalfExtents
	closestLocal := mathutil.Vec3{
		mathutil.Clamp(local.X(), -he.X(), he.X()),
		mathutil.Clamp(local.Y(), -he.Y(), he.Y()),
		mathutil.Clamp(local.Z(), -he.Z(), he.Z()),
	}

	closestWorld := box.Transform.Position.
		Add(rot.Col(0).Mul(closestLocal.X())).
		Add(rot.Col(1).Mul(closestLocal.Y())).
		Add(rot.Col(2).Mul(closestLocal.Z()))

	delta := sphere.Transform.Position.Sub(closestWorld)
	distSq := mathutil.Dot(delta, delta)
	r := sphere.Collider.Radius

	if distSq > r*r {
		return ContactManifold{}
	}

	dist := delta.Len()
	normal := mathutil.Up
	if dist > 1e-5 {
		normal = delta.Mul(1.0 / dist)
	}
	penetration := r - dist

	if swapped {
		normal = normal.Mul(-1)
	}

	return ContactManifold{
		Colliding: true,
		Normal:    normal,
		Contacts: []Contact{{
			Point:       closestWorld,
			Normal:      normal,
			Penetration: penetration,
		}},
	}
}

func comp(v mathutil.Vec3, i int) float64 {
	switch i {
	case 0:
		return v.X()
	case 1:
		return v.Y()
	default:
		return v.Z()
	}
}

// satAxis is one candidate separating axis: its (not necessarily unit)
// direction and the priority it is tested in, used by the tie-break rule.
type satAxis struct {
	dir      mathutil.Vec3
	priority int
}

// boxBox runs the 15-axis SAT test, then Sutherland-Hodgman clips the
// incident face of the losing box against the reference face of the
// winning box to build up to 4 contacts.
func boxBox(a, b *actor.RigidBody) ContactManifold {
	centerA, centerB := a.Transform.Position, b.Transform.Position
	extA, extB := a.Collider.HalfExtents, b.Collider.HalfExtents

	rotA := mathutil.QuatToMat3(a.Transform.Rotation)
	rotB := mathutil.QuatToMat3(b.Transform.Rotation)

	var r, absR [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = mathutil.Dot(rotA.Col(i), rotB.Col(j))
			absR[i][j] = abs(r[i][j]) + 1e-6
		}
	}

	delta := centerB.Sub(centerA)
	t := [3]float64{
		mathutil.Dot(delta, rotA.Col(0)),
		mathutil.Dot(delta, rotA.Col(1)),
		mathutil.Dot(delta, rotA.Col(2)),
	}
	eA := [3]float64{comp(extA, 0), comp(extA, 1), comp(extA, 2)}
	eB := [3]float64{comp(extB, 0), comp(extB, 1), comp(extB, 2)}

	bestOverlap := -1.0
	var bestAxis mathutil.Vec3
	bestPriority := -1

	consider := func(overlap float64, axis mathutil.Vec3, priority float64) bool {
		if overlap < 0 {
			return false
		}
		if bestPriority < 0 || overlap < bestOverlap-1e-6 {
			bestOverlap = overlap
			bestAxis = axis
			bestPriority = int(priority)
		}
		return true
	}

	// 3 face axes of A.
	for i := 0; i < 3; i++ {
		ra := eA[i]
		rb := eB[0]*absR[i][0] + eB[1]*absR[i][1] + eB[2]*absR[i][2]
		dist := abs(t[i])
		overlap := ra + rb - dist
		if overlap < 0 {
			return ContactManifold{}
		}
		axis := rotA.Col(i)
		if t[i] < 0 {
			axis = axis.Mul(-1)
		}
		consider(overlap, axis, float64(i))
	}

	// 3 face axes of B.
	for j := 0; j < 3; j++ {
		ra := eA[0]*absR[0][j] + eA[1]*absR[1][j] + eA[2]*absR[2][j]
		rb := eB[j]
		proj := t[0]*r[0][j] + t[1]*r[1][j] + t[2]*r[2][j]
		dist := abs(proj)
		overlap := ra + rb - dist
		if overlap < 0 {
			return ContactManifold{}
		}
		axis := rotB.Col(j)
		if proj < 0 {
			axis = axis.Mul(-1)
		}
		consider(overlap, axis, float64(3+j))
	}

	// 9 cross-product axes, u_i x v_j.
	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3

			ra := eA[i1]*absR[i2][j] + eA[i2]*absR[i1][j]
			rb := eB[j1]*absR[i][j2] + eB[j2]*absR[i][j1]
			proj := t[i2]*r[i1][j] - t[i1]*r[i2][j]

			axis := mathutil.Cross(rotA.Col(i), rotB.Col(j))
			length := axis.Len()
			if length < 1e-6 {
				// Near-parallel edges: this axis cannot discriminate, skip it.
				continue
			}
			ra /= length
			rb /= length
			dist := abs(proj) / length
			overlap := ra + rb - dist
			if overlap < 0 {
				return ContactManifold{}
			}
			dirAxis := axis.Mul(1.0 / length)
			if proj < 0 {
				dirAxis = dirAxis.Mul(-1)
			}
			consider(overlap, dirAxis, float64(6+i*3+j))
		}
	}

	if bestPriority < 0 {
		return ContactManifold{}
	}

	// Sign-correct toward B per the fixed normal convention.
	axis := bestAxis
	if mathutil.Dot(axis, delta) < 0 {
		axis = axis.Mul(-1)
	}

	return clipBoxBox(a, b, rotA, rotB, extA, extB, axis)
}

// clipBoxBox picks the reference/incident faces for separating axis and
// produces contacts by clipping the incident face against the reference
// face's supporting plane and its four side planes.
func clipBoxBox(a, b *actor.RigidBody, rotA, rotB mathutil.Mat3, extA, extB mathutil.Vec3, axis mathutil.Vec3) ContactManifold {
	centerA, centerB := a.Transform.Position, b.Transform.Position

	flip := mathutil.Dot(axis, centerB.Sub(centerA)) < 0

	refCenter, incCenter := centerA, centerB
	refRot, incRot := rotA, rotB
	refExt, incExt := extA, extB
	if flip {
		refCenter, incCenter = centerB, centerA
		refRot, incRot = rotB, rotA
		refExt, incExt = extB, extA
	}

	refNormal := axis
	if flip {
		refNormal = axis.Mul(-1)
	}

	bestRefFace := 0
	maxDot := mathutil.Dot(refRot.Col(0), refNormal)
	for i := 1; i < 3; i++ {
		d := mathutil.Dot(refRot.Col(i), refNormal)
		if d > maxDot {
			maxDot = d
			bestRefFace = i
		}
	}

	worldNormal := refRot.Col(bestRefFace)
	if mathutil.Dot(worldNormal, refNormal) < 0 {
		worldNormal = worldNormal.Mul(-1)
	}

	refExtComp := comp(refExt, bestRefFace)
	planeOffset := mathutil.Dot(worldNormal, refCenter.Add(worldNormal.Mul(refExtComp)))

	bestIncFace := 0
	negRefNormal := refNormal.Mul(-1)
	minDot := mathutil.Dot(incRot.Col(0), negRefNormal)
	for i := 1; i < 3; i++ {
		d := mathutil.Dot(incRot.Col(i), negRefNormal)
		if d < minDot {
			minDot = d
			bestIncFace = i
		}
	}

	incU, incV := (bestIncFace+1)%3, (bestIncFace+2)%3
	axisU := incRot.Col(incU)
	axisV := incRot.Col(incV)
	extU := comp(incExt, incU)
	extV := comp(incExt, incV)
	faceCenter := incCenter.Sub(incRot.Col(bestIncFace).Mul(comp(incExt, bestIncFace)))

	incidentFace := []mathutil.Vec3{
		faceCenter.Add(axisU.Mul(extU)).Add(axisV.Mul(extV)),
		faceCenter.Sub(axisU.Mul(extU)).Add(axisV.Mul(extV)),
		faceCenter.Sub(axisU.Mul(extU)).Sub(axisV.Mul(extV)),
		faceCenter.Add(axisU.Mul(extU)).Sub(axisV.Mul(extV)),
	}

	clipped := clipFaceAgainstPlane(incidentFace, worldNormal, planeOffset)
	if len(clipped) == 0 {
		return ContactManifold{}
	}

	refU := refRot.Col((bestRefFace + 1) % 3)
	refV := refRot.Col((bestRefFace + 2) % 3)
	uExtent := comp(refExt, (bestRefFace+1)%3)
	vExtent := comp(refExt, (bestRefFace+2)%3)

	clipped = clipFaceAgainstPlane(clipped, refU.Mul(-1), -mathutil.Dot(refU, refCenter.Sub(refU.Mul(uExtent))))
	clipped = clipFaceAgainstPlane(clipped, refU, mathutil.Dot(refU, refCenter.Add(refU.Mul(uExtent))))
	clipped = clipFaceAgainstPlane(clipped, refV.Mul(-1), -mathutil.Dot(refV, refCenter.Sub(refV.Mul(vExtent))))
	clipped = clipFaceAgainstPlane(clipped, refV, mathutil.Dot(refV, refCenter.Add(refV.Mul(vExtent))))

	var contacts []Contact
	for _, pt := range clipped {
		depth := mathutil.Dot(worldNormal, pt) - planeOffset
		if depth <= 0 {
			contacts = append(contacts, Contact{
				Point:       pt,
				Normal:      refNormal,
				Penetration: -depth,
			})
		}
	}

	if len(contacts) == 0 {
		return ContactManifold{}
	}

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].Penetration > contacts[j].Penetration
	})
	if len(contacts) > 4 {
		contacts = contacts[:4]
	}

	return ContactManifold{
		Colliding: true,
		Normal:    refNormal,
		Contacts:  contacts,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
