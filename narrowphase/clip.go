package narrowphase

import "github.com/go-feather/rigidcore/mathutil"

// clipFaceAgainstPlane clips a (possibly non-convex-closed) polygon against
// a half-space {x : dot(planeNormal, x) <= planeOffset}, Sutherland-Hodgman
// style. Vertices on or behind the plane are kept; edges crossing the plane
// are cut at their intersection point.
func clipFaceAgainstPlane(face []mathutil.Vec3, planeNormal mathutil.Vec3, planeOffset float64) []mathutil.Vec3 {
	if len(face) == 0 {
		return nil
	}

	var clipped []mathutil.Vec3

	prev := face[len(face)-1]
	prevDist := mathutil.Dot(planeNormal, prev) - planeOffset

	for _, curr := range face {
		currDist := mathutil.Dot(planeNormal, curr) - planeOffset

		switch {
		case currDist <= 0:
			if prevDist > 0 {
				t := prevDist / (prevDist - currDist)
				clipped = append(clipped, lerp(prev, curr, t))
			}
			clipped = append(clipped, curr)
		case prevDist <= 0:
			t := prevDist / (prevDist - currDist)
			clipped = append(clipped, lerp(prev, curr, t))
		}

		prev = curr
		prevDist = currDist
	}

	return clipped
}

func lerp(a, b mathutil.Vec3, t float64) mathutil.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
