package feather

import (
	"github.com/go-feather/rigidcore/actor"
	"github.com/go-feather/rigidcore/mathutil"
)

// findPairs returns every surviving ordered pair, run over the body set
// in insertion order. Candidates come from the spatial grid once the
// prospective pair count n(n-1)/2 crosses Tunables.CollisionThreshold,
// otherwise from the plain
// O(N^2) scan; either way the same skip-if chain decides survival.
func (w *World) findPairs() []bodyPair {
	bodies := make([]*actor.RigidBody, 0, len(w.order))
	for _, h := range w.order {
		bodies = append(bodies, w.bodies[h])
	}

	var candidates []bodyPair
	n := len(bodies)
	if n*(n-1)/2 > w.Tunables.CollisionThreshold {
		candidates = w.gridPairs(bodies)
	} else {
		candidates = make([]bodyPair, 0, n*(n-1)/2)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				candidates = append(candidates, bodyPair{A: bodies[i], B: bodies[j]})
			}
		}
	}

	survivors := candidates[:0]
	for _, pair := range candidates {
		if w.pairSurvives(pair.A, pair.B) {
			survivors = append(survivors, pair)
		}
	}
	return survivors
}

func (w *World) gridPairs(bodies []*actor.RigidBody) []bodyPair {
	if w.grid == nil {
		w.grid = NewSpatialGrid(4.0)
	}
	w.grid.Clear()
	for i, b := range bodies {
		w.grid.Insert(i, b)
	}
	return w.grid.FindPairs(bodies)
}

// pairSurvives runs the exact skip-if chain: both sleeping, no collider
// (collider is always present in this engine, so this is a no-op here),
// neither dynamic nor gravity-affected, radius cull, layer rule.
func (w *World) pairSurvives(a, b *actor.RigidBody) bool {
	if a.IsSleeping() && b.IsSleeping() {
		return false
	}
	if !a.IsDynamic && !a.UseGravity && !b.IsDynamic && !b.UseGravity {
		return false
	}

	maxDistance := a.Collider.BoundingRadius + b.Collider.BoundingRadius
	distSq := mathutil.Dot(
		a.Transform.Position.Sub(b.Transform.Position),
		a.Transform.Position.Sub(b.Transform.Position),
	)
	if distSq > maxDistance*maxDistance {
		return false
	}

	if a.Layer != "" && b.Layer != "" && !w.Layers.CanCollide(a.Layer, b.Layer) {
		return false
	}

	return true
}
