package feather

import (
	"math"
	"sort"

	"github.com/go-feather/rigidcore/actor"
	"github.com/go-feather/rigidcore/mathutil"
)

// cellKey identifies one cell of a uniform spatial hash grid.
type cellKey struct {
	X, Y, Z int
}

// bodyPair is a candidate pair of bodies produced by either the O(N²)
// scan or the spatial grid; World.findPairs runs its skip-if chain over
// whichever of these produced it.
type bodyPair struct {
	A, B *actor.RigidBody
}

// SpatialGrid is a uniform spatial hash used to cut down the O(N²)
// candidate-pair scan once the prospective pair count crosses
// Tunables.CollisionThreshold. Each body occupies every cell its
// bounding sphere overlaps; FindPairs walks those cells and reports
// index-ordered candidates exactly once.
type SpatialGrid struct {
	cellSize float64
	cells    map[cellKey][]int
}

// NewSpatialGrid builds an empty grid with the given cell size.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

func (sg *SpatialGrid) worldToCell(pos mathutil.Vec3) cellKey {
	return cellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// Clear empties every cell, ready for the next step's Insert pass.
func (sg *SpatialGrid) Clear() {
	for k := range sg.cells {
		delete(sg.cells, k)
	}
}

// Insert registers body index i into every cell its bounding sphere
// touches.
func (sg *SpatialGrid) Insert(i int, body *actor.RigidBody) {
	r := body.Collider.BoundingRadius
	pos := body.Transform.Position
	min := sg.worldToCell(pos.Sub(mathutil.Vec3{r, r, r}))
	max := sg.worldToCell(pos.Add(mathutil.Vec3{r, r, r}))

	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				k := cellKey{x, y, z}
				sg.cells[k] = append(sg.cells[k], i)
			}
		}
	}
}

// FindPairs reports every (i, j) with i < j that share at least one
// cell, each pair exactly once. The caller still runs the exact radius
// cull and the rest of the skip-if chain; this only narrows the
// candidate set.
func (sg *SpatialGrid) FindPairs(bodies []*actor.RigidBody) []bodyPair {
	seen := make(map[[2]int]bool)
	pairs := make([]bodyPair, 0, len(bodies))

	for _, indices := range sg.cells {
		if len(indices) < 2 {
			continue
		}
		sorted := append([]int(nil), indices...)
		sort.Ints(sorted)

		for a := 0; a < len(sorted); a++ {
			for b := a + 1; b < len(sorted); b++ {
				key := [2]int{sorted[a], sorted[b]}
				if seen[key] {
					continue
				}
				seen[key] = true
				pairs = append(pairs, bodyPair{A: bodies[sorted[a]], B: bodies[sorted[b]]})
			}
		}
	}

	return pairs
}
