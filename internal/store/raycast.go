package store

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxl/internal/chunk"
	"voxl/internal/profiling"
)

// RaycastResult stores the result of a raycast. Positions are world cells
// in (x, y, z) order. Like placements, cell (x, y, z) is the unit cube
// centred on that point.
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// Raycast walks the cells crossed by the ray from origin along dir and
// returns the first published cell accepted by solid within maxDist.
// AdjacentPosition is the cell visited just before the hit; it equals
// HitPosition when the origin itself is solid. Unpublished chunks are
// treated as empty, so the walk also ends once the ray has left the box of
// published chunks for good. maxDist may be +Inf.
func (v *View[A, C]) Raycast(origin, dir mgl32.Vec3, maxDist float32, solid func(C) bool) RaycastResult {
	defer profiling.Track("store.Raycast")()
	var result RaycastResult
	lo, hi, ok := v.cellBounds()
	if !ok || maxDist < 0 || dir.Len() == 0 {
		return result
	}
	dir = dir.Normalize()

	var cell, step [3]int
	var tMax, tDelta [3]float64
	for i := range 3 {
		// Shift so cell boundaries fall on integers.
		o, d := float64(origin[i])+0.5, float64(dir[i])
		cell[i] = int(math.Floor(o))
		switch {
		case d > 0:
			step[i] = 1
			tMax[i] = (float64(cell[i]+1) - o) / d
			tDelta[i] = 1 / d
		case d < 0:
			step[i] = -1
			tMax[i] = (o - float64(cell[i])) / -d
			tDelta[i] = -1 / d
		default:
			tMax[i] = math.Inf(1)
			tDelta[i] = math.Inf(1)
		}
	}

	prev := cell
	for t := 0.0; t <= float64(maxDist); {
		if c, ok := v.CellAt(cell[0], cell[1], cell[2]); ok && solid(c) {
			result.HitPosition = cell
			result.AdjacentPosition = prev
			result.Distance = float32(t)
			result.Hit = true
			return result
		}
		if leaving(cell, step, lo, hi) {
			break
		}
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		prev = cell
		t = tMax[axis]
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]
	}
	return result
}

// cellBounds returns the inclusive world-cell box covering every published
// chunk.
func (v *View[A, C]) cellBounds() (lo, hi [3]int, ok bool) {
	side := chunk.DimsOf[A]().SideLen()
	for at := range v.chunks {
		c := [3]int{at.X, at.Y, at.Z}
		if !ok {
			lo, hi, ok = c, c, true
			continue
		}
		for i := range 3 {
			lo[i] = min(lo[i], c[i])
			hi[i] = max(hi[i], c[i])
		}
	}
	for i := range 3 {
		lo[i] *= side
		hi[i] = (hi[i]+1)*side - 1
	}
	return lo, hi, ok
}

// leaving reports whether cell lies outside [lo, hi] on an axis the ray
// is not moving back along.
func leaving(cell, step, lo, hi [3]int) bool {
	for i := range 3 {
		if cell[i] < lo[i] && step[i] <= 0 || cell[i] > hi[i] && step[i] >= 0 {
			return true
		}
	}
	return false
}
