package store

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxl/internal/block"
	"voxl/internal/chunk"
)

func raycastView(t *testing.T) *View[chunk.Side8, block.Type] {
	t.Helper()
	s := New[chunk.Side8, block.Type]()
	origin := chunk.New[chunk.Side8, block.Type]()
	require.NoError(t, origin.Set(chunk.Pos{0, 5, 0}, block.Stone))
	require.NoError(t, origin.Set(chunk.Pos{2, 2, 2}, block.Stone))
	west := chunk.New[chunk.Side8, block.Type]()
	require.NoError(t, west.Set(chunk.Pos{0, 5, 0}, block.Dirt))
	s.PublishBatch(map[chunk.Coord]*chunk.Chunk[chunk.Side8, block.Type]{
		{}:      origin,
		{X: -1}: west,
	})
	return s.View()
}

func TestRaycast(t *testing.T) {
	v := raycastView(t)
	start := mgl32.Vec3{}

	res := v.Raycast(start, mgl32.Vec3{1, 0, 0}, 10, block.IsSolid)
	require.True(t, res.Hit)
	assert.Equal(t, [3]int{5, 0, 0}, res.HitPosition)
	assert.Equal(t, [3]int{4, 0, 0}, res.AdjacentPosition)
	assert.InDelta(t, 4.5, res.Distance, 1e-5)

	short := v.Raycast(start, mgl32.Vec3{1, 0, 0}, 4, block.IsSolid)
	assert.False(t, short.Hit, "hit at %v", short.HitPosition)

	up := v.Raycast(start, mgl32.Vec3{0, 1, 0}, 10, block.IsSolid)
	assert.False(t, up.Hit)
}

func TestRaycastDiagonal(t *testing.T) {
	v := raycastView(t)
	res := v.Raycast(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 10, block.IsSolid)
	require.True(t, res.Hit)
	assert.Equal(t, [3]int{2, 2, 2}, res.HitPosition)
	assert.InDelta(t, 1.5*math.Sqrt(3), res.Distance, 1e-4)
}

func TestRaycastCrossesIntoNegativeChunk(t *testing.T) {
	v := raycastView(t)
	res := v.Raycast(mgl32.Vec3{}, mgl32.Vec3{-2, 0, 0}, 10, block.IsSolid)
	require.True(t, res.Hit)
	assert.Equal(t, [3]int{-3, 0, 0}, res.HitPosition)
	assert.Equal(t, [3]int{-2, 0, 0}, res.AdjacentPosition)
	assert.InDelta(t, 2.5, res.Distance, 1e-5)
}

func TestRaycastStartsInsideSolid(t *testing.T) {
	v := raycastView(t)
	res := v.Raycast(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0, 0, 1}, 1, block.IsSolid)
	require.True(t, res.Hit)
	assert.Equal(t, res.HitPosition, res.AdjacentPosition)
	assert.Zero(t, res.Distance)

	assert.False(t, v.Raycast(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, 10, block.IsSolid).Hit)
}

func TestRaycastUnlimitedDistance(t *testing.T) {
	v := raycastView(t)
	inf := float32(math.Inf(1))

	res := v.Raycast(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, inf, block.IsSolid)
	require.True(t, res.Hit)
	assert.Equal(t, [3]int{5, 0, 0}, res.HitPosition)

	// These rays leave the published chunks without hitting anything.
	assert.False(t, v.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, inf, block.IsSolid).Hit)
	assert.False(t, v.Raycast(mgl32.Vec3{}, mgl32.Vec3{-1, -1, 3}, inf, block.IsSolid).Hit)
	assert.False(t, v.Raycast(mgl32.Vec3{100, 40, -70}, mgl32.Vec3{0, 0, -1}, inf, block.IsSolid).Hit)

	empty := New[chunk.Side8, block.Type]().View()
	assert.False(t, empty.Raycast(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, inf, block.IsSolid).Hit)
}
