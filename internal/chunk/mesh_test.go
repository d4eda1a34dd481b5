package chunk

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isTrue(v bool) bool { return v }

func TestPlacementsEmptyChunk(t *testing.T) {
	c := New[Side8, bool]()
	assert.Empty(t, c.Placements(isTrue))
	assert.Empty(t, c.CornerPoints(isTrue))
	assert.Empty(t, c.Faces(isTrue))
}

func TestPlacementsSingleSolidCell(t *testing.T) {
	c := New[Side8, bool]()
	require.NoError(t, c.Set(Pos{2, 3, 1}, true))

	got := c.Placements(isTrue)
	require.Len(t, got, 1)
	assert.Equal(t, mgl32.Vec3{3, 2, 1}, got[0].Position)
	assert.Equal(t, mgl32.QuatIdent(), got[0].Rotation)
	assert.True(t, got[0].Model().ApproxEqual(mgl32.Translate3D(3, 2, 1)))
}

func TestPlacementsFollowFlatOrder(t *testing.T) {
	c := New[Side8, bool]()
	require.NoError(t, c.Set(Pos{1, 0, 0}, true))
	require.NoError(t, c.Set(Pos{0, 0, 1}, true))
	require.NoError(t, c.Set(Pos{0, 5, 0}, true))

	got := c.Placements(isTrue)
	require.Len(t, got, 3)
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, got[0].Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, got[1].Position)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, got[2].Position)
}

func TestCornerPointsDeduplicate(t *testing.T) {
	c := New[Side8, bool]()
	require.NoError(t, c.Set(Pos{0, 0, 0}, true))
	pts := c.CornerPoints(isTrue)
	assert.Len(t, pts, 8)
	assert.True(t, pts.Has(Pos{1, 1, 1}))
	assert.False(t, pts.Has(Pos{2, 0, 0}))

	// A neighbour along x shares four corners.
	require.NoError(t, c.Set(Pos{0, 1, 0}, true))
	assert.Len(t, c.CornerPoints(isTrue), 12)

	c.Fill(true)
	assert.Len(t, c.CornerPoints(isTrue), c.Dims().NumVerts())
}

func TestMeshPolicies(t *testing.T) {
	c := New[Side8, bool]()
	require.NoError(t, c.Set(Pos{2, 3, 1}, true))
	require.NoError(t, c.Set(Pos{2, 4, 1}, true))

	inst := c.Mesh(PolicyInstances, isTrue)
	assert.Equal(t, PolicyInstances, inst.Policy)
	assert.Len(t, inst.Placements, 2)
	assert.Empty(t, inst.Faces)

	culled := c.Mesh(PolicyCulled, isTrue)
	assert.Len(t, culled.Faces, 10)
	require.Len(t, culled.Placements, 10)
	for i, f := range culled.Faces {
		assert.Equal(t, f.Placement, culled.Placements[i])
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{PolicyInstances, PolicyCulled} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePolicy("greedy")
	assert.Error(t, err)
}

func BenchmarkPlacementsHalfFull(b *testing.B) {
	c := New[Side16, bool]()
	for i, p := range c.Pointers() {
		*p = i%2 == 0
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Placements(isTrue)
	}
}
