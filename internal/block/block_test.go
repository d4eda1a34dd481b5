package block

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxl/internal/chunk"
)

func TestSolidity(t *testing.T) {
	assert.False(t, IsSolid(Air))
	assert.True(t, IsAir(Air))
	for _, b := range []Type{Stone, Dirt, Grass, Bedrock, Sand} {
		assert.True(t, IsSolid(b), b.String())
	}
	assert.False(t, IsSolid(Type(999)))
	assert.Equal(t, "unknown", Type(999).String())
}

func TestTypeIsUsableAsCell(t *testing.T) {
	c := chunk.New[chunk.Side8, Type]()
	assert.Empty(t, c.Placements(IsSolid))
	*c.Ptr(chunk.Pos{0, 0, 0}) = Grass
	assert.Len(t, c.Placements(IsSolid), 1)
}
