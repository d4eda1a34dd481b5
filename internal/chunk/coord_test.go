package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		x, y, z int
		coord   Coord
		local   Pos
	}{
		{0, 0, 0, Coord{0, 0, 0}, Pos{0, 0, 0}},
		{15, 7, 9, Coord{0, 0, 0}, Pos{7, 15, 9}},
		{16, 0, 0, Coord{1, 0, 0}, Pos{0, 0, 0}},
		{-1, -1, -1, Coord{-1, -1, -1}, Pos{15, 15, 15}},
		{-16, 33, -17, Coord{-1, 2, -2}, Pos{1, 0, 15}},
	}
	for _, tt := range tests {
		c, p := Locate(tt.x, tt.y, tt.z, 16)
		assert.Equal(t, tt.coord, c, "coord of (%d,%d,%d)", tt.x, tt.y, tt.z)
		assert.Equal(t, tt.local, p, "local of (%d,%d,%d)", tt.x, tt.y, tt.z)

		x, y, z := c.World(16, p)
		assert.Equal(t, [3]int{tt.x, tt.y, tt.z}, [3]int{x, y, z})
	}
}
