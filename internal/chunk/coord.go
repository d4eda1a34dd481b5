package chunk

import "fmt"

// Coord addresses a chunk in a world made of equally sized chunks.
type Coord struct {
	X, Y, Z int
}

// String formats the coordinate for logs.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// World converts a local position inside the chunk at c to world cell
// coordinates (x, y, z).
func (c Coord) World(side int, p Pos) (x, y, z int) {
	return c.X*side + p.X(), c.Y*side + p.Y(), c.Z*side + p.Z()
}

// Locate returns the chunk containing world cell (x, y, z) and the local
// position of that cell. Negative coordinates round toward minus infinity.
func Locate(x, y, z, side int) (Coord, Pos) {
	c := Coord{X: floorDiv(x, side), Y: floorDiv(y, side), Z: floorDiv(z, side)}
	return c, Pos{mod(y, side), mod(x, side), mod(z, side)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
