package chunk

import "fmt"

// Accessor is a dimension policy: a zero-size type whose only job is to
// report the side length of the cube it describes. Chunks carry their
// Accessor as a type parameter so the layout is part of the chunk type.
type Accessor interface {
	SideLen() int
}

// Predefined dimension policies.
type (
	Side1  struct{}
	Side8  struct{}
	Side16 struct{}
	Side32 struct{}
)

func (Side1) SideLen() int  { return 1 }
func (Side8) SideLen() int  { return 8 }
func (Side16) SideLen() int { return 16 }
func (Side32) SideLen() int { return 32 }

// Pos is a cell coordinate inside a chunk, ordered [y, x, z].
type Pos [3]int

// Y returns the vertical component.
func (p Pos) Y() int { return p[0] }

// X returns the first horizontal component.
func (p Pos) X() int { return p[1] }

// Z returns the second horizontal component.
func (p Pos) Z() int { return p[2] }

// String formats p with labelled axes.
func (p Pos) String() string {
	return fmt.Sprintf("[y=%d x=%d z=%d]", p[0], p[1], p[2])
}

// Dims holds a side length together with the derived plane and cube sizes
// and implements the coordinate linearization shared by every chunk:
//
//	index = y*side² + x + z*side
type Dims struct {
	side int
	quad int
	cube int
}

// NewDims returns the dimensions of a cube with the given side length.
// It panics if side is smaller than 1.
func NewDims(side int) Dims {
	if side < 1 {
		panic(fmt.Sprintf("chunk: invalid side length %d", side))
	}
	return Dims{side: side, quad: side * side, cube: side * side * side}
}

// DimsOf returns the dimensions described by the policy A.
func DimsOf[A Accessor]() Dims {
	var a A
	return NewDims(a.SideLen())
}

// SideLen is the number of cells along one edge.
func (d Dims) SideLen() int { return d.side }

// QuadLen is the number of cells in one horizontal plane.
func (d Dims) QuadLen() int { return d.quad }

// CubeLen is the total number of cells.
func (d Dims) CubeLen() int { return d.cube }

// SideVert is the number of lattice corners along one edge.
func (d Dims) SideVert() int { return d.side + 1 }

// NumVerts is the number of lattice corners of the whole cube.
func (d Dims) NumVerts() int {
	v := d.SideVert()
	return v * v * v
}

// ToIndex maps a coordinate to its flat offset. The coordinate is not
// validated; use Contains or Check first when it comes from outside.
func (d Dims) ToIndex(p Pos) int {
	return p[0]*d.quad + p[1] + p[2]*d.side
}

// FromIndex is the inverse of ToIndex for i in [0, CubeLen).
func (d Dims) FromIndex(i int) Pos {
	y := i / d.quad
	z := (i - y*d.quad) / d.side
	x := i - (z*d.side + y*d.quad)
	return Pos{y, x, z}
}

// Contains reports whether every component of p lies in [0, SideLen).
func (d Dims) Contains(p Pos) bool {
	return uint(p[0]) < uint(d.side) && uint(p[1]) < uint(d.side) && uint(p[2]) < uint(d.side)
}

// Check returns a *BoundsError when p is outside the cube.
func (d Dims) Check(p Pos) error {
	if d.Contains(p) {
		return nil
	}
	return &BoundsError{Pos: p, SideLen: d.side}
}
