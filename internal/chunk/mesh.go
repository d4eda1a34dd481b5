package chunk

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxl/internal/logging"
)

// VertexStride is the number of float32 per vertex emitted by FaceVertices
// (pos.xyz + normal.xyz).
const VertexStride = 6

// Placement positions one instance of a unit model in chunk space.
type Placement struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Model returns the instance matrix translation * rotation.
func (p Placement) Model() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).Mul4(p.Rotation.Mat4())
}

// PointSet is an unordered set of lattice corners, keyed [y, x, z].
type PointSet map[Pos]struct{}

// Has reports whether p is in the set.
func (s PointSet) Has(p Pos) bool {
	_, ok := s[p]
	return ok
}

// Policy selects what Mesh emits.
type Policy int

const (
	// PolicyInstances emits one identity-rotated placement per solid cell.
	PolicyInstances Policy = iota
	// PolicyCulled emits one placement per visible face.
	PolicyCulled
)

// String returns the name accepted by ParsePolicy.
func (p Policy) String() string {
	switch p {
	case PolicyInstances:
		return "instances"
	case PolicyCulled:
		return "culled"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy is the inverse of Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "instances", "":
		return PolicyInstances, nil
	case "culled":
		return PolicyCulled, nil
	}
	return 0, fmt.Errorf("chunk: unknown mesh policy %q", s)
}

// Mesh is the renderer-facing result of meshing one chunk. Placements is
// always filled; Faces only under PolicyCulled.
type Mesh struct {
	Policy     Policy
	Placements []Placement
	Faces      []Face
}

// Placements emits one placement per solid cell in flat index order, at
// position (x, y, z) with identity rotation. Nothing is culled.
func (c *Chunk[A, C]) Placements(solid func(C) bool) []Placement {
	var out []Placement
	for i, v := range c.cells {
		if !solid(v) {
			continue
		}
		p := c.dims.FromIndex(i)
		out = append(out, Placement{
			Position: mgl32.Vec3{float32(p.X()), float32(p.Y()), float32(p.Z())},
			Rotation: mgl32.QuatIdent(),
		})
	}
	return out
}

// CornerPoints returns the deduplicated lattice corners of every solid cell.
// A cell at [y, x, z] owns the corners [y..y+1, x..x+1, z..z+1].
func (c *Chunk[A, C]) CornerPoints(solid func(C) bool) PointSet {
	points := make(PointSet)
	for i, v := range c.cells {
		if !solid(v) {
			continue
		}
		p := c.dims.FromIndex(i)
		y, x, z := p[0], p[1], p[2]
		for _, q := range [8]Pos{
			{y, x, z}, {y, x + 1, z}, {y, x + 1, z + 1}, {y, x, z + 1},
			{y + 1, x, z}, {y + 1, x + 1, z}, {y + 1, x + 1, z + 1}, {y + 1, x, z + 1},
		} {
			points[q] = struct{}{}
		}
	}
	logging.Logger().Debug("chunk corner points", "count", len(points))
	return points
}

// Mesh runs the selected policy.
func (c *Chunk[A, C]) Mesh(policy Policy, solid func(C) bool) Mesh {
	m := Mesh{Policy: policy}
	switch policy {
	case PolicyCulled:
		m.Faces = c.Faces(solid)
		m.Placements = make([]Placement, len(m.Faces))
		for i, f := range m.Faces {
			m.Placements[i] = f.Placement
		}
	default:
		m.Placements = c.Placements(solid)
	}
	logging.Logger().Debug("chunk meshed",
		"policy", policy.String(),
		"placements", len(m.Placements),
		"faces", len(m.Faces))
	return m
}
