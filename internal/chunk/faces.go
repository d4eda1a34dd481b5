package chunk

import "github.com/go-gl/mathgl/mgl32"

// Direction names one of the six faces of a cell.
type Direction int

const (
	Top    Direction = iota // +y
	Bottom                  // -y
	Front                   // +z
	Back                    // -z
	Right                   // +x
	Left                    // -x
)

// Directions lists every face direction in emission order.
var Directions = [6]Direction{Top, Bottom, Front, Back, Right, Left}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Front:
		return "front"
	case Back:
		return "back"
	case Right:
		return "right"
	case Left:
		return "left"
	}
	return "unknown"
}

// Step is the neighbour offset in [y, x, z] order.
func (d Direction) Step() Pos {
	switch d {
	case Top:
		return Pos{1, 0, 0}
	case Bottom:
		return Pos{-1, 0, 0}
	case Front:
		return Pos{0, 0, 1}
	case Back:
		return Pos{0, 0, -1}
	case Right:
		return Pos{0, 1, 0}
	default:
		return Pos{0, -1, 0}
	}
}

// Normal is the outward unit normal in (x, y, z) space.
func (d Direction) Normal() mgl32.Vec3 {
	s := d.Step()
	return mgl32.Vec3{float32(s.X()), float32(s.Y()), float32(s.Z())}
}

// Rotation turns the +y unit face onto this direction.
func (d Direction) Rotation() mgl32.Quat {
	return faceRotations[d]
}

var faceRotations = func() (r [6]mgl32.Quat) {
	up := mgl32.Vec3{0, 1, 0}
	for _, d := range Directions {
		if d == Top {
			r[d] = mgl32.QuatIdent()
			continue
		}
		r[d] = mgl32.QuatBetweenVectors(up, d.Normal())
	}
	return r
}()

// faceCorners are the corner offsets from the cell centre, counter-clockwise
// when seen from outside the face.
var faceCorners = [6][4]mgl32.Vec3{
	Top:    {{-.5, .5, -.5}, {-.5, .5, .5}, {.5, .5, .5}, {.5, .5, -.5}},
	Bottom: {{-.5, -.5, -.5}, {.5, -.5, -.5}, {.5, -.5, .5}, {-.5, -.5, .5}},
	Front:  {{-.5, -.5, .5}, {.5, -.5, .5}, {.5, .5, .5}, {-.5, .5, .5}},
	Back:   {{-.5, -.5, -.5}, {-.5, .5, -.5}, {.5, .5, -.5}, {.5, -.5, -.5}},
	Right:  {{.5, -.5, -.5}, {.5, .5, -.5}, {.5, .5, .5}, {.5, -.5, .5}},
	Left:   {{-.5, -.5, -.5}, {-.5, -.5, .5}, {-.5, .5, .5}, {-.5, .5, -.5}},
}

// Face is one visible side of a solid cell. Vertices lie on the face of the
// unit cube centred on the cell position.
type Face struct {
	Dir       Direction
	Cell      Pos
	Placement Placement
	Vertices  [4]mgl32.Vec3
}

// Faces emits every face of a solid cell whose neighbour along that axis is
// outside the chunk or not solid. Faces come out in flat index order, and
// per cell in Directions order.
func (c *Chunk[A, C]) Faces(solid func(C) bool) []Face {
	var out []Face
	for i, v := range c.cells {
		if !solid(v) {
			continue
		}
		p := c.dims.FromIndex(i)
		centre := mgl32.Vec3{float32(p.X()), float32(p.Y()), float32(p.Z())}
		for _, d := range Directions {
			s := d.Step()
			n := Pos{p[0] + s[0], p[1] + s[1], p[2] + s[2]}
			if c.dims.Contains(n) && solid(c.cells[c.dims.ToIndex(n)]) {
				continue
			}
			f := Face{
				Dir:       d,
				Cell:      p,
				Placement: Placement{Position: centre, Rotation: d.Rotation()},
			}
			for k, off := range faceCorners[d] {
				f.Vertices[k] = centre.Add(off)
			}
			out = append(out, f)
		}
	}
	return out
}

// FaceVertices flattens faces into a triangle list of interleaved position
// and normal floats, two triangles per face.
func FaceVertices(faces []Face) []float32 {
	out := make([]float32, 0, len(faces)*6*VertexStride)
	for _, f := range faces {
		n := f.Dir.Normal()
		v := f.Vertices
		for _, k := range [6]int{0, 1, 2, 2, 3, 0} {
			out = append(out, v[k][0], v[k][1], v[k][2], n[0], n[1], n[2])
		}
	}
	return out
}
