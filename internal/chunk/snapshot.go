package chunk

import "iter"

// Snapshot is a read-only view of a chunk. The storage behind it is never
// written after creation, so a Snapshot can be copied and read from any
// number of goroutines without locking.
type Snapshot[A Accessor, C Cell] struct {
	c *Chunk[A, C]
}

// IsZero reports whether s was not produced by Chunk.Snapshot.
func (s Snapshot[A, C]) IsZero() bool { return s.c == nil }

// Dims returns the dimensions fixed by the accessor.
func (s Snapshot[A, C]) Dims() Dims { return s.c.dims }

// Len returns the number of cells.
func (s Snapshot[A, C]) Len() int { return len(s.c.cells) }

// At returns the cell at p and panics with a *BoundsError when p lies
// outside the chunk.
func (s Snapshot[A, C]) At(p Pos) C { return s.c.At(p) }

// Get is the checked form of At.
func (s Snapshot[A, C]) Get(p Pos) (C, error) { return s.c.Get(p) }

// All yields (flat index, cell) pairs in index order.
func (s Snapshot[A, C]) All() iter.Seq2[int, C] { return s.c.All() }

// Values yields cells in flat index order.
func (s Snapshot[A, C]) Values() iter.Seq[C] { return s.c.Values() }

// Positions yields (coordinate, cell) pairs in flat index order.
func (s Snapshot[A, C]) Positions() iter.Seq2[Pos, C] { return s.c.Positions() }

// Count returns the number of cells matching pred.
func (s Snapshot[A, C]) Count(pred func(C) bool) int { return s.c.Count(pred) }

// Hash is the structural hash of the cell sequence.
func (s Snapshot[A, C]) Hash() uint64 { return s.c.Hash() }

// Equal compares the cells of two snapshots.
func (s Snapshot[A, C]) Equal(o Snapshot[A, C]) bool { return s.c.Equal(o.c) }

// Chunk returns a fresh mutable copy of the snapshot.
func (s Snapshot[A, C]) Chunk() *Chunk[A, C] { return s.c.Clone() }

// Placements emits one identity placement per solid cell.
func (s Snapshot[A, C]) Placements(solid func(C) bool) []Placement { return s.c.Placements(solid) }

// CornerPoints returns the lattice corners of every solid cell.
func (s Snapshot[A, C]) CornerPoints(solid func(C) bool) PointSet { return s.c.CornerPoints(solid) }

// Faces emits the visible faces of solid cells.
func (s Snapshot[A, C]) Faces(solid func(C) bool) []Face { return s.c.Faces(solid) }

// Mesh runs the selected policy.
func (s Snapshot[A, C]) Mesh(policy Policy, solid func(C) bool) Mesh { return s.c.Mesh(policy, solid) }

// String summarizes the snapshot for logs.
func (s Snapshot[A, C]) String() string { return s.c.String() }
