package chunk

import (
	"fmt"
	"iter"
	"slices"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// Chunk is a fixed-capacity cube of cells laid out in one flat slice.
// The side length comes from the Accessor type parameter; the slice always
// holds exactly DimsOf[A]().CubeLen() cells.
//
// The zero value is not usable; construct chunks with New or FromCells.
// A Chunk is not safe for concurrent mutation. Hand readers a Snapshot.
type Chunk[A Accessor, C Cell] struct {
	dims  Dims
	cells []C
}

// New returns a chunk with every cell set to the zero value of C.
func New[A Accessor, C Cell]() *Chunk[A, C] {
	checkPlain[C]()
	d := DimsOf[A]()
	return &Chunk[A, C]{dims: d, cells: make([]C, d.CubeLen())}
}

// FromCells wraps cells, which must hold exactly CubeLen values in flat
// index order. The slice is used as backing storage, not copied.
func FromCells[A Accessor, C Cell](cells []C) (*Chunk[A, C], error) {
	checkPlain[C]()
	d := DimsOf[A]()
	if len(cells) != d.CubeLen() {
		return nil, fmt.Errorf("%w: got %d cells, side %d needs %d",
			ErrDimensionMismatch, len(cells), d.SideLen(), d.CubeLen())
	}
	return &Chunk[A, C]{dims: d, cells: cells}, nil
}

// Reinterpret views the storage of c under the policy B. No data moves:
// writes through either chunk are visible through the other. It fails with
// ErrDimensionMismatch when B describes a different cell count.
func Reinterpret[B, A Accessor, C Cell](c *Chunk[A, C]) (*Chunk[B, C], error) {
	d := DimsOf[B]()
	if d.CubeLen() != len(c.cells) {
		return nil, fmt.Errorf("%w: %d cells cannot be viewed with side %d (%d cells)",
			ErrDimensionMismatch, len(c.cells), d.SideLen(), d.CubeLen())
	}
	return &Chunk[B, C]{dims: d, cells: c.cells}, nil
}

// Dims returns the dimensions fixed by the accessor.
func (c *Chunk[A, C]) Dims() Dims { return c.dims }

// Len returns the number of cells, always Dims().CubeLen().
func (c *Chunk[A, C]) Len() int { return len(c.cells) }

// At returns the cell at p. It panics with a *BoundsError when p lies
// outside the chunk.
func (c *Chunk[A, C]) At(p Pos) C {
	return c.cells[c.mustIndex(p)]
}

// Ptr returns a pointer to the cell at p for in-place updates. It panics
// with a *BoundsError when p lies outside the chunk.
func (c *Chunk[A, C]) Ptr(p Pos) *C {
	return &c.cells[c.mustIndex(p)]
}

// Get is the checked form of At.
func (c *Chunk[A, C]) Get(p Pos) (C, error) {
	if err := c.dims.Check(p); err != nil {
		var zero C
		return zero, err
	}
	return c.cells[c.dims.ToIndex(p)], nil
}

// Set writes v at p, or returns a *BoundsError and leaves the chunk untouched.
func (c *Chunk[A, C]) Set(p Pos, v C) error {
	if err := c.dims.Check(p); err != nil {
		return err
	}
	c.cells[c.dims.ToIndex(p)] = v
	return nil
}

func (c *Chunk[A, C]) mustIndex(p Pos) int {
	if err := c.dims.Check(p); err != nil {
		panic(err)
	}
	return c.dims.ToIndex(p)
}

// Fill sets every cell to v.
func (c *Chunk[A, C]) Fill(v C) {
	for i := range c.cells {
		c.cells[i] = v
	}
}

// All yields (flat index, cell) pairs in index order.
func (c *Chunk[A, C]) All() iter.Seq2[int, C] {
	return allCells(c.cells)
}

// Values yields cells in flat index order.
func (c *Chunk[A, C]) Values() iter.Seq[C] {
	return slices.Values(c.cells)
}

// Positions yields (coordinate, cell) pairs in flat index order.
func (c *Chunk[A, C]) Positions() iter.Seq2[Pos, C] {
	return positions(c.dims, c.cells)
}

// Pointers yields (flat index, *cell) pairs for in-place updates.
func (c *Chunk[A, C]) Pointers() iter.Seq2[int, *C] {
	return func(yield func(int, *C) bool) {
		for i := range c.cells {
			if !yield(i, &c.cells[i]) {
				return
			}
		}
	}
}

// Count returns the number of cells matching pred.
func (c *Chunk[A, C]) Count(pred func(C) bool) int {
	n := 0
	for _, v := range c.cells {
		if pred(v) {
			n++
		}
	}
	return n
}

// Clone returns an independent copy made with a single flat copy.
func (c *Chunk[A, C]) Clone() *Chunk[A, C] {
	return &Chunk[A, C]{dims: c.dims, cells: slices.Clone(c.cells)}
}

// Snapshot returns an immutable copy suitable for sharing with readers.
func (c *Chunk[A, C]) Snapshot() Snapshot[A, C] {
	return Snapshot[A, C]{c: c.Clone()}
}

// Equal reports whether both chunks hold the same cells in the same order.
func (c *Chunk[A, C]) Equal(o *Chunk[A, C]) bool {
	return slices.Equal(c.cells, o.cells)
}

// Hash is a structural hash of the cell sequence.
func (c *Chunk[A, C]) Hash() uint64 {
	return hashCells(c.cells)
}

// String summarizes the chunk for logs.
func (c *Chunk[A, C]) String() string {
	var zero C
	filled := c.Count(func(v C) bool { return v != zero })
	return fmt.Sprintf("Chunk(side=%d cells=%d filled=%d)", c.dims.SideLen(), len(c.cells), filled)
}

func allCells[C Cell](cells []C) iter.Seq2[int, C] {
	return func(yield func(int, C) bool) {
		for i, v := range cells {
			if !yield(i, v) {
				return
			}
		}
	}
}

func positions[C Cell](d Dims, cells []C) iter.Seq2[Pos, C] {
	return func(yield func(Pos, C) bool) {
		for i, v := range cells {
			if !yield(d.FromIndex(i), v) {
				return
			}
		}
	}
}

// hashCells hashes the memory of the cell slice. Cells are plain data, so
// the bytes are the value.
func hashCells[C Cell](cells []C) uint64 {
	var zero C
	size := int(unsafe.Sizeof(zero))
	if size == 0 || len(cells) == 0 {
		return xxhash.Sum64(nil)
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(cells))), len(cells)*size)
	return xxhash.Sum64(b)
}
