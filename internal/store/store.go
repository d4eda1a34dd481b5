package store

import (
	"iter"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"voxl/internal/chunk"
	"voxl/internal/logging"
	"voxl/internal/profiling"
)

// Store maps chunk coordinates to published snapshots. Readers load the
// current epoch with one atomic read and never block; writers serialize on
// a mutex, copy the map, and publish the result as a new epoch.
//
// Published chunks are immutable. To change one, mutate a copy obtained
// from Snapshot.Chunk and publish it again.
type Store[A chunk.Accessor, C chunk.Cell] struct {
	mu  sync.Mutex // serializes writers
	cur atomic.Pointer[View[A, C]]
}

// View is one published epoch. It never changes after publication.
type View[A chunk.Accessor, C chunk.Cell] struct {
	epoch  uint64
	chunks map[chunk.Coord]chunk.Snapshot[A, C]
}

// New returns an empty store at epoch 0.
func New[A chunk.Accessor, C chunk.Cell]() *Store[A, C] {
	s := &Store[A, C]{}
	s.cur.Store(&View[A, C]{chunks: map[chunk.Coord]chunk.Snapshot[A, C]{}})
	return s
}

// View returns the current epoch.
func (s *Store[A, C]) View() *View[A, C] { return s.cur.Load() }

// Epoch returns the number of published writes so far.
func (s *Store[A, C]) Epoch() uint64 { return s.View().epoch }

// Len returns the number of published chunks.
func (s *Store[A, C]) Len() int { return len(s.View().chunks) }

// Get returns the snapshot published at the coordinate.
func (s *Store[A, C]) Get(at chunk.Coord) (chunk.Snapshot[A, C], bool) {
	return s.View().Get(at)
}

// Has reports whether a chunk is published at the coordinate.
func (s *Store[A, C]) Has(at chunk.Coord) bool {
	_, ok := s.View().chunks[at]
	return ok
}

// CellAt reads the cell at world coordinates (x, y, z). ok is false when the
// containing chunk is not published.
func (s *Store[A, C]) CellAt(x, y, z int) (C, bool) {
	return s.View().CellAt(x, y, z)
}

// Publish stores a snapshot of c at the given coordinate, replacing any
// previous entry, and returns the new epoch.
func (s *Store[A, C]) Publish(at chunk.Coord, c *chunk.Chunk[A, C]) uint64 {
	return s.PublishBatch(map[chunk.Coord]*chunk.Chunk[A, C]{at: c})
}

// PublishBatch publishes several chunks as a single epoch.
func (s *Store[A, C]) PublishBatch(batch map[chunk.Coord]*chunk.Chunk[A, C]) uint64 {
	defer profiling.Track("store.Publish")()
	snaps := make(map[chunk.Coord]chunk.Snapshot[A, C], len(batch))
	for at, c := range batch {
		snaps[at] = c.Snapshot()
	}
	return s.update(func(m map[chunk.Coord]chunk.Snapshot[A, C]) bool {
		maps.Copy(m, snaps)
		return len(snaps) > 0
	})
}

// Remove drops the chunk at the coordinate and reports whether it existed.
func (s *Store[A, C]) Remove(at chunk.Coord) bool {
	removed := false
	s.update(func(m map[chunk.Coord]chunk.Snapshot[A, C]) bool {
		if _, ok := m[at]; ok {
			delete(m, at)
			removed = true
		}
		return removed
	})
	return removed
}

// EvictFar removes chunks whose XZ distance from (cx, cz) exceeds radius.
// Returns the number of removed chunks.
func (s *Store[A, C]) EvictFar(cx, cz, radius int) int {
	defer profiling.Track("store.EvictFar")()
	removed := 0
	s.update(func(m map[chunk.Coord]chunk.Snapshot[A, C]) bool {
		for at := range m {
			dx, dz := at.X-cx, at.Z-cz
			if dx*dx+dz*dz > radius*radius {
				delete(m, at)
				removed++
			}
		}
		return removed > 0
	})
	return removed
}

// update applies fn to a private copy of the current map and publishes the
// copy as a new epoch when fn reports a change.
func (s *Store[A, C]) update(fn func(map[chunk.Coord]chunk.Snapshot[A, C]) bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.cur.Load()
	next := maps.Clone(old.chunks)
	if !fn(next) {
		return old.epoch
	}
	v := &View[A, C]{epoch: old.epoch + 1, chunks: next}
	s.cur.Store(v)
	logging.Logger().Debug("store epoch published", "epoch", v.epoch, "chunks", len(next))
	return v.epoch
}

// Epoch returns the epoch this view was published at.
func (v *View[A, C]) Epoch() uint64 { return v.epoch }

// Len returns the number of chunks in this view.
func (v *View[A, C]) Len() int { return len(v.chunks) }

// Get returns the snapshot at the coordinate in this view.
func (v *View[A, C]) Get(at chunk.Coord) (chunk.Snapshot[A, C], bool) {
	snap, ok := v.chunks[at]
	return snap, ok
}

// CellAt reads the cell at world coordinates (x, y, z) in this view.
func (v *View[A, C]) CellAt(x, y, z int) (C, bool) {
	var zero C
	at, p := chunk.Locate(x, y, z, chunk.DimsOf[A]().SideLen())
	snap, ok := v.chunks[at]
	if !ok {
		return zero, false
	}
	return snap.At(p), true
}

// Coords returns the published coordinates in (Y, X, Z) order.
func (v *View[A, C]) Coords() []chunk.Coord {
	out := slices.Collect(maps.Keys(v.chunks))
	sortCoords(out)
	return out
}

// All yields every published chunk in (Y, X, Z) coordinate order.
func (v *View[A, C]) All() iter.Seq2[chunk.Coord, chunk.Snapshot[A, C]] {
	return func(yield func(chunk.Coord, chunk.Snapshot[A, C]) bool) {
		for _, at := range v.Coords() {
			if !yield(at, v.chunks[at]) {
				return
			}
		}
	}
}

// InRadiusXZ appends every chunk within radius (in chunks) of the column
// (cx, cz) to dst, in (Y, X, Z) order.
func (v *View[A, C]) InRadiusXZ(cx, cz, radius int, dst []chunk.Coord) []chunk.Coord {
	defer profiling.Track("store.InRadiusXZ")()
	start := len(dst)
	for at := range v.chunks {
		dx, dz := at.X-cx, at.Z-cz
		if dx*dx+dz*dz <= radius*radius {
			dst = append(dst, at)
		}
	}
	sortCoords(dst[start:])
	return dst
}

func sortCoords(cs []chunk.Coord) {
	slices.SortFunc(cs, func(a, b chunk.Coord) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Z - b.Z
	})
}
