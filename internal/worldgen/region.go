package worldgen

import (
	"context"
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"

	"voxl/internal/block"
	"voxl/internal/chunk"
	"voxl/internal/logging"
	"voxl/internal/profiling"
	"voxl/internal/store"
)

// RegionCoords lists the chunk coordinates of the cube of the given radius
// around center, in (Y, X, Z) order.
func RegionCoords(center chunk.Coord, radius int) []chunk.Coord {
	side := 2*radius + 1
	out := make([]chunk.Coord, 0, side*side*side)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				out = append(out, chunk.Coord{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz})
			}
		}
	}
	return out
}

// GenerateRegion populates every chunk of RegionCoords(center, radius) on
// a pool of workers and publishes them to st as a single epoch. Chunks
// already present in st are skipped. Nothing is published when ctx is
// cancelled first.
func GenerateRegion[A chunk.Accessor](ctx context.Context, g *Generator, st *store.Store[A, block.Type], center chunk.Coord, radius, workers int) (uint64, error) {
	defer profiling.Track("worldgen.GenerateRegion")()
	if workers < 1 {
		workers = max(runtime.NumCPU(), 1)
	}

	pool := pond.NewPool(workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	var mu sync.Mutex
	out := make(map[chunk.Coord]*chunk.Chunk[A, block.Type])
	group := pool.NewGroup()
	for _, at := range RegionCoords(center, radius) {
		if st.Has(at) {
			continue
		}
		group.Submit(func() {
			c := Populate[A](g, at)
			mu.Lock()
			out[at] = c
			mu.Unlock()
		})
	}
	waitErr := group.Wait()
	if err := ctx.Err(); err != nil {
		return st.Epoch(), err
	}
	if waitErr != nil {
		return st.Epoch(), waitErr
	}

	epoch := st.PublishBatch(out)
	logging.Logger().Info("region generated",
		"center", center.String(),
		"radius", radius,
		"chunks", len(out),
		"epoch", epoch)
	return epoch, nil
}
