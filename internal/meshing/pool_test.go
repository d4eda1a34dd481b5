package meshing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxl/internal/block"
	"voxl/internal/chunk"
	"voxl/internal/store"
)

func slab(height int) *chunk.Chunk[chunk.Side8, block.Type] {
	c := chunk.New[chunk.Side8, block.Type]()
	for i, cell := range c.Pointers() {
		if c.Dims().FromIndex(i).Y() < height {
			*cell = block.Stone
		}
	}
	return c
}

func TestPoolMeshesJob(t *testing.T) {
	p := NewPool[chunk.Side8, block.Type](2, 4)
	defer p.Shutdown()

	results := make(chan Result, 1)
	at := chunk.Coord{X: 3}
	require.True(t, p.Submit(Job[chunk.Side8, block.Type]{
		Coord:  at,
		Chunk:  slab(1).Snapshot(),
		Policy: chunk.PolicyInstances,
		Solid:  block.IsSolid,
		Result: results,
	}))

	select {
	case res := <-results:
		require.NoError(t, res.Err)
		assert.Equal(t, at, res.Coord)
		assert.Len(t, res.Mesh.Placements, 64)
		assert.Empty(t, res.Mesh.Faces)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for mesh result")
	}
}

func TestPoolReportsInvalidJobs(t *testing.T) {
	p := NewPool[chunk.Side8, block.Type](1, 2)
	defer p.Shutdown()

	results := make(chan Result, 2)
	require.NoError(t, p.SubmitBlocking(context.Background(), Job[chunk.Side8, block.Type]{
		Chunk:  slab(1).Snapshot(),
		Result: results,
	}))
	require.NoError(t, p.SubmitBlocking(context.Background(), Job[chunk.Side8, block.Type]{
		Solid:  block.IsSolid,
		Result: results,
	}))

	first, second := <-results, <-results
	assert.ErrorIs(t, first.Err, ErrNoPredicate)
	assert.ErrorIs(t, second.Err, ErrEmptySnapshot)
}

func TestPoolShutdownRejectsSubmissions(t *testing.T) {
	p := NewPool[chunk.Side8, block.Type](2, 1)
	p.Shutdown()

	job := Job[chunk.Side8, block.Type]{Chunk: slab(1).Snapshot(), Solid: block.IsSolid, Result: make(chan Result, 1)}
	for range 100 {
		require.False(t, p.Submit(job))
	}
	assert.ErrorIs(t, p.SubmitBlocking(context.Background(), job), ErrPoolClosed)
	assert.Zero(t, p.QueueLen())
}

func TestPoolRejectsJobWithoutResult(t *testing.T) {
	p := NewPool[chunk.Side8, block.Type](1, 1)
	defer p.Shutdown()

	orphan := Job[chunk.Side8, block.Type]{Chunk: slab(1).Snapshot(), Solid: block.IsSolid}
	assert.False(t, p.Submit(orphan))
	assert.ErrorIs(t, p.SubmitBlocking(context.Background(), orphan), ErrNoResult)
	assert.Zero(t, p.QueueLen())

	// The single worker is still free for a well-formed job.
	results := make(chan Result, 1)
	job := orphan
	job.Coord = chunk.Coord{Z: 4}
	job.Result = results
	require.True(t, p.Submit(job))
	select {
	case res := <-results:
		require.NoError(t, res.Err)
		assert.Equal(t, chunk.Coord{Z: 4}, res.Coord)
		assert.Len(t, res.Mesh.Placements, 64)
	case <-time.After(5 * time.Second):
		t.Fatal("worker never picked up the job")
	}
}

func TestSubmitBlockingHonorsContext(t *testing.T) {
	// The only worker parks on a result nobody reads.
	p := NewPool[chunk.Side8, block.Type](1, 0)
	defer p.Shutdown()
	job := Job[chunk.Side8, block.Type]{Chunk: slab(1).Snapshot(), Solid: block.IsSolid, Result: make(chan Result)}
	require.NoError(t, p.SubmitBlocking(context.Background(), job))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.SubmitBlocking(ctx, job), context.DeadlineExceeded)
	assert.False(t, p.Submit(job))
}

func TestMeshAll(t *testing.T) {
	st := store.New[chunk.Side8, block.Type]()
	st.PublishBatch(map[chunk.Coord]*chunk.Chunk[chunk.Side8, block.Type]{
		{}:     slab(1),
		{X: 1}: slab(2),
		{Y: 1}: slab(0),
	})
	p := NewPool[chunk.Side8, block.Type](3, 1)
	defer p.Shutdown()

	meshes, err := MeshAll(context.Background(), p, st.View(), chunk.PolicyCulled, block.IsSolid)
	require.NoError(t, err)
	require.Len(t, meshes, 3)
	assert.Empty(t, meshes[chunk.Coord{Y: 1}].Faces)

	// A one-cell-thick 8x8 slab shows its top, bottom and the 4 rims.
	one := meshes[chunk.Coord{}]
	assert.Equal(t, chunk.PolicyCulled, one.Policy)
	assert.Len(t, one.Faces, 64+64+4*8)
	two := meshes[chunk.Coord{X: 1}]
	assert.Len(t, two.Faces, 64+64+4*16)
}

func TestMeshAllWithClosedPool(t *testing.T) {
	st := store.New[chunk.Side8, block.Type]()
	st.Publish(chunk.Coord{}, slab(1))
	p := NewPool[chunk.Side8, block.Type](1, 1)
	p.Shutdown()

	meshes, err := MeshAll(context.Background(), p, st.View(), chunk.PolicyInstances, block.IsSolid)
	assert.ErrorIs(t, err, ErrPoolClosed)
	assert.Empty(t, meshes)
}
