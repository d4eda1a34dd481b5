package meshing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"voxl/internal/chunk"
	"voxl/internal/logging"
	"voxl/internal/profiling"
	"voxl/internal/store"
)

var (
	// ErrPoolClosed is returned for submissions after Shutdown.
	ErrPoolClosed = errors.New("meshing: pool is shut down")
	// ErrNoPredicate is reported for a job without a solidity predicate.
	ErrNoPredicate = errors.New("meshing: nil solid predicate")
	// ErrEmptySnapshot is reported for a job whose snapshot was never taken.
	ErrEmptySnapshot = errors.New("meshing: zero snapshot")
	// ErrNoResult is returned for a job without a result channel.
	ErrNoResult = errors.New("meshing: nil result channel")
)

// Job represents a meshing request for one published chunk.
type Job[A chunk.Accessor, C chunk.Cell] struct {
	Coord  chunk.Coord
	Chunk  chunk.Snapshot[A, C]
	Policy chunk.Policy
	Solid  func(C) bool
	// Result receives exactly one value unless the pool shuts down first.
	Result chan<- Result
}

// Result contains the outcome of a meshing job.
type Result struct {
	Coord chunk.Coord
	Mesh  chunk.Mesh
	Err   error
}

// Pool manages goroutines for mesh generation. Jobs only read immutable
// snapshots, so any number of workers may run against the same store.
type Pool[A chunk.Accessor, C chunk.Cell] struct {
	jobs    chan Job[A, C]
	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewPool starts workers goroutines behind a queue of queueSize jobs.
func NewPool[A chunk.Accessor, C chunk.Cell](workers, queueSize int) *Pool[A, C] {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool[A, C]{
		jobs:    make(chan Job[A, C], max(queueSize, 0)),
		workers: max(workers, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := range p.workers {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool[A, C]) Workers() int { return p.workers }

// Submit queues a job without blocking. It returns false if the queue is
// full, the pool has been shut down, or the job has no Result channel.
// A queued job still gets no result if Shutdown runs before a worker
// picks it up.
func (p *Pool[A, C]) Submit(job Job[A, C]) bool {
	if job.Result == nil || p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	case <-p.ctx.Done():
		return false
	default:
		return false
	}
}

// SubmitBlocking waits until the job is queued, ctx is done or the pool
// shuts down. Like Submit, a queued job is dropped by Shutdown.
func (p *Pool[A, C]) SubmitBlocking(ctx context.Context, job Job[A, C]) error {
	if p.ctx.Err() != nil {
		return ErrPoolClosed
	}
	if job.Result == nil {
		return ErrNoResult
	}
	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

func (p *Pool[A, C]) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobs:
			res := run(job)
			if res.Err != nil {
				logging.Logger().Warn("mesh job failed", "worker", id, "coord", job.Coord.String(), "err", res.Err)
			}
			select {
			case job.Result <- res:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

func run[A chunk.Accessor, C chunk.Cell](job Job[A, C]) Result {
	defer profiling.Track("meshing.Job")()
	res := Result{Coord: job.Coord}
	switch {
	case job.Solid == nil:
		res.Err = fmt.Errorf("chunk %s: %w", job.Coord, ErrNoPredicate)
	case job.Chunk.IsZero():
		res.Err = fmt.Errorf("chunk %s: %w", job.Coord, ErrEmptySnapshot)
	default:
		res.Mesh = job.Chunk.Mesh(job.Policy, job.Solid)
	}
	return res
}

// Shutdown stops the workers and waits for them to exit. Jobs still queued
// are dropped. The queue is never closed, so late submissions fail instead
// of panicking.
func (p *Pool[A, C]) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// QueueLen returns the current number of queued jobs.
func (p *Pool[A, C]) QueueLen() int {
	return len(p.jobs)
}

// MeshAll meshes every chunk of the view on the pool and collects the
// results by coordinate. Job errors are joined and returned along with the
// meshes that did succeed.
func MeshAll[A chunk.Accessor, C chunk.Cell](ctx context.Context, p *Pool[A, C], v *store.View[A, C], policy chunk.Policy, solid func(C) bool) (map[chunk.Coord]chunk.Mesh, error) {
	defer profiling.Track("meshing.MeshAll")()
	results := make(chan Result, v.Len())
	sent := 0
	var err error
	for at, snap := range v.All() {
		job := Job[A, C]{Coord: at, Chunk: snap, Policy: policy, Solid: solid, Result: results}
		if err = p.SubmitBlocking(ctx, job); err != nil {
			break
		}
		sent++
	}

	out := make(map[chunk.Coord]chunk.Mesh, sent)
	for ; sent > 0; sent-- {
		select {
		case res := <-results:
			if res.Err != nil {
				err = errors.Join(err, res.Err)
				continue
			}
			out[res.Coord] = res.Mesh
		case <-ctx.Done():
			return out, ctx.Err()
		case <-p.ctx.Done():
			return out, ErrPoolClosed
		}
	}
	return out, err
}
