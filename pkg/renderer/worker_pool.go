package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileFunc renders a single tile
type TileFunc func(ctx context.Context, tile *Tile) error

// WorkerPool runs tile tasks on a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
// (0 = use CPU count)
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run calls fn for every tile and waits for all of them. Once ctx is cancelled
// or any call fails, no further tiles are started; tiles already running finish.
// The first error (or the context's error) is returned.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, fn TileFunc) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for _, tile := range tiles {
		// SetLimit makes Go block, so this is checked as each worker frees up
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, tile)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// Cancellation observed before any task picked it up
	return ctx.Err()
}
