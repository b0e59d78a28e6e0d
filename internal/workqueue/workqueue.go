// Package workqueue chunks a joint list into fixed-size groups and fans the
// per-chunk work out across goroutines. It exists to back Solver.RefreshJoints,
// which the design keeps outside the solve kernels themselves: refresh is
// embarrassingly parallel over independent joints, while the solve loop is
// strictly single-threaded (see the package doc on Solver).
package workqueue

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ChunkSize is the number of joints handed to a single goroutine per task,
// matching the 8-joint granularity the original refresh scheduler used.
const ChunkSize = 8

// Run splits [0, n) into ChunkSize-sized ranges and calls fn once per range
// concurrently, bounded by GOMAXPROCS. fn must be safe to call concurrently
// with itself for disjoint ranges — it must not touch state shared across
// joints, since the whole point of chunking here is that Refresh is pure
// per-joint work.
func Run(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for start := 0; start < n; start += ChunkSize {
		start := start
		end := min(start+ChunkSize, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}

	// Refresh has no failure mode to propagate; Wait only synchronizes.
	_ = g.Wait()
}

// RunContext is Run's cancellation-aware form, kept for callers embedding the
// solver in a pipeline that wants to abandon a refresh pass early.
func RunContext(ctx context.Context, n int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for start := 0; start < n; start += ChunkSize {
		start := start
		end := min(start+ChunkSize, n)
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			fn(start, end)
			return nil
		})
	}

	return g.Wait()
}
