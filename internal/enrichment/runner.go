// Package enrichment fetches auxiliary per-asset facts (lineage shape,
// readme presence) from the catalog client, with bounded concurrency, TTL
// caching and in-flight request de-duplication. It is the only concurrent
// subsystem of the engine; everything downstream is pure computation.
package enrichment

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds the worker pool when the config leaves it
// unset.
const defaultConcurrency = 4

// runner executes a batch of index-addressed tasks with a fixed number of
// workers draining a shared queue. Tasks never return errors: per-item
// failures are handled by the caller's fallback values, and a batch always
// runs to completion.
type runner struct {
	concurrency int
}

func newRunner(concurrency int) *runner {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &runner{concurrency: concurrency}
}

// run invokes fn for every index in [0, n) using at most r.concurrency
// concurrent workers, and blocks until all tasks finish.
func (r *runner) run(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(gctx, i)
			return nil
		})
	}
	// Tasks cannot fail; Wait only synchronizes.
	_ = g.Wait()
}
