package imaging

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Option tunes a single batch or composition call.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers caps the number of images processed concurrently.
// Values <= 0 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// parallelMap runs fn over items with at most workers tasks in flight and
// returns the results in input order.
//
// The first error cancels the batch: tasks that have not started yet return
// immediately, and the error is returned with no partial results. Each task
// owns its output slot; items is only read.
func parallelMap[T, R any](items []T, workers int, fn func(int, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 1 {
		r, err := fn(0, items[0])
		if err != nil {
			return nil, err
		}
		results[0] = r
		return results, nil
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i := range items {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			r, err := fn(i, items[i])
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
