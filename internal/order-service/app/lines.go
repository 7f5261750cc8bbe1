package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// LineOption tunes how a stage processes order lines.
type LineOption func(*lineConfig)

type lineConfig struct {
	concurrency int
}

// WithLineConcurrency lets up to n lines be processed at once. n <= 1 keeps
// lines strictly sequential.
func WithLineConcurrency(n int) LineOption {
	return func(c *lineConfig) { c.concurrency = n }
}

func newLineConfig(opts []LineOption) lineConfig {
	c := lineConfig{concurrency: 1}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// forEachLine calls fn for every index in [0, n). Sequential mode stops at the
// first error. Concurrent mode lets every line finish and then reports the
// error of the lowest failing index, so the outcome never depends on
// scheduling.
func forEachLine(ctx context.Context, n int, cfg lineConfig, fn func(ctx context.Context, i int) error) error {
	if cfg.concurrency <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, n)
	var g errgroup.Group
	g.SetLimit(cfg.concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			errs[i] = fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
