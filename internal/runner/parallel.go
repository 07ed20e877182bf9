package runner

import (
	"context"
	"fmt"

	"github.com/exascience/pargo/parallel"

	"stockstat/internal/stats"
	"stockstat/pkg/contracts/domain"
)

// Parallel is the shared-memory fork/join backend. It divides the row
// range into batches executed on their own goroutines via pargo's
// recursive binary fork/join, each computing a private partial
// accumulator, then combines partials pairwise with Merge. This is the
// explicit fan-out/fan-in rendition of a parallel-for reduction: no
// shared mutable state exists during the parallel phase, so no locking
// is needed beyond the join itself.
type Parallel struct {
	opts Options
}

// NewParallel creates the fork/join backend. Options.Workers sets the
// batch count; zero lets pargo derive one from GOMAXPROCS.
func NewParallel(opts Options) *Parallel {
	return &Parallel{opts: opts}
}

// Name implements Runner.
func (p *Parallel) Name() string { return BackendParallel }

// Accumulate implements Runner.
func (p *Parallel) Accumulate(ctx context.Context, records []domain.DailyRecord) (stats.Accumulator, error) {
	if err := ctx.Err(); err != nil {
		return stats.Accumulator{}, fmt.Errorf("parallel pass cancelled: %w", err)
	}

	result, err := parallel.RangeReduce(0, len(records), p.opts.Workers,
		func(low, high int) (interface{}, error) {
			acc := stats.Accumulate(records, low, high, p.opts.Filter)
			return &acc, nil
		},
		func(x, y interface{}) (interface{}, error) {
			left := x.(*stats.Accumulator)
			right := y.(*stats.Accumulator)
			left.Merge(*right)
			return left, nil
		})
	if err != nil {
		return stats.Accumulator{}, fmt.Errorf("parallel reduce: %w", err)
	}
	return *result.(*stats.Accumulator), nil
}

// AccumulateBuckets implements Runner.
func (p *Parallel) AccumulateBuckets(ctx context.Context, records []domain.DailyRecord) (*stats.BucketSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parallel pass cancelled: %w", err)
	}

	result, err := parallel.RangeReduce(0, len(records), p.opts.Workers,
		func(low, high int) (interface{}, error) {
			b := stats.NewBucketSet(p.opts.Filter, p.opts.TrackAllYears)
			b.AccumulateRange(records, low, high)
			return b, nil
		},
		func(x, y interface{}) (interface{}, error) {
			left := x.(*stats.BucketSet)
			left.Merge(y.(*stats.BucketSet))
			return left, nil
		})
	if err != nil {
		return nil, fmt.Errorf("parallel reduce: %w", err)
	}
	return result.(*stats.BucketSet), nil
}
