package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"stockstat/internal/stats"
	"stockstat/pkg/contracts/domain"
)

// Scatter is the coordinator/worker backend, modeled on the
// broadcast-scatter-reduce collective pattern. The coordinator owns the
// canonical record slice and hands each worker a disjoint contiguous
// index range rather than a copy of the data; each worker computes a
// private partial accumulator over its slice and sends it back, and the
// coordinator performs the final reduction by merging partials in worker
// rank order. Rank-ordered merging keeps the floating point combination
// order deterministic for a given worker count.
type Scatter struct {
	opts Options
}

// NewScatter creates the coordinator/worker backend.
func NewScatter(opts Options) *Scatter {
	return &Scatter{opts: opts}
}

// Name implements Runner.
func (s *Scatter) Name() string { return BackendScatter }

func (s *Scatter) workers(n int) int {
	w := s.opts.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// assignment is the index range scattered to one worker. The range is a
// row range; the worker also owns the returns whose first row falls in
// it, so boundary pairs are counted exactly once.
type assignment struct {
	rank int
	lo   int
	hi   int
}

// splitRows divides [0, n) into w contiguous ranges whose sizes differ
// by at most one. Unlike a truncating n/w split, no tail rows are
// dropped.
func splitRows(n, w int) []assignment {
	assignments := make([]assignment, 0, w)
	base := n / w
	extra := n % w
	lo := 0
	for rank := 0; rank < w; rank++ {
		size := base
		if rank < extra {
			size++
		}
		assignments = append(assignments, assignment{rank: rank, lo: lo, hi: lo + size})
		lo += size
	}
	return assignments
}

// Accumulate implements Runner.
func (s *Scatter) Accumulate(ctx context.Context, records []domain.DailyRecord) (stats.Accumulator, error) {
	w := s.workers(len(records))
	partials := make([]stats.Accumulator, w)

	g, gctx := errgroup.WithContext(ctx)
	work := make(chan assignment)

	for i := 0; i < w; i++ {
		g.Go(func() error {
			for a := range work {
				partials[a.rank] = stats.Accumulate(records, a.lo, a.hi, s.opts.Filter)
			}
			return gctx.Err()
		})
	}

	g.Go(func() error {
		defer close(work)
		for _, a := range splitRows(len(records), w) {
			select {
			case work <- a:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return stats.Accumulator{}, fmt.Errorf("scatter pass: %w", err)
	}

	total := stats.NewAccumulator()
	for _, p := range partials {
		total.Merge(p)
	}
	return total, nil
}

// AccumulateBuckets implements Runner.
func (s *Scatter) AccumulateBuckets(ctx context.Context, records []domain.DailyRecord) (*stats.BucketSet, error) {
	w := s.workers(len(records))
	partials := make([]*stats.BucketSet, w)

	g, gctx := errgroup.WithContext(ctx)
	work := make(chan assignment)

	for i := 0; i < w; i++ {
		g.Go(func() error {
			for a := range work {
				b := stats.NewBucketSet(s.opts.Filter, s.opts.TrackAllYears)
				b.AccumulateRange(records, a.lo, a.hi)
				partials[a.rank] = b
			}
			return gctx.Err()
		})
	}

	g.Go(func() error {
		defer close(work)
		for _, a := range splitRows(len(records), w) {
			select {
			case work <- a:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scatter pass: %w", err)
	}

	total := stats.NewBucketSet(s.opts.Filter, s.opts.TrackAllYears)
	for _, p := range partials {
		if p != nil {
			total.Merge(p)
		}
	}
	return total, nil
}
