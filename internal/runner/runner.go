// Package runner provides the execution backends for the statistics
// engine. All backends implement the same contract over an ordered record
// sequence; they differ only in how the single accumulation pass is
// scheduled, so results agree across backends and worker counts up to
// floating point rounding.
//
// Chunking is always by contiguous row ranges: a chunk [lo, hi) owns the
// price contributions of rows lo..hi-1 and the returns of pairs starting
// in that range, which is exactly the split that avoids double-counting
// or gaps at chunk boundaries (see stats.Accumulate).
package runner

import (
	"context"
	"fmt"

	"stockstat/internal/stats"
	"stockstat/pkg/contracts/domain"
)

// Backend names accepted by New.
const (
	BackendSerial   = "serial"
	BackendParallel = "parallel"
	BackendScatter  = "scatter"
)

// Runner executes one statistics pass over an ordered record sequence.
// Accumulate produces the pooled partial sums; AccumulateBuckets produces
// the decade-partitioned variant. Both return mergeable partials so a
// caller can combine results across several instrument files.
type Runner interface {
	Name() string
	Accumulate(ctx context.Context, records []domain.DailyRecord) (stats.Accumulator, error)
	AccumulateBuckets(ctx context.Context, records []domain.DailyRecord) (*stats.BucketSet, error)
}

// Options configures a backend.
type Options struct {
	// Filter is the data-quality policy for the pooled pass; nil
	// disables cleaning. The bucketed pass substitutes the default
	// filter when nil, since decade analysis is defined over cleaned
	// data.
	Filter *stats.Filter

	// TrackAllYears makes the bucketed pass record min/max years even
	// for rows the filter excludes.
	TrackAllYears bool

	// Workers is the parallelism degree for the parallel and scatter
	// backends. Zero picks a default based on GOMAXPROCS.
	Workers int
}

// New builds the named backend.
func New(backend string, opts Options) (Runner, error) {
	switch backend {
	case BackendSerial:
		return NewSerial(opts), nil
	case BackendParallel:
		return NewParallel(opts), nil
	case BackendScatter:
		return NewScatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s, %s, or %s)",
			backend, BackendSerial, BackendParallel, BackendScatter)
	}
}

// Summarize runs a pooled pass and finalizes it in one step, which is
// the accumulate(records) -> Summary contract most callers want.
func Summarize(ctx context.Context, r Runner, records []domain.DailyRecord) (stats.Summary, error) {
	acc, err := r.Accumulate(ctx, records)
	if err != nil {
		return stats.Summary{}, err
	}
	return acc.Finalize(), nil
}

// Serial is the single-pass baseline backend.
type Serial struct {
	opts Options
}

// NewSerial creates the serial backend.
func NewSerial(opts Options) *Serial {
	return &Serial{opts: opts}
}

// Name implements Runner.
func (s *Serial) Name() string { return BackendSerial }

// Accumulate implements Runner with one unpartitioned pass.
func (s *Serial) Accumulate(ctx context.Context, records []domain.DailyRecord) (stats.Accumulator, error) {
	if err := ctx.Err(); err != nil {
		return stats.Accumulator{}, fmt.Errorf("serial pass cancelled: %w", err)
	}
	return stats.Accumulate(records, 0, len(records), s.opts.Filter), nil
}

// AccumulateBuckets implements Runner.
func (s *Serial) AccumulateBuckets(ctx context.Context, records []domain.DailyRecord) (*stats.BucketSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("serial pass cancelled: %w", err)
	}
	b := stats.NewBucketSet(s.opts.Filter, s.opts.TrackAllYears)
	b.AccumulateRange(records, 0, len(records))
	return b, nil
}
