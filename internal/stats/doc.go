// Package stats implements the streaming market statistics engine.
// It consumes ordered sequences of daily OHLCV records and produces
// record counts, mean daily prices, and return volatility, either pooled
// or partitioned into decade buckets.
//
// # Architecture
//
// The package is organized around three components:
//
// 1. Accumulator: single-pass running sums for one partition
// 2. Filter: optional data-quality policy applied during accumulation
// 3. BucketSet: on-demand map of decade-keyed accumulators
//
// The engine keeps running sums instead of buffering per-return values,
// so memory stays constant regardless of input size. Variance uses the
// one-pass E[X²]−E[X]² form, clamped at zero before the square root; it
// is less numerically stable than a two-pass mean-then-deviation pass for
// ill-conditioned inputs, but agrees with it to well past the precision
// reported here.
//
// Accumulators form a commutative monoid under Merge (up to floating
// point non-associativity), which is what lets the execution backends in
// internal/runner split a pass into chunks and recombine partial results.
//
// # Usage
//
// Pooled statistics over one series:
//
//	acc := stats.Accumulate(records, 0, len(records), nil)
//	summary := acc.Finalize()
//
// Decade-bucketed statistics with data cleaning:
//
//	buckets := stats.NewBucketSet(stats.DefaultFilter(), true)
//	buckets.AccumulateRange(records, 0, len(records))
//	perDecade := buckets.Finalize()
package stats
