package stats

import (
	"fmt"
	"sort"

	"stockstat/pkg/contracts/domain"
)

// compatFinalDecade is the decade start whose label historically ran one
// year long (reported as ending 2020 instead of 2019). The uniform label
// is the default; the old behavior stays available behind the compat flag
// for byte-identical reports.
const compatFinalDecade = 2010

// DecadeStart returns the first year of the decade containing year, e.g.
// 1975 -> 1970. For years within the configured range this is equivalent
// to the bucket index (year-1900)/10 scaled back to a year.
func DecadeStart(year int) int {
	return year - year%10
}

// DecadeLabel formats the inclusive year span of a decade bucket. With
// compat set, the 2010 bucket is labeled "2010-2020" to reproduce the
// historical off-by-one; otherwise every bucket ends at start+9.
func DecadeLabel(start int, compat bool) string {
	end := start + 9
	if compat && start == compatFinalDecade {
		end = 2020
	}
	return fmt.Sprintf("%d-%d", start, end)
}

// BucketSet partitions a statistics pass by decade. Buckets are created
// on demand in a map keyed by decade start year, so there is no fixed
// ceiling on the year range beyond the filter's own bounds.
//
// Like Accumulator, a BucketSet over one contiguous chunk merges with
// another via Merge, which is what the parallel backends rely on.
type BucketSet struct {
	filter        *Filter
	trackAllYears bool

	buckets map[int]*Accumulator
	minYear int
	maxYear int
}

// NewBucketSet creates an empty bucket set. A nil filter falls back to
// DefaultFilter, since the decade analysis is defined over cleaned data.
// With trackAllYears set, the global min/max year range includes records
// that the filter excludes from every bucket.
func NewBucketSet(f *Filter, trackAllYears bool) *BucketSet {
	if f == nil {
		f = DefaultFilter()
	}
	return &BucketSet{
		filter:        f,
		trackAllYears: trackAllYears,
		buckets:       make(map[int]*Accumulator),
		minYear:       yearTrackingMin,
		maxYear:       yearTrackingMax,
	}
}

// Filter exposes the data-quality policy this set accumulates under.
func (b *BucketSet) Filter() *Filter {
	return b.filter
}

func (b *BucketSet) bucket(start int) *Accumulator {
	acc, ok := b.buckets[start]
	if !ok {
		a := NewAccumulator()
		acc = &a
		b.buckets[start] = acc
	}
	return acc
}

func (b *BucketSet) observeYear(y int) {
	if y < b.minYear {
		b.minYear = y
	}
	if y > b.maxYear {
		b.maxYear = y
	}
}

// AccumulateRange folds the row range [lo, hi) of records into the
// decade buckets. Rows outside the filter's year range contribute to no
// bucket (dropped, not clamped); with trackAllYears they still widen the
// reported global year range. Return pairs are keyed by the year of the
// earlier record. The chunking contract matches Accumulate: returns are
// taken for pairs whose first row lies in [lo, min(hi, len(records)-1)).
func (b *BucketSet) AccumulateRange(records []domain.DailyRecord, lo, hi int) {
	n := len(records)
	if hi > n {
		hi = n
	}
	if lo < 0 {
		lo = 0
	}

	for i := lo; i < hi; i++ {
		r := records[i]
		year := r.Year()
		if b.trackAllYears {
			b.observeYear(year)
		}
		if !b.filter.YearOK(year) {
			continue
		}
		if !b.trackAllYears {
			b.observeYear(year)
		}
		if b.filter.RecordOK(r) {
			acc := b.bucket(DecadeStart(year))
			acc.AddRecord(r)
			acc.ObserveYear(year)
		}
	}

	retHi := hi
	if retHi > n-1 {
		retHi = n - 1
	}
	for i := lo; i < retHi; i++ {
		year := records[i].Year()
		if !b.filter.YearOK(year) {
			continue
		}
		prev, curr := records[i].Close, records[i+1].Close
		ret := DailyReturn(prev, curr)
		if b.filter.ReturnPairOK(prev, curr, ret) {
			b.bucket(DecadeStart(year)).AddReturn(ret)
		}
	}
}

// Merge folds another bucket set into this one. Both sets must share the
// same filter semantics for the result to be meaningful.
func (b *BucketSet) Merge(other *BucketSet) {
	for start, acc := range other.buckets {
		b.bucket(start).Merge(*acc)
	}
	if other.minYear < b.minYear {
		b.minYear = other.minYear
	}
	if other.maxYear > b.maxYear {
		b.maxYear = other.maxYear
	}
}

// Decades returns the populated decade start years in ascending order.
func (b *BucketSet) Decades() []int {
	starts := make([]int, 0, len(b.buckets))
	for start := range b.buckets {
		starts = append(starts, start)
	}
	sort.Ints(starts)
	return starts
}

// YearRange reports the observed global year span. ok is false when no
// record was ever seen.
func (b *BucketSet) YearRange() (min, max int, ok bool) {
	if b.minYear == yearTrackingMin && b.maxYear == yearTrackingMax {
		return 0, 0, false
	}
	return b.minYear, b.maxYear, true
}

// Finalize derives one Summary per populated decade.
func (b *BucketSet) Finalize() map[int]Summary {
	out := make(map[int]Summary, len(b.buckets))
	for start, acc := range b.buckets {
		out[start] = acc.Finalize()
	}
	return out
}
