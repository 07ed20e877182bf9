package stats

import (
	"math"

	"stockstat/pkg/contracts/domain"
)

// TradingDaysPerYear is the conventional number of trading days used to
// annualize a mean daily return. It is an approximation, not a calendar
// calculation.
const TradingDaysPerYear = 252

// Sentinel initial values for year tracking, chosen so the first observed
// year always replaces them.
const (
	yearTrackingMin = 9999
	yearTrackingMax = 0
)

// DailyReturn computes the relative change between two consecutive closing
// prices. A zero previous close yields a zero return rather than an error;
// the comparison is exact (no epsilon) as a deliberate policy choice.
func DailyReturn(prevClose, currClose float64) float64 {
	if prevClose == 0 {
		return 0.0
	}
	return (currClose - prevClose) / prevClose
}

// Accumulator holds the running sums for one partition of a statistics
// pass. It is created zeroed via NewAccumulator, mutated once per record
// and once per adjacent return pair, and finalized exactly once into a
// Summary.
//
// Accumulators over disjoint contiguous chunks combine with Merge;
// addition of counts and sums is associative and commutative, so the
// combined result is independent of chunk boundaries up to floating
// point rounding.
type Accumulator struct {
	RowCount    int64
	SumDailyAvg float64
	ReturnCount int64
	SumReturn   float64
	SumReturnSq float64
	MinYear     int
	MaxYear     int
}

// NewAccumulator returns a zeroed accumulator ready for a pass.
func NewAccumulator() Accumulator {
	return Accumulator{
		MinYear: yearTrackingMin,
		MaxYear: yearTrackingMax,
	}
}

// AddRecord folds one record's daily average price into the partition.
func (a *Accumulator) AddRecord(r domain.DailyRecord) {
	a.SumDailyAvg += r.DailyAverage()
	a.RowCount++
}

// AddReturn folds one daily return into the partition.
func (a *Accumulator) AddReturn(r float64) {
	a.SumReturn += r
	a.SumReturnSq += r * r
	a.ReturnCount++
}

// ObserveYear widens the tracked year range to include y.
func (a *Accumulator) ObserveYear(y int) {
	if y < a.MinYear {
		a.MinYear = y
	}
	if y > a.MaxYear {
		a.MaxYear = y
	}
}

// YearRange reports the observed min and max years. The third return
// value is false when no year was ever observed.
func (a *Accumulator) YearRange() (min, max int, ok bool) {
	if a.MinYear == yearTrackingMin && a.MaxYear == yearTrackingMax {
		return 0, 0, false
	}
	return a.MinYear, a.MaxYear, true
}

// Merge folds another partial accumulator into this one.
func (a *Accumulator) Merge(b Accumulator) {
	a.RowCount += b.RowCount
	a.SumDailyAvg += b.SumDailyAvg
	a.ReturnCount += b.ReturnCount
	a.SumReturn += b.SumReturn
	a.SumReturnSq += b.SumReturnSq
	if b.MinYear < a.MinYear {
		a.MinYear = b.MinYear
	}
	if b.MaxYear > a.MaxYear {
		a.MaxYear = b.MaxYear
	}
}

// Finalize derives the summary statistics from the accumulated sums.
// It is a pure function of the accumulator and may be called on partial
// results without disturbing them.
func (a Accumulator) Finalize() Summary {
	s := Summary{
		RecordCount: a.RowCount,
		ReturnCount: a.ReturnCount,
	}
	s.MinYear, s.MaxYear, s.HasYears = a.YearRange()

	if a.RowCount > 0 {
		s.MeanPrice = a.SumDailyAvg / float64(a.RowCount)
		s.HasPrices = true
	}
	if a.ReturnCount > 0 {
		meanRet := a.SumReturn / float64(a.ReturnCount)
		meanSq := a.SumReturnSq / float64(a.ReturnCount)
		// One-pass variance; clamp guards round-off driving it
		// fractionally below zero.
		variance := meanSq - meanRet*meanRet
		if variance < 0 {
			variance = 0
		}
		s.MeanReturn = meanRet
		s.Volatility = math.Sqrt(variance)
		s.AnnualizedReturn = meanRet * TradingDaysPerYear
		s.HasReturns = true
	}
	return s
}

// Accumulate runs a single-pass accumulation over the row range [lo, hi)
// of records, applying the optional data-quality filter f (nil means no
// filtering). Returns are computed for every adjacent pair whose first
// row lies in [lo, min(hi, len(records)-1)), so splitting [0, n) into
// contiguous row chunks and merging the partial accumulators covers every
// row and every return exactly once.
func Accumulate(records []domain.DailyRecord, lo, hi int, f *Filter) Accumulator {
	acc := NewAccumulator()
	n := len(records)
	if hi > n {
		hi = n
	}
	if lo < 0 {
		lo = 0
	}

	for i := lo; i < hi; i++ {
		r := records[i]
		acc.ObserveYear(r.Year())
		if f == nil || f.RecordOK(r) {
			acc.AddRecord(r)
		}
	}

	retHi := hi
	if retHi > n-1 {
		retHi = n - 1
	}
	for i := lo; i < retHi; i++ {
		prev, curr := records[i].Close, records[i+1].Close
		ret := DailyReturn(prev, curr)
		if f == nil || f.ReturnPairOK(prev, curr, ret) {
			acc.AddReturn(ret)
		}
	}
	return acc
}
