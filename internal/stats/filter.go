package stats

import (
	"math"

	"stockstat/pkg/contracts/domain"
)

// Default data-quality bounds. Prices outside these limits are treated
// as data artifacts, as are single-day moves of more than 100%.
const (
	DefaultMinPrice  = 0.01
	DefaultMaxPrice  = 10000.0
	DefaultMaxReturn = 1.0
	DefaultMinYear   = 1900
	DefaultMaxYear   = 2100
)

// Filter is the data-quality policy applied during accumulation. A nil
// *Filter disables all cleaning, which matches the pooled analysis; the
// decade-bucketed analysis runs with DefaultFilter.
//
// Out-of-bounds contributions are excluded entirely, never clipped to
// the nearest bound.
type Filter struct {
	MinPrice  float64
	MaxPrice  float64
	MaxReturn float64
	MinYear   int
	MaxYear   int
}

// DefaultFilter returns the standard cleaning policy.
func DefaultFilter() *Filter {
	return &Filter{
		MinPrice:  DefaultMinPrice,
		MaxPrice:  DefaultMaxPrice,
		MaxReturn: DefaultMaxReturn,
		MinYear:   DefaultMinYear,
		MaxYear:   DefaultMaxYear,
	}
}

func (f *Filter) priceOK(v float64) bool {
	return v >= f.MinPrice && v <= f.MaxPrice
}

// RecordOK reports whether all four OHLC prices lie within bounds, making
// the record eligible for a price-average contribution.
func (f *Filter) RecordOK(r domain.DailyRecord) bool {
	return f.priceOK(r.Open) && f.priceOK(r.High) && f.priceOK(r.Low) && f.priceOK(r.Close)
}

// ReturnPairOK reports whether a return computed from the pair of closes
// is eligible for a return contribution: both closes within bounds, a
// nonzero previous close, and a return magnitude not exceeding MaxReturn.
func (f *Filter) ReturnPairOK(prevClose, currClose, ret float64) bool {
	if !f.priceOK(prevClose) || !f.priceOK(currClose) {
		return false
	}
	if prevClose == 0 {
		return false
	}
	return math.Abs(ret) <= f.MaxReturn
}

// YearOK reports whether the year lies inside the configured range.
// Records outside it are excluded from bucketed accumulation entirely.
func (f *Filter) YearOK(year int) bool {
	return year >= f.MinYear && year <= f.MaxYear
}
