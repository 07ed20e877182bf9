package domain

import (
	"time"
)

// DailyRecord represents one daily OHLCV price bar for a single instrument.
// Records are produced by the data loaders and consumed read-only by the
// statistics engine; they are never mutated after parsing.
type DailyRecord struct {
	Date   time.Time `json:"date" validate:"required"`
	Open   float64   `json:"open" validate:"min=0"`
	High   float64   `json:"high" validate:"min=0"`
	Low    float64   `json:"low" validate:"min=0"`
	Close  float64   `json:"close" validate:"min=0"`
	Volume float64   `json:"volume" validate:"min=0"`
}

// DailyAverage returns the mean of the four OHLC prices for this bar.
func (r DailyRecord) DailyAverage() float64 {
	return (r.Open + r.High + r.Low + r.Close) / 4.0
}

// Year returns the calendar year of the record's date.
func (r DailyRecord) Year() int {
	return r.Date.Year()
}

// IsValid performs basic sanity checks on the price fields.
// A valid bar has non-negative prices and High >= Low.
func (r DailyRecord) IsValid() bool {
	if r.Open < 0 || r.High < 0 || r.Low < 0 || r.Close < 0 {
		return false
	}
	if r.High < r.Low {
		return false
	}
	if r.Volume < 0 {
		return false
	}
	return true
}

// Series is an ordered, chronological sequence of daily records for one
// instrument. Return computations pair each record with its successor, so
// ordering matters; the loaders sort by date before handing a Series to
// the engine.
type Series struct {
	Symbol  string        `json:"symbol"`
	Records []DailyRecord `json:"records"`
}

// Len returns the number of records in the series.
func (s Series) Len() int {
	return len(s.Records)
}
