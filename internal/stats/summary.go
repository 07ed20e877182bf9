package stats

// Summary holds the derived statistics for one partition. It is produced
// by Accumulator.Finalize and is read-only afterwards.
//
// The Has* flags distinguish a genuine zero from an undefined value:
// a partition with no rows has HasPrices == false and reporting layers
// render "N/A" instead of 0.
type Summary struct {
	RecordCount int64 `json:"record_count"`
	ReturnCount int64 `json:"return_count"`

	MeanPrice        float64 `json:"mean_price"`
	MeanReturn       float64 `json:"mean_return"`
	Volatility       float64 `json:"volatility"`
	AnnualizedReturn float64 `json:"annualized_return"`

	MinYear int `json:"min_year,omitempty"`
	MaxYear int `json:"max_year,omitempty"`

	HasPrices  bool `json:"has_prices"`
	HasReturns bool `json:"has_returns"`
	HasYears   bool `json:"has_years"`
}

// Insufficient reports whether the partition had too little data for a
// meaningful result (fewer than two records means no returns exist).
func (s Summary) Insufficient() bool {
	return s.RecordCount < 2
}

// VolatilityPercent returns the volatility expressed as a percentage.
func (s Summary) VolatilityPercent() float64 {
	return s.Volatility * 100.0
}
