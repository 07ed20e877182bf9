package report

import (
	"fmt"
	"io"

	"stockstat/internal/stats"
)

// TextWriter renders summaries as plain-text report sections.
type TextWriter struct {
	w            io.Writer
	compatLabels bool
}

// NewTextWriter creates a text report writer. When compatLabels is set
// the final decade is labelled with an inclusive upper year.
func NewTextWriter(w io.Writer, compatLabels bool) *TextWriter {
	return &TextWriter{w: w, compatLabels: compatLabels}
}

// WriteSeriesSummary writes the summary block for a single series.
func (t *TextWriter) WriteSeriesSummary(symbol string, s stats.Summary) error {
	if _, err := fmt.Fprintf(t.w, "=== %s ===\n", symbol); err != nil {
		return err
	}
	return t.writeSummaryBody(s)
}

// WritePooledSummary writes the combined summary across all series.
func (t *TextWriter) WritePooledSummary(s stats.Summary) error {
	if _, err := fmt.Fprintln(t.w, "=== Combined ==="); err != nil {
		return err
	}
	return t.writeSummaryBody(s)
}

func (t *TextWriter) writeSummaryBody(s stats.Summary) error {
	if s.Insufficient() {
		_, err := fmt.Fprintf(t.w, "Rows used: %d (insufficient data)\n\n", s.RecordCount)
		return err
	}

	fmt.Fprintf(t.w, "Rows used:          %d\n", s.RecordCount)
	fmt.Fprintf(t.w, "Mean daily price:   %s\n", formatPrice(s.MeanPrice))
	if s.HasReturns {
		fmt.Fprintf(t.w, "Mean daily return:  %s\n", formatPercent(s.MeanReturn))
		fmt.Fprintf(t.w, "Volatility:         %.6f (%.2f%%)\n", s.Volatility, s.VolatilityPercent())
		fmt.Fprintf(t.w, "Approx annual ret:  %s\n", formatPercent(s.AnnualizedReturn))
	} else {
		fmt.Fprintln(t.w, "Mean daily return:  N/A")
		fmt.Fprintln(t.w, "Volatility:         N/A")
	}
	if s.HasYears {
		fmt.Fprintf(t.w, "Year range:         %d-%d\n", s.MinYear, s.MaxYear)
	}
	_, err := fmt.Fprintln(t.w)
	return err
}

// WriteDecadeReport writes one block per decade bucket, in ascending
// decade order, followed by the overall year range when available.
func (t *TextWriter) WriteDecadeReport(symbol string, buckets *stats.BucketSet) error {
	if _, err := fmt.Fprintf(t.w, "=== %s by decade ===\n", symbol); err != nil {
		return err
	}

	summaries := buckets.Finalize()
	for _, start := range buckets.Decades() {
		s := summaries[start]
		label := stats.DecadeLabel(start, t.compatLabels)
		fmt.Fprintf(t.w, "%s:\n", label)
		fmt.Fprintf(t.w, "  Rows used:         %d\n", s.RecordCount)
		if s.HasPrices {
			fmt.Fprintf(t.w, "  Mean daily price:  %s\n", formatPrice(s.MeanPrice))
		}
		if s.HasReturns {
			fmt.Fprintf(t.w, "  Mean daily return: %s\n", formatPercent(s.MeanReturn))
			fmt.Fprintf(t.w, "  Volatility:        %.6f (%.2f%%)\n", s.Volatility, s.VolatilityPercent())
			fmt.Fprintf(t.w, "  Approx annual ret: %s\n", formatPercent(s.AnnualizedReturn))
		} else {
			fmt.Fprintln(t.w, "  Volatility:        N/A (fewer than 2 usable rows)")
		}
	}

	if min, max, ok := buckets.YearRange(); ok {
		fmt.Fprintf(t.w, "Years covered: %d-%d\n", min, max)
	}
	_, err := fmt.Fprintln(t.w)
	return err
}
