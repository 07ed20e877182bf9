package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"stockstat/internal/stats"
)

// summaryHeaders is the column layout shared by per-series and pooled
// summary exports.
var summaryHeaders = []string{
	"symbol", "rows", "returns", "mean_price", "mean_return",
	"volatility", "annualized_return", "min_year", "max_year",
}

var decadeHeaders = []string{
	"symbol", "decade", "rows", "returns", "mean_price", "mean_return",
	"volatility", "annualized_return",
}

// CSVWriter writes summary rows to CSV files under a base directory.
type CSVWriter struct {
	outputDir string
}

// NewCSVWriter creates a CSV writer rooted at outputDir. Relative file
// names are resolved against it; absolute paths are used as given.
func NewCSVWriter(outputDir string) *CSVWriter {
	return &CSVWriter{outputDir: outputDir}
}

// SummaryRow pairs a series symbol with its computed summary.
type SummaryRow struct {
	Symbol  string
	Summary stats.Summary
}

// WriteSummaries writes one row per summary to filename.
func (w *CSVWriter) WriteSummaries(filename string, rows []SummaryRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, summaryRecord(row.Symbol, row.Summary))
	}
	return w.writeCSV(filename, summaryHeaders, records)
}

// WriteDecades writes one row per decade bucket for a single series.
// Rows are emitted in ascending decade order.
func (w *CSVWriter) WriteDecades(filename, symbol string, buckets *stats.BucketSet, compatLabels bool) error {
	summaries := buckets.Finalize()
	records := make([][]string, 0, len(summaries))
	for _, start := range buckets.Decades() {
		s := summaries[start]
		records = append(records, []string{
			symbol,
			stats.DecadeLabel(start, compatLabels),
			formatInt(s.RecordCount),
			formatInt(s.ReturnCount),
			formatFloat(s.MeanPrice),
			formatFloat(s.MeanReturn),
			formatFloat(s.Volatility),
			formatFloat(s.AnnualizedReturn),
		})
	}
	return w.writeCSV(filename, decadeHeaders, records)
}

func summaryRecord(symbol string, s stats.Summary) []string {
	minYear, maxYear := "", ""
	if s.HasYears {
		minYear = fmt.Sprintf("%d", s.MinYear)
		maxYear = fmt.Sprintf("%d", s.MaxYear)
	}
	return []string{
		symbol,
		formatInt(s.RecordCount),
		formatInt(s.ReturnCount),
		formatFloat(s.MeanPrice),
		formatFloat(s.MeanReturn),
		formatFloat(s.Volatility),
		formatFloat(s.AnnualizedReturn),
		minYear,
		maxYear,
	}
}

// writeCSV writes headers and records to the resolved path, creating
// parent directories as needed.
func (w *CSVWriter) writeCSV(filename string, headers []string, records [][]string) error {
	fullPath := w.resolvePath(filename)

	slog.Info("writing CSV report",
		slog.String("path", fullPath),
		slog.Int("record_count", len(records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return writer.Error()
}

func (w *CSVWriter) resolvePath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(w.outputDir, filename)
}
