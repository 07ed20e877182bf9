package dataload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"stockstat/pkg/contracts/domain"
)

// dateFormats are tried in order when parsing a record's date field.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"01-02-2006",
	"20060102",
}

// LoadCSV reads one instrument's daily series from a CSV file. Malformed
// rows are skipped with a warning; only an unreadable file is an error.
// The returned series is sorted by date.
func LoadCSV(path string) (domain.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Series{}, fmt.Errorf("open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	series := domain.Series{Symbol: SymbolFromPath(path)}
	line := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			slog.Warn("skipping unreadable CSV row",
				"file", filepath.Base(path),
				"line", line,
				"error", err,
			)
			continue
		}
		if line == 1 && isHeaderRow(row) {
			continue
		}

		rec, err := rowToRecord(row)
		if err != nil {
			slog.Warn("skipping malformed CSV row",
				"file", filepath.Base(path),
				"line", line,
				"error", err,
			)
			continue
		}
		series.Records = append(series.Records, rec)
	}

	sortByDate(series.Records)
	return series, nil
}

// rowToRecord parses one row of string cells into a daily record. It
// accepts the 6-column Date,Open,High,Low,Close,Volume layout and the
// 7-column variant with an Adj Close column before Volume.
func rowToRecord(row []string) (domain.DailyRecord, error) {
	if len(row) < 6 {
		return domain.DailyRecord{}, fmt.Errorf("expected at least 6 columns, got %d", len(row))
	}

	date, err := parseDate(strings.TrimSpace(row[0]))
	if err != nil {
		return domain.DailyRecord{}, fmt.Errorf("parse date: %w", err)
	}

	open, err := parsePrice(row[1], "open")
	if err != nil {
		return domain.DailyRecord{}, err
	}
	high, err := parsePrice(row[2], "high")
	if err != nil {
		return domain.DailyRecord{}, err
	}
	low, err := parsePrice(row[3], "low")
	if err != nil {
		return domain.DailyRecord{}, err
	}
	closePrice, err := parsePrice(row[4], "close")
	if err != nil {
		return domain.DailyRecord{}, err
	}

	// With 7+ columns the fifth value column is Adj Close and volume
	// sits one further right.
	volumeCol := 5
	if len(row) >= 7 {
		volumeCol = 6
	}
	volume, err := parsePrice(row[volumeCol], "volume")
	if err != nil {
		return domain.DailyRecord{}, err
	}

	return domain.DailyRecord{
		Date:   date,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, format := range dateFormats {
		if date, err := time.Parse(format, s); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q", s)
}

func parsePrice(s, field string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty %s field", field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	return v, nil
}

// isHeaderRow reports whether the row looks like a column header rather
// than data. A first cell that parses as a date is data; anything else
// containing a known column name is a header.
func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	for _, name := range []string{"date", "symbol", "open", "high", "low", "close", "volume"} {
		if strings.Contains(first, name) {
			return true
		}
	}
	_, err := parseDate(strings.TrimSpace(row[0]))
	return err != nil
}

// SymbolFromPath derives an instrument symbol from a data file path:
// the base name up to its first dot, e.g. "AAPL.daily.csv" -> "AAPL".
func SymbolFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return base
}

func sortByDate(records []domain.DailyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}
