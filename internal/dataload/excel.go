package dataload

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"stockstat/pkg/contracts/domain"
)

// LoadExcel reads one instrument's daily series from the first sheet of
// an Excel workbook. The sheet must follow the same column layout as the
// CSV loaders; malformed rows are skipped with a warning.
func LoadExcel(path string) (domain.Series, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Series{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Series{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.Series{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	series := domain.Series{Symbol: SymbolFromPath(path)}
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		rec, err := rowToRecord(row)
		if err != nil {
			slog.Warn("skipping malformed sheet row",
				"file", filepath.Base(path),
				"sheet", sheets[0],
				"row", i+1,
				"error", err,
			)
			continue
		}
		series.Records = append(series.Records, rec)
	}

	sortByDate(series.Records)
	return series, nil
}
