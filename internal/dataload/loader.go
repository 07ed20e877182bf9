package dataload

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"stockstat/pkg/contracts/domain"
)

// LoadFile dispatches on the file extension and loads one series.
func LoadFile(path string) (domain.Series, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx", ".xls":
		return LoadExcel(path)
	default:
		return domain.Series{}, fmt.Errorf("unsupported file type: %s", path)
	}
}

// LoadAll loads every path into its own series. A file that cannot be
// loaded is logged and skipped; its contribution to the analysis is
// zero. The returned slice preserves the input order.
func LoadAll(ctx context.Context, paths []string) ([]domain.Series, error) {
	var out []domain.Series
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("loading cancelled: %w", ctx.Err())
		default:
		}

		series, err := LoadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable data file",
				"file", path,
				"error", err,
			)
			continue
		}
		slog.Debug("loaded series",
			"file", filepath.Base(path),
			"symbol", series.Symbol,
			"records", series.Len(),
		)
		out = append(out, series)
	}
	return out, nil
}
