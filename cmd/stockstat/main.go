package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"stockstat/internal/config"
	"stockstat/internal/dataload"
	"stockstat/internal/files"
	"stockstat/internal/infrastructure"
	"stockstat/internal/report"
	"stockstat/internal/runner"
	"stockstat/internal/stats"
	"stockstat/pkg/contracts"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file (optional)")
	dir := flag.String("dir", "", "directory containing price files (overrides config)")
	backend := flag.String("backend", "", "serial | parallel | scatter (overrides config)")
	workers := flag.Int("workers", 0, "worker count for parallel backends (0 = all CPUs)")
	csvOut := flag.String("csv", "", "also write summaries to this CSV file (relative to report dir)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Flags win over config file and environment.
	if *dir != "" {
		cfg.Data.Dir = *dir
	}
	if *backend != "" {
		cfg.Engine.Backend = *backend
	}
	if *workers > 0 {
		cfg.Engine.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Starting analysis",
		slog.String("version", contracts.Version),
		slog.String("backend", cfg.Engine.Backend),
		slog.Int("workers", cfg.Engine.Workers),
		slog.String("data_dir", cfg.Data.Dir))

	paths := flag.Args()
	if len(paths) == 0 {
		discovery := files.NewDiscovery("")
		found, err := discovery.FindDataFiles(cfg.Data.Dir, cfg.Data.Format)
		if err != nil {
			logger.Error("Failed to discover data files",
				slog.String("dir", cfg.Data.Dir),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		paths = files.Paths(found)
	}
	if len(paths) == 0 {
		logger.Error("No data files found", slog.String("dir", cfg.Data.Dir))
		os.Exit(1)
	}
	logger.Info("Data files found", slog.Int("count", len(paths)))

	eng, err := runner.New(cfg.Engine.Backend, runner.Options{
		Filter:        cfg.Filter.ToFilter(),
		TrackAllYears: cfg.Filter.TrackAll(),
		Workers:       cfg.Engine.Workers,
	})
	if err != nil {
		logger.Error("Failed to create compute backend", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	start := time.Now()

	seriesList, err := dataload.LoadAll(ctx, paths)
	if err != nil {
		logger.Error("Failed to load data files", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := report.NewTextWriter(os.Stdout, cfg.Report.CompatDecadeLabels)
	var rows []report.SummaryRow
	pooled := stats.NewAccumulator()

	for _, series := range seriesList {
		acc, err := eng.Accumulate(ctx, series.Records)
		if err != nil {
			logger.Error("Analysis failed",
				slog.String("symbol", series.Symbol),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		pooled.Merge(acc)

		summary := acc.Finalize()
		rows = append(rows, report.SummaryRow{Symbol: series.Symbol, Summary: summary})
		if err := writer.WriteSeriesSummary(series.Symbol, summary); err != nil {
			logger.Error("Failed to write report", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if len(seriesList) > 1 {
		combined := pooled.Finalize()
		rows = append(rows, report.SummaryRow{Symbol: "ALL", Summary: combined})
		if err := writer.WritePooledSummary(combined); err != nil {
			logger.Error("Failed to write report", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	elapsed := time.Since(start)
	if *csvOut != "" {
		csvWriter := report.NewCSVWriter(cfg.Report.OutputDir)
		if err := csvWriter.WriteSummaries(*csvOut, rows); err != nil {
			logger.Error("Failed to write CSV summaries", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("Analysis completed",
		slog.Int("series_count", len(seriesList)),
		slog.String("backend", eng.Name()),
		slog.Duration("elapsed", elapsed))
	fmt.Printf("Analyzed %d series in %s\n", len(seriesList), elapsed.Round(time.Millisecond))
}
