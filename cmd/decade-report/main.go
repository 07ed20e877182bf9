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
	"stockstat/pkg/contracts"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file (optional)")
	dir := flag.String("dir", "", "directory containing price files (overrides config)")
	backend := flag.String("backend", "", "serial | parallel | scatter (overrides config)")
	workers := flag.Int("workers", 0, "worker count for parallel backends (0 = all CPUs)")
	csvOut := flag.Bool("csv", false, "also write per-decade CSV files to the report dir")
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

	if *dir != "" {
		cfg.Data.Dir = *dir
	}
	if *backend != "" {
		cfg.Engine.Backend = *backend
	}
	if *workers > 0 {
		cfg.Engine.Workers = *workers
	}
	// Decade reports always run with cleaning enabled so that bogus
	// prices and split artifacts do not distort a whole decade.
	cfg.Filter.Enabled = true
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Starting decade analysis",
		slog.String("backend", cfg.Engine.Backend),
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
	csvWriter := report.NewCSVWriter(cfg.Report.OutputDir)

	for _, series := range seriesList {
		buckets, err := eng.AccumulateBuckets(ctx, series.Records)
		if err != nil {
			logger.Error("Analysis failed",
				slog.String("symbol", series.Symbol),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		if err := writer.WriteDecadeReport(series.Symbol, buckets); err != nil {
			logger.Error("Failed to write report", slog.String("error", err.Error()))
			os.Exit(1)
		}

		if *csvOut {
			name := fmt.Sprintf("%s_decades.csv", series.Symbol)
			if err := csvWriter.WriteDecades(name, series.Symbol, buckets, cfg.Report.CompatDecadeLabels); err != nil {
				logger.Error("Failed to write CSV report",
					slog.String("symbol", series.Symbol),
					slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
	}

	logger.Info("Decade analysis completed",
		slog.Int("series_count", len(seriesList)),
		slog.String("backend", eng.Name()),
		slog.Duration("elapsed", time.Since(start)))
	fmt.Printf("Analyzed %d series in %s\n", len(seriesList), time.Since(start).Round(time.Millisecond))
}
