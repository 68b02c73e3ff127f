package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"trunkreport/internal/config"
	"trunkreport/internal/files"
	"trunkreport/internal/infrastructure"
	"trunkreport/internal/pipeline"
	"trunkreport/internal/services"
)

func main() {
	var (
		outDir  = flag.String("out", "processed", "directory for output artifacts")
		format  = flag.String("format", "csv", "output format: csv or xlsx")
		workers = flag.Int("workers", 4, "number of files to process concurrently")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file.csv|file.xlsx> [more files...]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger, closeLogger, err := infrastructure.InitializeLogger(config.LoggingConfig{
		Level:  "info",
		Output: "console",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLogger()

	if err := run(context.Background(), logger, *outDir, *format, *workers, flag.Args()); err != nil {
		logger.Error("processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, outDir, format string, workers int, inputs []string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	svc := services.NewReportService(pipeline.DefaultConfig(), files.NewManager(outDir, logger), logger)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, input := range inputs {
		g.Go(func() error {
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open %s: %w", input, err)
			}
			defer f.Close()

			result, err := svc.Process(ctx, filepath.Base(input), f, services.OutputFormat(format))
			if err != nil {
				return fmt.Errorf("process %s: %w", input, err)
			}

			logger.Info("processed",
				slog.String("input", input),
				slog.String("artifact", filepath.Join(outDir, result.Artifact)),
				slog.Int("input_rows", result.Summary.InputRows),
				slog.Int("groups", result.Summary.Groups),
				slog.Int("adjusted_rows", result.Summary.AdjustedRows))
			return nil
		})
	}

	return g.Wait()
}
