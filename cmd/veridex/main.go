package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"reflect"
	"syscall"

	"veridex"
	"veridex/internal/config"
	"veridex/internal/engine"
	"veridex/internal/telemetry"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("VERIDEX_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	var (
		inPath   = flag.String("in", "-", "path to a JSON array of statements, or - for stdin")
		outPath  = flag.String("out", "-", "path to write the JSON report, or - for stdout")
		caseID   = flag.String("case", "default", "case identifier recorded on the report")
		validate = flag.Bool("validate", false, "run the engine twice over the same input and verify the reports are identical")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.Info("veridex starting", "version", "0.1.0", "case_id", *caseID)

	otelShutdown, err := telemetry.Init(ctx, cfg.OTELEndpoint, cfg.ServiceName, "0.1.0", *caseID, cfg.OTELInsecure)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer otelShutdown(context.Background())

	statements, err := readStatements(*inPath)
	if err != nil {
		return fmt.Errorf("read statements: %w", err)
	}

	app, err := veridex.New(
		veridex.WithLogger(logger),
		veridex.WithConfig(engine.Config{
			EmbeddingDimension:      cfg.EmbeddingDimension,
			MinEntityMentions:       cfg.MinEntityMentions,
			ClusterWindowHours:      cfg.ClusterWindowHours,
			GapUnusualMultiple:      cfg.GapUnusualMultiple,
			TimelineConflictDays:    cfg.TimelineConflictDays,
			SimilarityThreshold:     cfg.SimilarityThreshold,
			HighSimilarityThreshold: cfg.HighSimilarityThreshold,
		}),
	)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	report, err := app.Run(ctx, *caseID, statements)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if *validate {
		second, err := app.Run(ctx, *caseID, statements)
		if err != nil {
			return fmt.Errorf("validation run: %w", err)
		}
		if !reflect.DeepEqual(report, second) {
			return fmt.Errorf("validate: two runs over the same input produced different reports")
		}
		slog.Info("validate: two runs produced identical reports")
	}

	if err := writeReport(*outPath, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	slog.Info("veridex complete", "total_contradictions", report.TotalContradictions)
	return nil
}

func readStatements(path string) ([]veridex.Statement, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var statements []veridex.Statement
	if err := json.NewDecoder(r).Decode(&statements); err != nil {
		return nil, fmt.Errorf("decode statements: %w", err)
	}
	return statements, nil
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func writeReport(path string, report veridex.ContradictionReport) error {
	w, err := openWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func openWriter(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
