// Package veridex is the public API for embedding the forensic
// contradiction-analysis engine.
//
// Callers construct an App once and run it over one case's worth of
// evidence at a time:
//
//	app, err := veridex.New(
//	    veridex.WithLogger(logger),
//	    veridex.WithConfig(engine.DefaultConfig()),
//	)
//	if err != nil { ... }
//	report, err := app.Run(ctx, "case-123", statements)
//
// The import graph enforces a strict no-cycle rule: veridex (root) imports
// internal/*, but internal/* never imports veridex. Public types (Statement,
// ContradictionReport) are aliases of internal/model types since this
// engine has no enterprise/OSS split to hide behind a curated view.
package veridex

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"

	"veridex/internal/engine"
	"veridex/internal/lexicon"
	"veridex/internal/model"
)

// App is the engine lifecycle. Construct with New(), run with Run(). App
// has no public fields — use New() options to configure it.
type App struct {
	eng    *engine.Engine
	logger *slog.Logger
}

// New builds an App from the given options. It performs no I/O beyond an
// optional best-effort `.env` load for local CLI convenience.
func New(opts ...Option) (*App, error) {
	o := resolvedOptions{
		config:  engine.DefaultConfig(),
		lexicon: lexicon.Default(),
	}
	for _, fn := range opts {
		fn(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	// Load .env file if present (non-fatal; most embeddings of this engine
	// won't have one, but the CLI binary benefits from it for local runs).
	_ = godotenv.Load()

	if o.config.EmbeddingDimension <= 0 {
		return nil, fmt.Errorf("veridex: embedding dimension must be positive, got %d", o.config.EmbeddingDimension)
	}

	return &App{
		eng:    engine.New(o.lexicon, o.config),
		logger: logger,
	}, nil
}

// Run analyzes one case's statements and returns the assembled
// ContradictionReport. It is safe to call Run repeatedly and concurrently
// on the same App — each call gets a fresh, isolated statement index.
func (a *App) Run(ctx context.Context, caseID string, statements []model.Statement) (ContradictionReport, error) {
	a.logger.Debug("veridex: run starting", "case_id", caseID, "statement_count", len(statements))
	report, err := a.eng.Run(ctx, caseID, statements)
	if err != nil {
		a.logger.Error("veridex: run failed", "case_id", caseID, "error", err)
		return ContradictionReport{}, err
	}
	a.logger.Debug("veridex: run complete", "case_id", caseID, "total_contradictions", report.TotalContradictions)
	return report, nil
}
