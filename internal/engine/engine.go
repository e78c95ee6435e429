// Package engine is the top-level orchestrator: it wires the lexicon,
// statement index, contradiction engine, liability calculator, narrative
// composer, and report assembler into one Run call.
package engine

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/trace"

	"veridex/internal/contradiction"
	"veridex/internal/index"
	"veridex/internal/lexicon"
	"veridex/internal/liability"
	"veridex/internal/model"
	"veridex/internal/narrative"
	"veridex/internal/report"
	"veridex/internal/telemetry"
)

// anomalyCategory maps a behavioral anomaly's Type (from internal/behavior)
// to the liability calculator's base-category keys.
var anomalyCategory = map[string]string{
	"sentiment_shift":    "emotional",
	"certainty_decline":  "minimization",
	"tone_shift":         "emotional",
	"deflection_pattern": "deflection",
	"over_explaining":    "over_explain",
	"blame_shifting":     "blame",
	"gaslighting":        "gaslighting",
	"sudden_denial":      "passive_admission",
}

// Config mirrors contradiction.Options (the thresholds of spec.md §6). The
// lexicon is not part of Config; it is passed to New separately.
type Config struct {
	EmbeddingDimension      int
	MinEntityMentions       int
	ClusterWindowHours      float64
	GapUnusualMultiple      float64
	TimelineConflictDays    float64
	SimilarityThreshold     float64
	HighSimilarityThreshold float64
}

// DefaultConfig returns the defaults listed in spec.md §6.
func DefaultConfig() Config {
	return Config{
		EmbeddingDimension:      256,
		MinEntityMentions:       2,
		ClusterWindowHours:      24,
		GapUnusualMultiple:      3,
		TimelineConflictDays:    1,
		SimilarityThreshold:     0.5,
		HighSimilarityThreshold: 0.7,
	}
}

// Engine runs a full analysis: index -> contradiction engine -> liability ->
// narrative -> report.
type Engine struct {
	lex     lexicon.Set
	cfg     Config
	ce      *contradiction.Engine
	metrics *telemetry.RunMetrics
}

// New builds an Engine. lex is used wholesale; there is no incremental
// override of individual tag lists (spec.md §6). Telemetry instruments are
// always created; they are no-ops unless telemetry.Init configured a real
// OTLP endpoint.
func New(lex lexicon.Set, cfg Config) *Engine {
	metrics, err := telemetry.NewRunMetrics()
	if err != nil {
		metrics = nil
	}
	return &Engine{
		lex: lex,
		cfg: cfg,
		ce: contradiction.New(lex, contradiction.Options{
			EmbeddingDimension:      cfg.EmbeddingDimension,
			MinEntityMentions:       cfg.MinEntityMentions,
			ClusterWindowHours:      cfg.ClusterWindowHours,
			GapUnusualMultiple:      cfg.GapUnusualMultiple,
			TimelineConflictDays:    cfg.TimelineConflictDays,
			SimilarityThreshold:     cfg.SimilarityThreshold,
			HighSimilarityThreshold: cfg.HighSimilarityThreshold,
		}),
		metrics: metrics,
	}
}

// Run indexes statements, runs the contradiction engine, scores liability
// per entity, composes the narrative, and assembles the final report.
func (e *Engine) Run(ctx context.Context, caseID string, statements []model.Statement) (model.ContradictionReport, error) {
	if e.metrics != nil {
		var span trace.Span
		ctx, span = e.metrics.StartRun(ctx, caseID)
		defer span.End()
	}

	idx := index.New()
	if err := idx.Add(statements); err != nil {
		return model.ContradictionReport{}, fmt.Errorf("engine: indexing statements: %w", err)
	}

	result, err := e.ce.Run(ctx, idx)
	if err != nil {
		return model.ContradictionReport{}, fmt.Errorf("engine: running contradiction engine: %w", err)
	}

	liabilityByEntity := scoreEntities(result)
	for id, score := range liabilityByEntity {
		if ent, ok := result.Entities[id]; ok {
			s := score
			ent.Liability = &s
			result.Entities[id] = ent
		}
	}

	composer := narrative.New()
	sections := composer.Compose(
		result.TimelineEvents,
		result.Contradictions,
		result.TimelineConflicts,
		result.BehavioralAnomalies,
		result.Entities,
		liabilityByEntity,
	)

	assembler := report.New()
	out := assembler.Assemble(report.Input{
		CaseID:              caseID,
		Contradictions:      result.Contradictions,
		TimelineConflicts:   result.TimelineConflicts,
		BehavioralAnomalies: result.BehavioralAnomalies,
		Entities:            result.Entities,
		EntityInvolvement:   result.EntityInvolvement,
		DocumentLinks:       result.DocumentLinks,
		SeverityBreakdown:   result.SeverityBreakdown,
		LegalTriggers:       result.LegalTriggers,
		Narrative:           sections,
		VerificationStatus:  result.VerificationStatus,
	})

	if e.metrics != nil {
		e.metrics.RecordRun(ctx, out.TotalContradictions, len(result.BehavioralAnomalies), len(result.Entities))
	}

	return out, nil
}

// scoreEntities runs the liability calculator for every entity with at
// least one contradiction or anomaly attributed to it. Story-change,
// initiated-event, financial-benefit, and evidence-ratio inputs are an
// explicit Open Question in spec.md §9 with no upstream source in this
// engine's inputs, so they default to zero/false/1.0 here — callers running
// a richer pipeline can supply a populated LiabilityBreakdown upstream by
// scoring entities themselves with liability.Calculate.
func scoreEntities(result contradiction.Result) map[string]model.LiabilityScore {
	severities := make(map[string][]int)
	directCounts := make(map[string]int)
	for _, c := range append(append([]model.Contradiction{}, result.Contradictions...), result.TimelineConflicts...) {
		for _, entID := range c.AffectedEntities {
			severities[entID] = append(severities[entID], c.Severity)
			if c.Type == model.ContradictionDirect {
				directCounts[entID]++
			}
		}
	}

	events := make(map[string][]liability.BehaviorEvent)
	for _, a := range result.BehavioralAnomalies {
		category, ok := anomalyCategory[a.Type]
		if !ok {
			continue
		}
		events[a.Entity] = append(events[a.Entity], liability.BehaviorEvent{
			Category: category,
			Bucket:   severityBucketFor(a.Severity),
		})
	}

	entityIDs := make(map[string]bool)
	for id := range severities {
		entityIDs[id] = true
	}
	for id := range events {
		entityIDs[id] = true
	}

	ids := make([]string, 0, len(entityIDs))
	for id := range entityIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make(map[string]model.LiabilityScore, len(ids))
	for _, id := range ids {
		breakdown := model.LiabilityBreakdown{
			DirectContradictions: directCounts[id],
			EvidenceProvided:     1,
			EvidenceExpected:     1,
		}
		for _, sev := range severities[id] {
			switch {
			case sev >= 9:
				breakdown.CriticalContradictions++
			case sev >= 7:
				breakdown.HighContradictions++
			case sev >= 4:
				breakdown.MediumContradictions++
			default:
				breakdown.LowContradictions++
			}
		}
		score := liability.Calculate(severities[id], events[id], breakdown)
		score.EntityID = id
		out[id] = score
	}
	return out
}

func severityBucketFor(sev int) string {
	switch {
	case sev >= 9:
		return "critical"
	case sev >= 7:
		return "high"
	case sev >= 4:
		return "medium"
	default:
		return "low"
	}
}
