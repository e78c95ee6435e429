// Package contradiction implements the Contradiction Engine (C6): runs the
// four independent passes over a frozen statement index and merges their
// buffers into report-ready fields.
package contradiction

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"veridex/internal/embedding"
	"veridex/internal/entity"
	"veridex/internal/index"
	"veridex/internal/lexicon"
	"veridex/internal/model"
	"veridex/internal/timeline"
)

// Options configures one Engine run, matching the configuration knobs in
// spec.md §6.
type Options struct {
	EmbeddingDimension      int
	MinEntityMentions       int
	ClusterWindowHours      float64
	GapUnusualMultiple      float64
	TimelineConflictDays    float64
	SimilarityThreshold     float64
	HighSimilarityThreshold float64
}

// Engine runs the four passes and assembles a ContradictionReport.
type Engine struct {
	lex lexicon.Set
	opt Options
}

// New returns an Engine bound to lex and opt.
func New(lex lexicon.Set, opt Options) *Engine {
	return &Engine{lex: lex, opt: opt}
}

// Result is the engine's internal output before narrative composition and
// final report packaging (C9/C10 live in their own packages).
type Result struct {
	Contradictions      []model.Contradiction
	TimelineConflicts    []model.Contradiction
	BehavioralAnomalies []model.BehavioralAnomaly
	Entities            map[string]model.Entity
	TimelineEvents       []model.TimelineEvent
	QuietPeriods         []model.QuietPeriod
	EntityInvolvement    map[string]model.EntityInvolvement
	DocumentLinks        map[string][]string
	SeverityBreakdown    map[int]int
	LegalTriggers        []model.LegalTriggerEvidence
	VerificationStatus   model.VerificationStatus
}

// Run executes self-verification, the four passes, and post-processing
// over idx. idx must already contain every statement for the run; Run
// freezes it if it is not already frozen.
func (e *Engine) Run(ctx context.Context, idx *index.Index) (Result, error) {
	var status model.VerificationStatus

	if idx.Len() == 0 {
		status.StatementsIndexed = false
		return Result{
			Entities:           map[string]model.Entity{},
			EntityInvolvement:  map[string]model.EntityInvolvement{},
			DocumentLinks:      map[string][]string{},
			SeverityBreakdown:  map[int]int{},
			VerificationStatus: status,
		}, nil
	}
	status.StatementsIndexed = true

	if !idx.Frozen() {
		idx.Freeze()
	}

	all := idx.All()

	// Self-verification step 2: embeddings assigned for all statements.
	missing := idx.MissingEmbeddings()
	if len(missing) > 0 {
		texts := make([]string, len(all))
		for i, s := range all {
			texts[i] = s.Text
		}
		vocab := embedding.BuildVocabulary(texts, e.opt.EmbeddingDimension)
		for _, id := range missing {
			s, ok := idx.Get(id)
			if !ok {
				continue
			}
			vec := vocab.Generate(s.Text)
			if err := idx.UpdateEmbedding(id, vec); err != nil {
				return Result{}, fmt.Errorf("contradiction: auto-embedding %s: %w", id, err)
			}
		}
		status.AutoCorrections = append(status.AutoCorrections, "embeddings were missing for one or more statements and were generated automatically")
	}
	status.EmbeddingsPresent = true
	all = idx.All() // reload with embeddings populated

	// Self-verification steps 3/4: timeline and entity profiles.
	tb := timeline.New(e.lex, e.opt.ClusterWindowHours, e.opt.GapUnusualMultiple)
	events := tb.BuildEvents(all)
	quietPeriods := tb.GapAnalysis(events)
	status.TimelineBuilt = true

	prof := entity.New(e.lex)
	entities := prof.Build(all, e.opt.MinEntityMentions)
	status.ProfilesBuilt = true

	// Every event's speaker is already the normalized key entities are
	// indexed by (timeline.Builder sets Speaker via NormalizedSpeaker), so
	// this is a direct lookup rather than a second profiling pass.
	for i := range events {
		if _, ok := entities[events[i].Speaker]; ok {
			events[i].EntityIDs = []string{events[i].Speaker}
		}
	}

	sorted := sortedCopy(all)

	buf1, buf2, buf3, buf4, err := e.runPasses(ctx, sorted, entities, events)
	if err != nil {
		return Result{}, err
	}

	// Merge Pass 4's derived behavioral profiles back into entities now that
	// every pass has finished and nothing else reads entities concurrently.
	for id, profile := range buf4.profiles {
		if ent, ok := entities[id]; ok {
			ent.Behavioral = profile
			entities[id] = ent
		}
	}

	merged := dedupeAcrossPasses(buf1, buf2, buf3, buf4)

	entityInvolvement := buildEntityInvolvement(merged)
	documentLinks := buildDocumentLinks(merged)
	severityBreakdown := buildSeverityBreakdown(merged)
	legalTriggers := buildLegalTriggerEvidence(merged)

	var timelineConflicts []model.Contradiction
	var direct []model.Contradiction
	for _, c := range merged {
		if c.Type == model.ContradictionTimeline {
			timelineConflicts = append(timelineConflicts, c)
		} else {
			direct = append(direct, c)
		}
	}

	return Result{
		Contradictions:      direct,
		TimelineConflicts:    timelineConflicts,
		BehavioralAnomalies: collectAnomalies(buf4),
		Entities:            entities,
		TimelineEvents:      events,
		QuietPeriods:        quietPeriods,
		EntityInvolvement:   entityInvolvement,
		DocumentLinks:       documentLinks,
		SeverityBreakdown:   severityBreakdown,
		LegalTriggers:       legalTriggers,
		VerificationStatus:  status,
	}, nil
}

// passBuffer holds one pass's contradictions, tagged with the pass number
// they were produced in so post-processing can apply pass priority.
type passBuffer struct {
	pass           int
	contradictions []model.Contradiction
	anomalies      []model.BehavioralAnomaly
	profiles       map[string]*model.BehavioralProfile
}

// runPasses executes the four passes concurrently. Passes 1-3 read
// `entities` and `events` read-only; Pass 4 returns its derived
// BehavioralProfiles for the caller to merge back into entities once every
// pass has finished, keeping entities race-free during the concurrent
// section (spec.md §5's "pass-local buffers merged in a deterministic
// order" requirement).
func (e *Engine) runPasses(ctx context.Context, sorted []model.Statement, entities map[string]model.Entity, events []model.TimelineEvent) (passBuffer, passBuffer, passBuffer, passBuffer, error) {
	var buf1, buf2, buf3, buf4 passBuffer
	if err := ctx.Err(); err != nil {
		return passBuffer{}, passBuffer{}, passBuffer{}, passBuffer{}, err
	}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		buf1 = passBuffer{pass: 1, contradictions: e.passIntraDocument(sorted)}
		return nil
	})
	g.Go(func() error {
		buf2 = passBuffer{pass: 2, contradictions: e.passCrossDocument(sorted)}
		return nil
	})
	g.Go(func() error {
		buf3 = passBuffer{pass: 3, contradictions: e.passCrossModal(sorted, entities, events)}
		return nil
	})
	g.Go(func() error {
		anomalies, conts, profiles := e.passLinguisticDrift(sorted, entities)
		buf4 = passBuffer{pass: 4, contradictions: conts, anomalies: anomalies, profiles: profiles}
		return nil
	})

	if err := g.Wait(); err != nil {
		return passBuffer{}, passBuffer{}, passBuffer{}, passBuffer{}, err
	}
	if err := ctx.Err(); err != nil {
		return passBuffer{}, passBuffer{}, passBuffer{}, passBuffer{}, err
	}
	return buf1, buf2, buf3, buf4, nil
}

func sortedCopy(statements []model.Statement) []model.Statement {
	out := make([]model.Statement, len(statements))
	copy(out, statements)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DocumentID != out[j].DocumentID {
			return out[i].DocumentID < out[j].DocumentID
		}
		if out[i].LineNumber != out[j].LineNumber {
			return out[i].LineNumber < out[j].LineNumber
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func collectAnomalies(buf4 passBuffer) []model.BehavioralAnomaly {
	return buf4.anomalies
}
