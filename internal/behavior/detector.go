// Package behavior implements the Behavioral / Linguistic Drift Detector
// (C7): eight sub-detectors that compare consecutive statements from the
// same speaker and surface behavioral anomalies, plus the per-entity
// BehavioralProfile time series they feed.
package behavior

import (
	"fmt"
	"sort"

	"veridex/internal/lexicon"
	"veridex/internal/model"
)

// Detector runs the eight sub-detectors over a speaker's statements.
type Detector struct {
	lex lexicon.Set
}

// New returns a Detector bound to lex.
func New(lex lexicon.Set) *Detector {
	return &Detector{lex: lex}
}

// scored is an internal view pairing a statement with its certainty/
// sentiment/tag measurements, computed once per statement.
type scored struct {
	stmt       model.Statement
	sentiment  float64
	certainty  float64
	tone       string // "cooperative", "defensive", or ""
}

// Analyze runs all eight sub-detectors for one speaker's statements
// (already sorted by timestamp then id, per spec.md §4.7) and returns the
// anomalies found plus the populated BehavioralProfile. Speakers with fewer
// than two statements are skipped (empty anomaly list, nil profile).
func (d *Detector) Analyze(entityID string, statements []model.Statement) ([]model.BehavioralAnomaly, *model.BehavioralProfile) {
	if len(statements) < 2 {
		return nil, nil
	}

	rows := make([]scored, len(statements))
	for i, s := range statements {
		rows[i] = scored{
			stmt:      s,
			sentiment: valueOr(s.Sentiment, 0),
			certainty: valueOr(s.Certainty, 0.5),
			tone:      d.classifyTone(s.Text),
		}
	}

	profile := &model.BehavioralProfile{EntityID: entityID}
	for _, r := range rows {
		if r.stmt.HasTimestamp() {
			profile.SentimentTrend = append(profile.SentimentTrend, model.SentimentPoint{
				TimestampMS: *r.stmt.TimestampMS, Value: r.sentiment, SourceStatementID: r.stmt.ID,
			})
			profile.CertaintyTrend = append(profile.CertaintyTrend, model.CertaintyPoint{
				TimestampMS: *r.stmt.TimestampMS, Value: r.certainty, SourceStatementID: r.stmt.ID,
			})
		}
	}

	var anomalies []model.BehavioralAnomaly
	anomalies = append(anomalies, d.sentimentShift(entityID, rows)...)
	anomalies = append(anomalies, d.certaintyDecline(entityID, rows)...)
	anomalies = append(anomalies, d.toneShift(entityID, rows, profile)...)
	anomalies = append(anomalies, d.deflectionPattern(entityID, rows, profile)...)
	anomalies = append(anomalies, d.overExplaining(entityID, rows)...)
	anomalies = append(anomalies, d.blameShifting(entityID, rows)...)
	anomalies = append(anomalies, d.gaslighting(entityID, rows)...)
	anomalies = append(anomalies, d.suddenDenial(entityID, rows)...)

	patternSet := map[string]bool{}
	for _, a := range anomalies {
		patternSet[a.Type] = true
	}
	for p := range patternSet {
		profile.Patterns = append(profile.Patterns, p)
	}
	sort.Strings(profile.Patterns)

	return anomalies, profile
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func (d *Detector) classifyTone(text string) string {
	if d.lex.HasTag(text, lexicon.TagDefensive) {
		return "defensive"
	}
	if d.lex.HasTag(text, lexicon.TagCooperative) {
		return "cooperative"
	}
	return ""
}

func anomalyID(entityID, kind string, stmts []model.Statement) string {
	if len(stmts) == 0 {
		return fmt.Sprintf("anom_%s_%s", entityID, kind)
	}
	return fmt.Sprintf("anom_%s_%s_%s_%s", entityID, kind, stmts[0].ID, stmts[len(stmts)-1].ID)
}

// sentimentShift: sent[i] - sent[i-1] < -0.5.
func (d *Detector) sentimentShift(entityID string, rows []scored) []model.BehavioralAnomaly {
	var out []model.BehavioralAnomaly
	for i := 1; i < len(rows); i++ {
		delta := rows[i].sentiment - rows[i-1].sentiment
		if delta >= -0.5 {
			continue
		}
		abs := -delta
		sev := 3
		switch {
		case abs > 1.5:
			sev = 9
		case abs > 1.0:
			sev = 7
		case abs > 0.5:
			sev = 5
		}
		stmts := []model.Statement{rows[i-1].stmt, rows[i].stmt}
		out = append(out, model.BehavioralAnomaly{
			ID:           anomalyID(entityID, "sentiment_shift", stmts),
			Entity:       entityID,
			Type:         "sentiment_shift",
			Description:  "Sentiment dropped sharply between consecutive statements",
			Severity:     sev,
			StatementIDs: []string{rows[i-1].stmt.ID, rows[i].stmt.ID},
			BeforeState:  fmt.Sprintf("sentiment=%.2f", rows[i-1].sentiment),
			AfterState:   fmt.Sprintf("sentiment=%.2f", rows[i].sentiment),
		})
	}
	return out
}

// certaintyDecline: cert[i-1] - cert[i] > 0.3.
func (d *Detector) certaintyDecline(entityID string, rows []scored) []model.BehavioralAnomaly {
	var out []model.BehavioralAnomaly
	for i := 1; i < len(rows); i++ {
		delta := rows[i-1].certainty - rows[i].certainty
		if delta <= 0.3 {
			continue
		}
		sev := 2
		switch {
		case delta > 0.7:
			sev = 8
		case delta > 0.5:
			sev = 6
		case delta > 0.3:
			sev = 4
		}
		stmts := []model.Statement{rows[i-1].stmt, rows[i].stmt}
		out = append(out, model.BehavioralAnomaly{
			ID:           anomalyID(entityID, "certainty_decline", stmts),
			Entity:       entityID,
			Type:         "certainty_decline",
			Description:  "Certainty dropped between consecutive statements",
			Severity:     sev,
			StatementIDs: []string{rows[i-1].stmt.ID, rows[i].stmt.ID},
			BeforeState:  fmt.Sprintf("certainty=%.2f", rows[i-1].certainty),
			AfterState:   fmt.Sprintf("certainty=%.2f", rows[i].certainty),
		})
	}
	return out
}

// toneShift: prior tone cooperative, next defensive. Fixed severity 6.
func (d *Detector) toneShift(entityID string, rows []scored, profile *model.BehavioralProfile) []model.BehavioralAnomaly {
	var out []model.BehavioralAnomaly
	for i := 1; i < len(rows); i++ {
		if rows[i-1].tone != "cooperative" || rows[i].tone != "defensive" {
			continue
		}
		profile.ToneShifts = append(profile.ToneShifts, model.ToneShift{
			BeforeID: rows[i-1].stmt.ID, AfterID: rows[i].stmt.ID,
			BeforeTone: "cooperative", AfterTone: "defensive",
		})
		stmts := []model.Statement{rows[i-1].stmt, rows[i].stmt}
		out = append(out, model.BehavioralAnomaly{
			ID:           anomalyID(entityID, "tone_shift", stmts),
			Entity:       entityID,
			Type:         "tone_shift",
			Description:  "Tone shifted from cooperative to defensive",
			Severity:     6,
			StatementIDs: []string{rows[i-1].stmt.ID, rows[i].stmt.ID},
			BeforeState:  "cooperative",
			AfterState:   "defensive",
		})
	}
	return out
}

// deflectionPattern: >= 2 statements each matching >= 2 deflection
// keywords. Severity min(8, 4+n).
func (d *Detector) deflectionPattern(entityID string, rows []scored, profile *model.BehavioralProfile) []model.BehavioralAnomaly {
	var matching []model.Statement
	for _, r := range rows {
		if d.lex.CountTag(r.stmt.Text, lexicon.TagDeflection) >= 2 {
			matching = append(matching, r.stmt)
		}
	}
	profile.DeflectionCount = len(matching)
	if len(matching) < 2 {
		return nil
	}
	sev := 4 + len(matching)
	if sev > 8 {
		sev = 8
	}
	ids := statementIDs(matching)
	return []model.BehavioralAnomaly{{
		ID:           anomalyID(entityID, "deflection_pattern", matching),
		Entity:       entityID,
		Type:         "deflection_pattern",
		Description:  "Repeated deflection language across multiple statements",
		Severity:     sev,
		StatementIDs: ids,
	}}
}

// overExplaining: >= 2 statements each matching >= 3 over-explain keywords
// OR text length > 500. Fixed severity 7.
func (d *Detector) overExplaining(entityID string, rows []scored) []model.BehavioralAnomaly {
	var matching []model.Statement
	for _, r := range rows {
		if d.lex.CountTag(r.stmt.Text, lexicon.TagOverExplaining) >= 3 || len(r.stmt.Text) > 500 {
			matching = append(matching, r.stmt)
		}
	}
	if len(matching) < 2 {
		return nil
	}
	return []model.BehavioralAnomaly{{
		ID:           anomalyID(entityID, "over_explaining", matching),
		Entity:       entityID,
		Type:         "over_explaining",
		Description:  "Unusually elaborate or lengthy explanations across statements",
		Severity:     7,
		StatementIDs: statementIDs(matching),
	}}
}

// blameShifting: >= 2 statements match >= 1 blame keyword. Fixed severity 6.
func (d *Detector) blameShifting(entityID string, rows []scored) []model.BehavioralAnomaly {
	var matching []model.Statement
	for _, r := range rows {
		if d.lex.CountTag(r.stmt.Text, lexicon.TagBlameShifting) >= 1 {
			matching = append(matching, r.stmt)
		}
	}
	if len(matching) < 2 {
		return nil
	}
	return []model.BehavioralAnomaly{{
		ID:           anomalyID(entityID, "blame_shifting", matching),
		Entity:       entityID,
		Type:         "blame_shifting",
		Description:  "Repeated attribution of fault to others across statements",
		Severity:     6,
		StatementIDs: statementIDs(matching),
	}}
}

// gaslighting: any statement matches >= 1 gaslighting keyword. Fixed
// severity 8.
func (d *Detector) gaslighting(entityID string, rows []scored) []model.BehavioralAnomaly {
	var matching []model.Statement
	for _, r := range rows {
		if d.lex.CountTag(r.stmt.Text, lexicon.TagGaslighting) >= 1 {
			matching = append(matching, r.stmt)
		}
	}
	if len(matching) == 0 {
		return nil
	}
	return []model.BehavioralAnomaly{{
		ID:           anomalyID(entityID, "gaslighting", matching),
		Entity:       entityID,
		Type:         "gaslighting",
		Description:  "Language that denies or distorts the other party's recollection",
		Severity:     8,
		StatementIDs: statementIDs(matching),
	}}
}

// suddenDenial: consecutive pair where prior has certainty keywords and
// certainty > 0.7, next has defensive keywords and certainty < 0.5. Fixed
// severity 8.
func (d *Detector) suddenDenial(entityID string, rows []scored) []model.BehavioralAnomaly {
	var out []model.BehavioralAnomaly
	for i := 1; i < len(rows); i++ {
		prior, next := rows[i-1], rows[i]
		if !d.lex.HasTag(prior.stmt.Text, lexicon.TagCertainty) || prior.certainty <= 0.7 {
			continue
		}
		if !d.lex.HasTag(next.stmt.Text, lexicon.TagDefensive) || next.certainty >= 0.5 {
			continue
		}
		stmts := []model.Statement{prior.stmt, next.stmt}
		out = append(out, model.BehavioralAnomaly{
			ID:           anomalyID(entityID, "sudden_denial", stmts),
			Entity:       entityID,
			Type:         "sudden_denial",
			Description:  "Confident assertion abruptly followed by defensive denial",
			Severity:     8,
			StatementIDs: []string{prior.stmt.ID, next.stmt.ID},
			BeforeState:  "confident",
			AfterState:   "defensive/uncertain",
		})
	}
	return out
}

func statementIDs(stmts []model.Statement) []string {
	ids := make([]string, len(stmts))
	for i, s := range stmts {
		ids[i] = s.ID
	}
	return ids
}
