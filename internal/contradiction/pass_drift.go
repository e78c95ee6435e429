package contradiction

import (
	"sort"

	"veridex/internal/behavior"
	"veridex/internal/model"
)

// anomalyTriggerMap is the fixed anomaly-type -> legal-trigger mapping from
// spec.md §4.6 Pass 4.
var anomalyTriggerMap = map[string]model.LegalTrigger{
	"gaslighting":        model.TriggerFraud,
	"over_explaining":    model.TriggerConcealment,
	"blame_shifting":     model.TriggerMisrepresentation,
	"deflection_pattern": model.TriggerConcealment,
	"sudden_denial":      model.TriggerUnreliableTestimony,
	"tone_shift":         model.TriggerUnreliableTestimony,
	"certainty_decline":  model.TriggerUnreliableTestimony,
}

// passLinguisticDrift is Pass 4: run the behavioral detector per entity,
// then lift each anomaly into a contradiction whose source/target are the
// first and last statement in the anomaly's statement list. It returns
// derived BehavioralProfiles separately rather than mutating entities
// in place — entities is read concurrently by Pass 3 in the same run.
func (e *Engine) passLinguisticDrift(sorted []model.Statement, entities map[string]model.Entity) ([]model.BehavioralAnomaly, []model.Contradiction, map[string]*model.BehavioralProfile) {
	byID := make(map[string]model.Statement, len(sorted))
	for _, s := range sorted {
		byID[s.ID] = s
	}

	det := behavior.New(e.lex)

	entityIDs := make([]string, 0, len(entities))
	for id := range entities {
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)

	var anomalies []model.BehavioralAnomaly
	var contradictions []model.Contradiction
	profiles := make(map[string]*model.BehavioralProfile)

	for _, entID := range entityIDs {
		ent := entities[entID]
		var stmts []model.Statement
		for _, sid := range ent.StatementIDs {
			if s, ok := byID[sid]; ok {
				stmts = append(stmts, s)
			}
		}
		sort.SliceStable(stmts, func(i, j int) bool {
			ti, tj := stmts[i].TimestampMS, stmts[j].TimestampMS
			switch {
			case ti == nil && tj == nil:
				return stmts[i].ID < stmts[j].ID
			case ti == nil:
				return false
			case tj == nil:
				return true
			case *ti != *tj:
				return *ti < *tj
			default:
				return stmts[i].ID < stmts[j].ID
			}
		})

		found, profile := det.Analyze(entID, stmts)
		if profile != nil {
			profiles[entID] = profile
		}
		anomalies = append(anomalies, found...)

		for _, a := range found {
			if len(a.StatementIDs) == 0 {
				continue
			}
			first := byID[a.StatementIDs[0]]
			last := byID[a.StatementIDs[len(a.StatementIDs)-1]]
			trigger, ok := anomalyTriggerMap[a.Type]
			if !ok {
				trigger = model.TriggerUnreliableTestimony
			}
			contradictions = append(contradictions, model.Contradiction{
				ID:               contradictionID(first.ID, last.ID, 4),
				Type:             model.ContradictionBehavioral,
				SourceStatement:  first,
				TargetStatement:  last,
				SourceDocument:   first.DocumentID,
				SourceLineNumber: first.LineNumber,
				Severity:         a.Severity,
				Description:      a.Description,
				LegalTrigger:     &trigger,
				AffectedEntities: []string{entID},
			})
		}
	}

	return anomalies, contradictions, profiles
}
