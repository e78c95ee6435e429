// Package narrative composes the six prose sections of a ContradictionReport
// from the Contradiction Engine's consolidated findings (C9).
package narrative

import (
	"fmt"
	"sort"
	"strings"

	"veridex/internal/model"
)

// deductiveTemplates maps a contradiction type to a fixed implication
// sentence, looked up by the contradiction's type.
var deductiveTemplates = map[model.ContradictionType]string{
	model.ContradictionDirect:          "suggests the speaker's own account is internally inconsistent",
	model.ContradictionCrossDocument:   "suggests the two documents cannot both be accurate",
	model.ContradictionBehavioral:      "suggests a shift in the speaker's composure coincided with the subject matter",
	model.ContradictionTemporal:        "suggests the sequence of events as described cannot be reconciled",
	model.ContradictionMissingEvidence: "suggests evidence that should exist was never produced",
	model.ContradictionThirdParty:      "suggests the entity's account diverges across independent sources",
	model.ContradictionTimeline:        "suggests the stated timing conflicts with the reconstructed timeline",
}

// Composer builds narrative sections. It holds no state; every sentence it
// writes is derived directly from the arguments to Compose.
type Composer struct{}

// New returns a Composer.
func New() *Composer {
	return &Composer{}
}

// Compose builds all six sections from one engine run's consolidated
// findings. liabilityByEntity may be nil or partial; entries missing a
// score are skipped by the final-summary tier logic.
func (c *Composer) Compose(
	events []model.TimelineEvent,
	contradictions []model.Contradiction,
	timelineConflicts []model.Contradiction,
	anomalies []model.BehavioralAnomaly,
	entities map[string]model.Entity,
	liabilityByEntity map[string]model.LiabilityScore,
) model.NarrativeSections {
	all := append(append([]model.Contradiction{}, contradictions...), timelineConflicts...)

	return model.NarrativeSections{
		ObjectiveNarration:        c.objectiveNarration(events),
		ContradictionCommentary:   c.contradictionCommentary(all, entities),
		BehavioralPatternAnalysis: c.behavioralPatternAnalysis(anomalies, entities),
		DeductiveLogic:            c.deductiveLogic(all),
		CausalChain:               c.causalChain(events),
		FinalSummary:              c.finalSummary(liabilityByEntity, entities),
	}
}

// objectiveNarration retells the timeline chronologically, marking
// critical-significance events.
func (c *Composer) objectiveNarration(events []model.TimelineEvent) string {
	if len(events) == 0 {
		return "No timestamped events were available to reconstruct a chronology."
	}
	sorted := sortedEvents(events)
	var b strings.Builder
	for i, ev := range sorted {
		if i > 0 {
			b.WriteString(" ")
		}
		marker := ""
		if ev.Significance == model.SignificanceCritical {
			marker = " [critical]"
		}
		speaker := ev.Speaker
		if speaker == "" {
			speaker = "an unidentified party"
		}
		b.WriteString(fmt.Sprintf("%s: %s%s.", speaker, firstN(ev.Text, 80), marker))
	}
	return b.String()
}

// contradictionCommentary describes each contradiction: entity, excerpts,
// severity.
func (c *Composer) contradictionCommentary(contradictions []model.Contradiction, entities map[string]model.Entity) string {
	if len(contradictions) == 0 {
		return "No contradictions were found across the indexed statements."
	}
	sorted := append([]model.Contradiction{}, contradictions...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Severity != sorted[j].Severity {
			return sorted[i].Severity > sorted[j].Severity
		}
		return sorted[i].ID < sorted[j].ID
	})

	var lines []string
	for _, con := range sorted {
		entityLabel := entityNames(con.AffectedEntities, entities)
		a := firstN(con.SourceStatement.Text, 50)
		b := firstN(con.TargetStatement.Text, 50)
		if b == "" {
			lines = append(lines, fmt.Sprintf("[%s, severity %d] %s: \"%s\"", con.ID, con.Severity, entityLabel, a))
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s, severity %d] %s: \"%s\" vs \"%s\"", con.ID, con.Severity, entityLabel, a, b))
	}
	return strings.Join(lines, "\n")
}

// behavioralPatternAnalysis groups anomalies per entity and names the
// patterns with one representative instance each.
func (c *Composer) behavioralPatternAnalysis(anomalies []model.BehavioralAnomaly, entities map[string]model.Entity) string {
	if len(anomalies) == 0 {
		return "No behavioral anomalies were detected."
	}
	byEntity := make(map[string][]model.BehavioralAnomaly)
	for _, a := range anomalies {
		byEntity[a.Entity] = append(byEntity[a.Entity], a)
	}
	entityIDs := make([]string, 0, len(byEntity))
	for id := range byEntity {
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)

	var lines []string
	for _, id := range entityIDs {
		name := entityName(id, entities)
		list := byEntity[id]
		sort.Slice(list, func(i, j int) bool { return list[i].Type < list[j].Type })
		seenType := make(map[string]bool)
		var patterns []string
		for _, a := range list {
			if seenType[a.Type] {
				continue
			}
			seenType[a.Type] = true
			patterns = append(patterns, fmt.Sprintf("%s (%s)", a.Type, a.Description))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Join(patterns, "; ")))
	}
	return strings.Join(lines, "\n")
}

// deductiveLogic maps each contradiction to its fixed template sentence,
// keyed by type.
func (c *Composer) deductiveLogic(contradictions []model.Contradiction) string {
	if len(contradictions) == 0 {
		return "No contradictions support a deductive inference."
	}
	sorted := append([]model.Contradiction{}, contradictions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var lines []string
	for _, con := range sorted {
		template, ok := deductiveTemplates[con.Type]
		if !ok {
			template = "suggests an unresolved inconsistency in the record"
		}
		lines = append(lines, fmt.Sprintf("Contradiction %s %s.", con.ID, template))
	}
	return strings.Join(lines, "\n")
}

// causalChain lists high/critical timeline events in order.
func (c *Composer) causalChain(events []model.TimelineEvent) string {
	sorted := sortedEvents(events)
	var relevant []model.TimelineEvent
	for _, ev := range sorted {
		if ev.Significance == model.SignificanceHigh || ev.Significance == model.SignificanceCritical {
			relevant = append(relevant, ev)
		}
	}
	if len(relevant) == 0 {
		return "No high or critical-significance events were identified."
	}
	var lines []string
	for _, ev := range relevant {
		lines = append(lines, fmt.Sprintf("%s (%s): %s", ev.Speaker, ev.Significance, firstN(ev.Text, 80)))
	}
	return strings.Join(lines, " -> ")
}

// finalSummary picks the entity with the highest overall liability and
// applies the four-tier conclusion from spec.md §4.9.
func (c *Composer) finalSummary(liabilityByEntity map[string]model.LiabilityScore, entities map[string]model.Entity) string {
	if len(liabilityByEntity) == 0 {
		return "No conclusive liability / further investigation recommended."
	}
	var topID string
	var topScore float64 = -1
	ids := make([]string, 0, len(liabilityByEntity))
	for id := range liabilityByEntity {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		score := liabilityByEntity[id]
		if score.Overall > topScore {
			topScore = score.Overall
			topID = id
		}
	}

	name := entityName(topID, entities)
	var tier string
	switch {
	case topScore >= 80:
		tier = "PRIMARY RESPONSIBILITY"
	case topScore >= 50:
		tier = "significant responsibility"
	case topScore >= 30:
		tier = "material responsibility"
	default:
		return "No conclusive liability / further investigation recommended."
	}
	return fmt.Sprintf("%s bears %s (overall score %.1f).", name, tier, topScore)
}

func sortedEvents(events []model.TimelineEvent) []model.TimelineEvent {
	out := append([]model.TimelineEvent{}, events...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TimestampMS != out[j].TimestampMS {
			return out[i].TimestampMS < out[j].TimestampMS
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func entityName(id string, entities map[string]model.Entity) string {
	if ent, ok := entities[id]; ok && ent.PrimaryName != "" {
		return ent.PrimaryName
	}
	if id == "" {
		return "an unidentified party"
	}
	return id
}

func entityNames(ids []string, entities map[string]model.Entity) string {
	if len(ids) == 0 {
		return "an unidentified party"
	}
	sorted := append([]string{}, ids...)
	sort.Strings(sorted)
	names := make([]string, 0, len(sorted))
	seen := make(map[string]bool)
	for _, id := range sorted {
		n := entityName(id, entities)
		if seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return strings.Join(names, " & ")
}

func firstN(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
