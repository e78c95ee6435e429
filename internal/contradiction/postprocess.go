package contradiction

import (
	"fmt"
	"sort"

	"veridex/internal/model"
)

// legalTriggerText is the fixed trigger -> (description, recommendation)
// table referenced by spec.md §4.6's legal_trigger_evidence construction.
var legalTriggerText = map[model.LegalTrigger][2]string{
	model.TriggerFraud: {
		"Statements describe materially different facts in a way consistent with intentional deception.",
		"Flag for fraud review and cross-check against independent records.",
	},
	model.TriggerMisrepresentation: {
		"A party's account of events changed in a way inconsistent with an innocent mistake.",
		"Depose the party on the specific discrepancy and preserve the conflicting source documents.",
	},
	model.TriggerConcealment: {
		"Evasive or over-explained responses suggest relevant information is being withheld.",
		"Issue a targeted document request covering the period of the evasive statements.",
	},
	model.TriggerPerjuryRisk: {
		"A sworn or formal statement conflicts with another account by the same party.",
		"Compare against the certified record before relying on this testimony.",
	},
	model.TriggerBreachOfContract: {
		"A stated commitment was not honored according to the surrounding statements.",
		"Review the underlying agreement for the obligation in question.",
	},
	model.TriggerTimelineInconsistency: {
		"Events described do not align with their recorded or cross-referenced timing.",
		"Reconstruct the timeline from primary sources to confirm sequencing.",
	},
	model.TriggerUnreliableTestimony: {
		"The same speaker's account shifted in certainty, tone, or substance over time.",
		"Weigh this testimony against corroborating statements before relying on it alone.",
	},
	model.TriggerFinancialDiscrepancy: {
		"Amounts or financial details disagree across documents involving the same entity.",
		"Reconcile the financial records referenced in the conflicting statements.",
	},
	model.TriggerConflictOfInterest: {
		"An undisclosed relationship or benefit may have influenced the account given.",
		"Investigate the entity's relationships with the other parties involved.",
	},
	model.TriggerNegligence: {
		"A party's own statements indicate a failure to act with the expected care.",
		"Assess whether the described conduct fell below the applicable standard.",
	},
}

// dedupeAcrossPasses drops duplicate findings by pair key (the unordered
// pair of statement ids, or the contradiction id itself when there is no
// target statement), keeping the lowest pass number per spec.md §4.6: "Pass
// 1 wins over Pass 2; earlier pass wins over later."
func dedupeAcrossPasses(bufs ...passBuffer) []model.Contradiction {
	type entry struct {
		c    model.Contradiction
		pass int
	}
	best := make(map[string]entry)
	var order []string

	for _, buf := range bufs {
		for _, c := range buf.contradictions {
			key := pairKey(c)
			if e, ok := best[key]; ok {
				if buf.pass < e.pass {
					best[key] = entry{c: c, pass: buf.pass}
				}
				continue
			}
			best[key] = entry{c: c, pass: buf.pass}
			order = append(order, key)
		}
	}

	sort.Strings(order)
	out := make([]model.Contradiction, 0, len(order))
	for _, key := range order {
		out = append(out, best[key].c)
	}
	return out
}

func pairKey(c model.Contradiction) string {
	if c.TargetStatement.ID == "" {
		return c.ID
	}
	a, b := c.SourceStatement.ID, c.TargetStatement.ID
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// buildEntityInvolvement implements spec.md §4.6's
// entity_involvement[e] = {count, ids, liability, primary_role}.
func buildEntityInvolvement(merged []model.Contradiction) map[string]model.EntityInvolvement {
	type accum struct {
		ids        []string
		severitySum int
	}
	byEntity := make(map[string]*accum)

	for _, c := range merged {
		for _, entID := range c.AffectedEntities {
			if entID == "" {
				continue
			}
			a, ok := byEntity[entID]
			if !ok {
				a = &accum{}
				byEntity[entID] = a
			}
			a.ids = append(a.ids, c.ID)
			a.severitySum += c.Severity
		}
	}

	out := make(map[string]model.EntityInvolvement, len(byEntity))
	for entID, a := range byEntity {
		count := len(a.ids)
		avgSeverity := float64(a.severitySum) / float64(count)
		liability := clampFloat(avgSeverity*5+float64(count)*3, 0, 100)

		role := "secondary_subject"
		if avgSeverity >= 7 || count >= 3 {
			role = "primary_subject"
		}

		sortedIDs := append([]string{}, a.ids...)
		sort.Strings(sortedIDs)

		out[entID] = model.EntityInvolvement{
			EntityID:    entID,
			Count:       count,
			IDs:         sortedIDs,
			Liability:   liability,
			PrimaryRole: role,
		}
	}
	return out
}

// buildDocumentLinks implements document_links[d] = [contradiction ids
// sourced from d].
func buildDocumentLinks(merged []model.Contradiction) map[string][]string {
	out := make(map[string][]string)
	for _, c := range merged {
		if c.SourceDocument == "" {
			continue
		}
		out[c.SourceDocument] = append(out[c.SourceDocument], c.ID)
	}
	for doc := range out {
		sort.Strings(out[doc])
	}
	return out
}

// buildSeverityBreakdown is a histogram over severities 1..10.
func buildSeverityBreakdown(merged []model.Contradiction) map[int]int {
	out := make(map[int]int, 10)
	for i := 1; i <= 10; i++ {
		out[i] = 0
	}
	for _, c := range merged {
		if c.Severity >= 1 && c.Severity <= 10 {
			out[c.Severity]++
		}
	}
	return out
}

// buildLegalTriggerEvidence groups contradictions by legal trigger and
// attaches the fixed description/recommendation text for that trigger.
func buildLegalTriggerEvidence(merged []model.Contradiction) []model.LegalTriggerEvidence {
	type accum struct {
		ids         []string
		severitySum int
	}
	byTrigger := make(map[model.LegalTrigger]*accum)
	var order []model.LegalTrigger

	for _, c := range merged {
		if c.LegalTrigger == nil {
			continue
		}
		trig := *c.LegalTrigger
		a, ok := byTrigger[trig]
		if !ok {
			a = &accum{}
			byTrigger[trig] = a
			order = append(order, trig)
		}
		a.ids = append(a.ids, c.ID)
		a.severitySum += c.Severity
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]model.LegalTriggerEvidence, 0, len(order))
	for _, trig := range order {
		a := byTrigger[trig]
		sortedIDs := append([]string{}, a.ids...)
		sort.Strings(sortedIDs)
		text := legalTriggerText[trig]
		desc, rec := text[0], text[1]
		if desc == "" {
			desc = fmt.Sprintf("Contradictions tagged %s were found across the indexed statements.", trig)
			rec = "Review the underlying evidence for this trigger category."
		}
		out = append(out, model.LegalTriggerEvidence{
			Trigger:        trig,
			IDs:            sortedIDs,
			Confidence:     float64(a.severitySum) / float64(len(a.ids)) / 10,
			Description:    desc,
			Recommendation: rec,
		})
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
