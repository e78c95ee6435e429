// Package liability implements the Liability Calculator (C8): combines
// per-entity contradiction, behavioral, evidence, consistency, and causal
// subscores into a single weighted overall score and tiered conclusion.
package liability

import "veridex/internal/model"

// Weights is the fixed weight vector from spec.md §4.8.
var Weights = struct {
	Contradiction, Behavioral, Evidence, Consistency, Causal float64
}{
	Contradiction: 0.30,
	Behavioral:    0.25,
	Evidence:      0.15,
	Consistency:   0.15,
	Causal:        0.15,
}

var contradictionPoints = map[string]float64{
	"critical": 30,
	"high":     18,
	"medium":   10,
	"low":      4,
}

var behaviorBases = map[string]float64{
	"gaslighting":       22,
	"financial":         20,
	"passive_admission": 18,
	"emotional":         14,
	"blame":             12,
	"pressure":          10,
	"deflection":        8,
	"over_explain":      6,
	"threatening":       25,
	"minimization":      5,
}

var severityMultipliers = map[string]float64{
	"critical": 1.4,
	"high":     1.2,
	"medium":   1.0,
	"low":      0.7,
}

// BehaviorEvent is one behavioral-pattern occurrence to be scored: a
// base-category key (matching behaviorBases) paired with the bucket
// ("critical"/"high"/"medium"/"low") its severity maps to.
type BehaviorEvent struct {
	Category string
	Bucket   string
}

// Calculate computes the five subscores, the overall weighted score, and
// the level for one entity from its contradiction severities, behavioral
// events, and the breakdown fields supplied by the caller (story changes,
// initiated events, financial benefit, evidence ratio, …).
func Calculate(contradictionSeverities []int, behaviors []BehaviorEvent, breakdown model.LiabilityBreakdown) model.LiabilityScore {
	contradictionScore := clamp(contradictionSubscore(contradictionSeverities))
	behavioralScore := clamp(behavioralSubscore(behaviors))
	evidenceScore := clamp(evidenceSubscore(breakdown.EvidenceProvided, breakdown.EvidenceExpected))
	consistencyScore := clamp(12*float64(breakdown.StoryChanges) + 15*float64(breakdown.DirectContradictions))
	causalScore := clamp(causalSubscore(breakdown))

	overall := clamp(
		contradictionScore*Weights.Contradiction +
			behavioralScore*Weights.Behavioral +
			evidenceScore*Weights.Evidence +
			consistencyScore*Weights.Consistency +
			causalScore*Weights.Causal,
	)

	level := levelFor(overall)
	reasoning := reasoningFor(breakdown, overall)

	return model.LiabilityScore{
		Contradiction: contradictionScore,
		Behavioral:    behavioralScore,
		Evidence:      evidenceScore,
		Consistency:   consistencyScore,
		Causal:        causalScore,
		Overall:       overall,
		Breakdown:     breakdown,
		Reasoning:     reasoning,
		Level:         level,
	}
}

func contradictionSubscore(severities []int) float64 {
	var total float64
	for _, sev := range severities {
		total += contradictionPoints[severityBucket(sev)]
	}
	return total
}

func severityBucket(sev int) string {
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

func behavioralSubscore(events []BehaviorEvent) float64 {
	var total float64
	for _, e := range events {
		base, ok := behaviorBases[e.Category]
		if !ok {
			continue
		}
		mult, ok := severityMultipliers[e.Bucket]
		if !ok {
			mult = 1.0
		}
		total += base * mult
	}
	return total
}

func evidenceSubscore(provided, expected float64) float64 {
	if expected <= 0 {
		return 10
	}
	ratio := provided / expected
	switch {
	case ratio < 0.2:
		return 80
	case ratio < 0.5:
		return 50
	case ratio < 0.8:
		return 25
	default:
		return 10
	}
}

func causalSubscore(b model.LiabilityBreakdown) float64 {
	score := 5 * float64(b.InitiatedEvents)
	if b.BenefitedFinancially {
		score += 25
	}
	if b.ControlledInformation {
		score += 10
	}
	return score
}

func levelFor(overall float64) model.LiabilityLevel {
	switch {
	case overall >= 75:
		return model.LevelCritical
	case overall >= 55:
		return model.LevelHigh
	case overall >= 35:
		return model.LevelMedium
	case overall >= 15:
		return model.LevelLow
	default:
		return model.LevelMinimal
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// reasoningFor builds the fixed-template ordered reasoning sentences
// triggered by breakdown fields, per spec.md §4.8.
func reasoningFor(b model.LiabilityBreakdown, overall float64) []string {
	var out []string
	if b.CriticalContradictions > 0 {
		out = append(out, "One or more critical-severity contradictions were identified.")
	}
	if b.StoryChanges > 2 {
		out = append(out, "The entity's account changed materially more than twice.")
	}
	if b.BenefitedFinancially {
		out = append(out, "The entity stood to benefit financially from the disputed outcome.")
	}
	if b.EvidenceExpected > 0 && b.EvidenceProvided/b.EvidenceExpected < 0.5 {
		out = append(out, "The entity provided substantially less evidence than expected.")
	}
	if b.ControlledInformation {
		out = append(out, "The entity controlled the flow of information relevant to the dispute.")
	}
	if b.InitiatedEvents > 0 {
		out = append(out, "The entity initiated one or more pivotal events in the timeline.")
	}
	if len(out) == 0 {
		out = append(out, "No aggravating liability factors were identified beyond the computed subscores.")
	}
	return out
}
