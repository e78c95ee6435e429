package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridex/internal/model"
)

func TestCompose_EmptyInputsReturnFallbackStrings(t *testing.T) {
	c := New()
	sections := c.Compose(nil, nil, nil, nil, map[string]model.Entity{}, map[string]model.LiabilityScore{})
	assert.Contains(t, sections.ObjectiveNarration, "No timestamped events")
	assert.Contains(t, sections.ContradictionCommentary, "No contradictions")
	assert.Contains(t, sections.BehavioralPatternAnalysis, "No behavioral anomalies")
	assert.Contains(t, sections.DeductiveLogic, "No contradictions")
	assert.Contains(t, sections.CausalChain, "No high or critical")
	assert.Contains(t, sections.FinalSummary, "No conclusive liability")
}

func TestFinalSummary_Tiers(t *testing.T) {
	c := New()
	entities := map[string]model.Entity{"e1": {PrimaryName: "Jordan Blake"}}

	summary := c.finalSummary(map[string]model.LiabilityScore{"e1": {Overall: 85}}, entities)
	assert.Contains(t, summary, "PRIMARY RESPONSIBILITY")

	summary = c.finalSummary(map[string]model.LiabilityScore{"e1": {Overall: 60}}, entities)
	assert.Contains(t, summary, "significant responsibility")

	summary = c.finalSummary(map[string]model.LiabilityScore{"e1": {Overall: 35}}, entities)
	assert.Contains(t, summary, "material responsibility")

	summary = c.finalSummary(map[string]model.LiabilityScore{"e1": {Overall: 10}}, entities)
	assert.Equal(t, "No conclusive liability / further investigation recommended.", summary)
}

func TestContradictionCommentary_ExcerptsAndSorting(t *testing.T) {
	c := New()
	contradictions := []model.Contradiction{
		{ID: "c_low", Severity: 4, SourceStatement: model.Statement{Text: "short text"}},
		{ID: "c_high", Severity: 9, SourceStatement: model.Statement{Text: "first statement text goes here"},
			TargetStatement: model.Statement{Text: "second statement text goes here"}},
	}
	out := c.contradictionCommentary(contradictions, map[string]model.Entity{})
	lines := splitLines(out)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "c_high")
	assert.Contains(t, lines[1], "c_low")
}

func TestDeductiveLogic_UsesFixedTemplatePerType(t *testing.T) {
	c := New()
	contradictions := []model.Contradiction{
		{ID: "c1", Type: model.ContradictionDirect},
	}
	out := c.deductiveLogic(contradictions)
	assert.Contains(t, out, "internally inconsistent")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
