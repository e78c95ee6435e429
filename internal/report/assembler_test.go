package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"veridex/internal/model"
)

func TestAssemble_TotalsContradictionsAndTimelineConflicts(t *testing.T) {
	a := New()
	in := Input{
		CaseID:            "case-1",
		Contradictions:    []model.Contradiction{{ID: "c1"}},
		TimelineConflicts: []model.Contradiction{{ID: "c2"}, {ID: "c3"}},
	}
	out := a.Assemble(in)
	assert.Equal(t, "case-1", out.CaseID)
	assert.Equal(t, 3, out.TotalContradictions)
}

func TestAssemble_NilFieldsBecomeEmptyNotNil(t *testing.T) {
	a := New()
	out := a.Assemble(Input{CaseID: "case-2"})
	assert.NotNil(t, out.Contradictions)
	assert.NotNil(t, out.TimelineConflicts)
	assert.NotNil(t, out.BehavioralAnomalies)
	assert.NotNil(t, out.AffectedEntities)
	assert.NotNil(t, out.DocumentLinks)
	assert.NotNil(t, out.SeverityBreakdown)
	assert.NotNil(t, out.LegalTriggers)
	assert.NotNil(t, out.Warnings)
	assert.NotNil(t, out.AutoCorrections)
}

func TestAssemble_WarningsMergeVerificationAndExplicit(t *testing.T) {
	a := New()
	out := a.Assemble(Input{
		CaseID:   "case-3",
		Warnings: []string{"explicit warning"},
		VerificationStatus: model.VerificationStatus{
			Warnings: []string{"verification warning"},
		},
	})
	assert.Contains(t, out.Warnings, "explicit warning")
	assert.Contains(t, out.Warnings, "verification warning")
}
