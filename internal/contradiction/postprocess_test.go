package contradiction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridex/internal/model"
)

func trigger(t model.LegalTrigger) *model.LegalTrigger {
	return &t
}

func TestDedupeAcrossPasses_EarlierPassWins(t *testing.T) {
	c1 := model.Contradiction{
		ID:              "c_pass1",
		SourceStatement: model.Statement{ID: "s1"},
		TargetStatement: model.Statement{ID: "s2"},
		Severity:        8,
	}
	c2 := model.Contradiction{
		ID:              "c_pass2",
		SourceStatement: model.Statement{ID: "s2"},
		TargetStatement: model.Statement{ID: "s1"},
		Severity:        3,
	}
	buf1 := passBuffer{pass: 1, contradictions: []model.Contradiction{c1}}
	buf2 := passBuffer{pass: 2, contradictions: []model.Contradiction{c2}}

	merged := dedupeAcrossPasses(buf2, buf1)
	require.Len(t, merged, 1)
	assert.Equal(t, "c_pass1", merged[0].ID)
}

func TestDedupeAcrossPasses_NoTargetKeyedByID(t *testing.T) {
	c1 := model.Contradiction{ID: "c_a", SourceStatement: model.Statement{ID: "s1"}}
	c2 := model.Contradiction{ID: "c_b", SourceStatement: model.Statement{ID: "s1"}}
	buf := passBuffer{pass: 3, contradictions: []model.Contradiction{c1, c2}}

	merged := dedupeAcrossPasses(buf)
	assert.Len(t, merged, 2)
}

func TestBuildEntityInvolvement_LiabilityFormula(t *testing.T) {
	merged := []model.Contradiction{
		{ID: "c1", Severity: 10, AffectedEntities: []string{"e1"}},
		{ID: "c2", Severity: 6, AffectedEntities: []string{"e1"}},
	}
	inv := buildEntityInvolvement(merged)
	require.Contains(t, inv, "e1")
	got := inv["e1"]
	assert.Equal(t, 2, got.Count)
	// avg severity 8, count 2: clamp(8*5+2*3, 0, 100) = 46
	assert.Equal(t, 46.0, got.Liability)
	assert.Equal(t, []string{"c1", "c2"}, got.IDs)
}

func TestBuildEntityInvolvement_PrimarySubjectThreshold(t *testing.T) {
	merged := []model.Contradiction{
		{ID: "c1", Severity: 9, AffectedEntities: []string{"e1"}},
	}
	inv := buildEntityInvolvement(merged)
	assert.Equal(t, "primary_subject", inv["e1"].PrimaryRole)
}

func TestBuildDocumentLinks_GroupsBySourceDocument(t *testing.T) {
	merged := []model.Contradiction{
		{ID: "c2", SourceDocument: "doc1"},
		{ID: "c1", SourceDocument: "doc1"},
		{ID: "c3", SourceDocument: "doc2"},
	}
	links := buildDocumentLinks(merged)
	assert.Equal(t, []string{"c1", "c2"}, links["doc1"])
	assert.Equal(t, []string{"c3"}, links["doc2"])
}

func TestBuildSeverityBreakdown_HistogramAllBuckets(t *testing.T) {
	merged := []model.Contradiction{{Severity: 7}, {Severity: 7}, {Severity: 10}}
	hist := buildSeverityBreakdown(merged)
	require.Len(t, hist, 10)
	assert.Equal(t, 2, hist[7])
	assert.Equal(t, 1, hist[10])
	assert.Equal(t, 0, hist[1])
}

func TestBuildLegalTriggerEvidence_ConfidenceAndText(t *testing.T) {
	merged := []model.Contradiction{
		{ID: "c1", Severity: 8, LegalTrigger: trigger(model.TriggerFraud)},
		{ID: "c2", Severity: 6, LegalTrigger: trigger(model.TriggerFraud)},
	}
	evidence := buildLegalTriggerEvidence(merged)
	require.Len(t, evidence, 1)
	assert.Equal(t, model.TriggerFraud, evidence[0].Trigger)
	assert.Equal(t, []string{"c1", "c2"}, evidence[0].IDs)
	assert.InDelta(t, 0.7, evidence[0].Confidence, 1e-9)
	assert.NotEmpty(t, evidence[0].Description)
	assert.NotEmpty(t, evidence[0].Recommendation)
}
