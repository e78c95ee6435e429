package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridex/internal/lexicon"
	"veridex/internal/model"
)

func ts(ms int64) *int64 { return &ms }

func TestRun_EmptyCorpusReturnsVerificationFalseAndNoFindings(t *testing.T) {
	e := New(lexicon.Default(), DefaultConfig())
	out, err := e.Run(context.Background(), "case-empty", nil)
	require.NoError(t, err)
	assert.False(t, out.VerificationStatus.StatementsIndexed)
	assert.Equal(t, 0, out.TotalContradictions)
	assert.Equal(t, "case-empty", out.CaseID)
}

func TestRun_DeterministicAcrossRepeatedRuns(t *testing.T) {
	statements := []model.Statement{
		{ID: "s1", Speaker: "Alex", Text: "I was never at the office that day", DocumentID: "d1", LineNumber: 1, TimestampMS: ts(1000)},
		{ID: "s2", Speaker: "Alex", Text: "I was at the office that day working late", DocumentID: "d1", LineNumber: 2, TimestampMS: ts(2000)},
		{ID: "s3", Speaker: "Jordan", Text: "Alex told me he was home all day", DocumentID: "d2", LineNumber: 1, TimestampMS: ts(3000)},
	}

	e1 := New(lexicon.Default(), DefaultConfig())
	out1, err := e1.Run(context.Background(), "case-1", statements)
	require.NoError(t, err)

	e2 := New(lexicon.Default(), DefaultConfig())
	out2, err := e2.Run(context.Background(), "case-1", statements)
	require.NoError(t, err)

	assert.Equal(t, out1.TotalContradictions, out2.TotalContradictions)
	assert.Equal(t, out1.SeverityBreakdown, out2.SeverityBreakdown)
	require.Len(t, out1.Contradictions, len(out2.Contradictions))
	for i := range out1.Contradictions {
		assert.Equal(t, out1.Contradictions[i].ID, out2.Contradictions[i].ID)
	}
}

func TestRun_ProducesNarrativeSections(t *testing.T) {
	statements := []model.Statement{
		{ID: "s1", Speaker: "Alex", Text: "I paid the full amount of $500 on time", DocumentID: "d1", LineNumber: 1, TimestampMS: ts(1000)},
		{ID: "s2", Speaker: "Alex", Text: "I never paid anything to that account", DocumentID: "d1", LineNumber: 2, TimestampMS: ts(5000)},
	}
	e := New(lexicon.Default(), DefaultConfig())
	out, err := e.Run(context.Background(), "case-2", statements)
	require.NoError(t, err)
	assert.NotEmpty(t, out.NarrativeSections.ObjectiveNarration)
	assert.NotEmpty(t, out.Summary)
}

// TestRun_S1_DirectNegationSameDocument covers the S1 scenario: same
// speaker, same document, a flat negation of an earlier statement.
func TestRun_S1_DirectNegationSameDocument(t *testing.T) {
	statements := []model.Statement{
		{ID: "S1", Speaker: "John", Text: "I paid the full amount", DocumentID: "D1", LineNumber: 1, TimestampMS: ts(1000)},
		{ID: "S2", Speaker: "John", Text: "I never paid", DocumentID: "D1", LineNumber: 2, TimestampMS: ts(2000)},
	}
	e := New(lexicon.Default(), DefaultConfig())
	out, err := e.Run(context.Background(), "case-s1", statements)
	require.NoError(t, err)

	var found *model.Contradiction
	for i := range out.Contradictions {
		if out.Contradictions[i].Type == model.ContradictionDirect {
			found = &out.Contradictions[i]
			break
		}
	}
	require.NotNil(t, found, "expected a direct contradiction")
	assert.GreaterOrEqual(t, found.Severity, 8)
	require.NotNil(t, found.LegalTrigger)
	assert.Equal(t, model.TriggerMisrepresentation, *found.LegalTrigger)
	assert.Contains(t, found.Description, "negation")
	assert.Equal(t, []string{"john"}, found.AffectedEntities)
}

// TestRun_S4_AmountMismatchAcrossDocuments covers S4: the same speaker
// states two different dollar amounts across two documents.
func TestRun_S4_AmountMismatchAcrossDocuments(t *testing.T) {
	statements := []model.Statement{
		{ID: "s1", Speaker: "Bob", Text: "The invoice amount was $10,000.", DocumentID: "D1", LineNumber: 1, TimestampMS: ts(1000)},
		{ID: "s2", Speaker: "Bob", Text: "The invoice amount was always $5,000.", DocumentID: "D2", LineNumber: 1, TimestampMS: ts(2000)},
	}
	e := New(lexicon.Default(), DefaultConfig())
	out, err := e.Run(context.Background(), "case-s4", statements)
	require.NoError(t, err)

	var found *model.Contradiction
	for i := range out.Contradictions {
		if out.Contradictions[i].Type == model.ContradictionCrossDocument {
			found = &out.Contradictions[i]
			break
		}
	}
	require.NotNil(t, found, "expected a cross_document contradiction")
	assert.Equal(t, "Conflicting factual claims (similarity 1.00)", found.Description)
	assert.GreaterOrEqual(t, found.Severity, 7)
}

// TestRun_S5_TimelineVsStatement covers S5: a statement references an
// event (shared tokens "wire transfer received") whose recorded timing
// is more than a day off from the statement's own timestamp.
func TestRun_S5_TimelineVsStatement(t *testing.T) {
	jan10 := int64(1704844800000) // 2024-01-10T00:00:00Z
	feb15 := int64(1707955200000) // 2024-02-15T00:00:00Z
	statements := []model.Statement{
		{ID: "s1", Speaker: "Alice", Text: "The wire transfer was received and recorded.", DocumentID: "D1", LineNumber: 1, TimestampMS: &jan10},
		{ID: "s2", Speaker: "Alice", Text: "Alice said the wire transfer was received on 2024-02-15.", DocumentID: "D1", LineNumber: 2, TimestampMS: &feb15},
	}
	e := New(lexicon.Default(), DefaultConfig())
	out, err := e.Run(context.Background(), "case-s5", statements)
	require.NoError(t, err)

	var found *model.Contradiction
	for i := range out.TimelineConflicts {
		if out.TimelineConflicts[i].Type == model.ContradictionTimeline {
			found = &out.TimelineConflicts[i]
			break
		}
	}
	require.NotNil(t, found, "expected a timeline contradiction")
	assert.Equal(t, 6, found.Severity)
	require.NotNil(t, found.LegalTrigger)
	assert.Equal(t, model.TriggerTimelineInconsistency, *found.LegalTrigger)
}

// TestRun_S6_ConsistentCorpusNoFindings covers S6: two agreeing statements
// from the same speaker should produce no contradictions and a low
// liability score.
func TestRun_S6_ConsistentCorpusNoFindings(t *testing.T) {
	statements := []model.Statement{
		{ID: "s1", Speaker: "Sarah", Text: "Yes, Tuesday works for the meeting.", DocumentID: "D1", LineNumber: 1, TimestampMS: ts(1000)},
		{ID: "s2", Speaker: "Sarah", Text: "Yes, Tuesday works for the meeting.", DocumentID: "D1", LineNumber: 2, TimestampMS: ts(2000)},
	}
	e := New(lexicon.Default(), DefaultConfig())
	out, err := e.Run(context.Background(), "case-s6", statements)
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalContradictions)
}
