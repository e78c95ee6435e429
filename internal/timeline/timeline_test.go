package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridex/internal/lexicon"
	"veridex/internal/model"
)

func ms(h int) int64 { return int64(h) * 3600 * 1000 }

func tsStatement(id string, hour int, text string) model.Statement {
	t := ms(hour)
	return model.Statement{ID: id, DocumentID: "d1", TimestampMS: &t, Text: text}
}

func TestBuildEvents_SkipsUntimestamped(t *testing.T) {
	b := New(lexicon.Default(), 24, 3)
	stmts := []model.Statement{
		tsStatement("s1", 0, "hello"),
		{ID: "s2", DocumentID: "d1", Text: "no timestamp"},
	}
	events := b.BuildEvents(stmts)
	require.Len(t, events, 1)
	assert.Equal(t, "s1", events[0].StatementID)
}

func TestClassifyType_Denial(t *testing.T) {
	b := New(lexicon.Default(), 24, 3)
	assert.Equal(t, model.EventDenial, b.classifyType("I never said that"))
}

func TestClassifyType_Admission(t *testing.T) {
	b := New(lexicon.Default(), 24, 3)
	assert.Equal(t, model.EventAdmission, b.classifyType("I admit I was late"))
}

func TestClassifyType_Payment(t *testing.T) {
	b := New(lexicon.Default(), 24, 3)
	assert.Equal(t, model.EventPayment, b.classifyType("I sent the payment yesterday"))
}

func TestClassifySignificance_CriticalForDenialAndAdmission(t *testing.T) {
	b := New(lexicon.Default(), 24, 3)
	assert.Equal(t, model.SignificanceCritical, b.classifySignificance(model.EventDenial))
	assert.Equal(t, model.SignificanceCritical, b.classifySignificance(model.EventAdmission))
	assert.Equal(t, model.SignificanceHigh, b.classifySignificance(model.EventPayment))
	assert.Equal(t, model.SignificanceNormal, b.classifySignificance(model.EventCommunication))
}

func TestCluster_GroupsWithinWindow(t *testing.T) {
	b := New(lexicon.Default(), 24, 3)
	events := b.BuildEvents([]model.Statement{
		tsStatement("s1", 0, "hello there"),
		tsStatement("s2", 2, "following up"),
		tsStatement("s3", 100, "much later"),
	})
	clusters := b.Cluster(events)
	require.Len(t, clusters, 2)
	assert.Len(t, clusters[0].EventIDs, 2)
	assert.Len(t, clusters[1].EventIDs, 1)
}

func TestGapAnalysis_FlagsUnusualGap(t *testing.T) {
	b := New(lexicon.Default(), 24, 3)
	events := b.BuildEvents([]model.Statement{
		tsStatement("s0", 0, "z"),
		tsStatement("s1", 0, "a"),
		tsStatement("s2", 1, "b"),
		tsStatement("s3", 2, "c"),
		tsStatement("s4", 50, "d"),
	})
	quiet := b.GapAnalysis(events)
	require.Len(t, quiet, 1)
	assert.Equal(t, "evt_s3", quiet[0].PrecedingEventID)
	assert.Equal(t, "evt_s4", quiet[0].FollowingEventID)
}
