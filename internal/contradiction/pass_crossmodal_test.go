package contradiction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridex/internal/lexicon"
	"veridex/internal/model"
)

func TestTimelineOrderingContradictions_FlagsBackwardNarration(t *testing.T) {
	e := New(lexicon.Default(), Options{})

	byID := map[string]model.Statement{
		"s1": {ID: "s1", DocumentID: "D1", LineNumber: 1},
		"s2": {ID: "s2", DocumentID: "D1", LineNumber: 2},
	}
	events := []model.TimelineEvent{
		{ID: "evt_s1", StatementID: "s1", TimestampMS: 5000, EntityIDs: []string{"jane"}},
		{ID: "evt_s2", StatementID: "s2", TimestampMS: 1000, EntityIDs: []string{"jane"}},
	}
	entities := map[string]model.Entity{
		"jane": {ID: "jane", PrimaryName: "Jane"},
	}

	got := e.timelineOrderingContradictions(events, entities, byID)
	require.Len(t, got, 1)
	assert.Equal(t, model.ContradictionTimeline, got[0].Type)
	assert.Equal(t, 6, got[0].Severity)
	require.NotNil(t, got[0].LegalTrigger)
	assert.Equal(t, model.TriggerTimelineInconsistency, *got[0].LegalTrigger)
	assert.Equal(t, []string{"jane"}, got[0].AffectedEntities)
}

func TestTimelineOrderingContradictions_ForwardOrderNotFlagged(t *testing.T) {
	e := New(lexicon.Default(), Options{})

	byID := map[string]model.Statement{
		"s1": {ID: "s1", DocumentID: "D1", LineNumber: 1},
		"s2": {ID: "s2", DocumentID: "D1", LineNumber: 2},
	}
	events := []model.TimelineEvent{
		{ID: "evt_s1", StatementID: "s1", TimestampMS: 1000, EntityIDs: []string{"jane"}},
		{ID: "evt_s2", StatementID: "s2", TimestampMS: 5000, EntityIDs: []string{"jane"}},
	}
	entities := map[string]model.Entity{
		"jane": {ID: "jane", PrimaryName: "Jane"},
	}

	got := e.timelineOrderingContradictions(events, entities, byID)
	assert.Empty(t, got)
}
