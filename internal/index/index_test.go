package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridex/internal/model"
)

func ts(ms int64) *int64 { return &ms }

func TestAdd_DuplicateID(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Add([]model.Statement{{ID: "s1", DocumentID: "d1"}}))
	err := idx.Add([]model.Statement{{ID: "s1", DocumentID: "d1"}})
	assert.ErrorIs(t, err, model.ErrDuplicateStatementID)
}

func TestAdd_DuplicateWithinBatch(t *testing.T) {
	idx := New()
	err := idx.Add([]model.Statement{{ID: "s1"}, {ID: "s1"}})
	assert.ErrorIs(t, err, model.ErrDuplicateStatementID)
	assert.Equal(t, 0, idx.Len())
}

func TestFreeze_BlocksAdd(t *testing.T) {
	idx := New()
	idx.Freeze()
	err := idx.Add([]model.Statement{{ID: "s1"}})
	assert.ErrorIs(t, err, model.ErrFrozenIndexMutation)
}

func TestAll_ReturnsEveryStatementOnce(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Add([]model.Statement{
		{ID: "b", DocumentID: "d1", LineNumber: 2},
		{ID: "a", DocumentID: "d1", LineNumber: 1},
	}))
	all := idx.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
}

func TestByDocument_PreservesInsertionOrderForTiedTimestamps(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Add([]model.Statement{
		{ID: "first", DocumentID: "d1", TimestampMS: ts(100)},
		{ID: "second", DocumentID: "d1", TimestampMS: ts(100)},
	}))
	docStatements := idx.ByDocument("d1")
	require.Len(t, docStatements, 2)
	assert.Equal(t, "first", docStatements[0].ID)
	assert.Equal(t, "second", docStatements[1].ID)
}

func TestBySpeaker_NormalizesCase(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Add([]model.Statement{{ID: "s1", Speaker: "John Smith"}}))
	got := idx.BySpeaker("john smith")
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
}

func TestUpdateEmbedding_SetOnce(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Add([]model.Statement{{ID: "s1"}}))
	require.NoError(t, idx.UpdateEmbedding("s1", []float64{1, 0}))
	err := idx.UpdateEmbedding("s1", []float64{0, 1})
	assert.ErrorIs(t, err, model.ErrEmbeddingAlreadySet)
}

func TestSpeakersAndDocuments_Sorted(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Add([]model.Statement{
		{ID: "s1", Speaker: "Zed", DocumentID: "docB"},
		{ID: "s2", Speaker: "Amy", DocumentID: "docA"},
	}))
	assert.Equal(t, []string{"amy", "zed"}, idx.Speakers())
	assert.Equal(t, []string{"docA", "docB"}, idx.Documents())
}

func TestMissingEmbeddings(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Add([]model.Statement{{ID: "s1", DocumentID: "d1"}, {ID: "s2", DocumentID: "d1"}}))
	require.NoError(t, idx.UpdateEmbedding("s1", []float64{1}))
	assert.Equal(t, []string{"s2"}, idx.MissingEmbeddings())
}
