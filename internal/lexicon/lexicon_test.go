package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_AllTagsPresent(t *testing.T) {
	s := Default()
	for _, tag := range []string{
		TagDeflection, TagCertainty, TagUncertainty, TagDefensive, TagCooperative,
		TagOverExplaining, TagBlameShifting, TagGaslighting, TagPressureTactics,
		TagFinancialManipulation, TagEmotionalManipulation, TagPassiveAdmission,
		TagMinimization, TagThreatening,
	} {
		assert.NotEmpty(t, s.Tags[tag], "tag %s should have phrases", tag)
	}
	assert.NotEmpty(t, s.NegationPairs)
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()
	a.Tags[TagCertainty][0] = "mutated"
	assert.NotEqual(t, a.Tags[TagCertainty][0], b.Tags[TagCertainty][0])
}

func TestMatches_WordBoundary(t *testing.T) {
	assert.True(t, Matches("I was not there that night", "not"))
	assert.False(t, Matches("another explanation entirely", "not"),
		"substring inside 'another' must not match")
	assert.True(t, Matches("She said: \"never again\".", "never"))
}

func TestMatches_CaseInsensitive(t *testing.T) {
	assert.True(t, Matches("DEFINITELY not involved", "definitely"))
}

func TestHasTag_Certainty(t *testing.T) {
	s := Default()
	assert.True(t, s.HasTag("I am absolutely certain he was there", TagCertainty))
	assert.False(t, s.HasTag("maybe he was there", TagCertainty))
}

func TestCountTag(t *testing.T) {
	s := Default()
	n := s.CountTag("I am sure, definitely certain, absolutely positive that", TagCertainty)
	assert.GreaterOrEqual(t, n, 2)
}

func TestMatchedTags_Sorted(t *testing.T) {
	s := Default()
	tags := s.MatchedTags("that is not true, you are wrong, I refuse to discuss it")
	require.NotEmpty(t, tags)
	for i := 1; i < len(tags); i++ {
		assert.LessOrEqual(t, tags[i-1], tags[i])
	}
}

func TestNegationFlips(t *testing.T) {
	s := Default()
	assert.True(t, s.NegationFlips("I was not at the office that day", "I was at the office that day"))
	assert.False(t, s.NegationFlips("I was at the office that day", "I was at the office that day"))
}

func TestMatchedThemes(t *testing.T) {
	s := Default()
	themes := s.MatchedThemes("I sent the payment and we agreed on the deadline")
	assert.Contains(t, themes, "financial")
	assert.Contains(t, themes, "timing")
}

func TestExtractMoney(t *testing.T) {
	got := ExtractMoney("He paid $500 and then another 200 dollars, plus €75.50")
	assert.Equal(t, []string{"$500", "200 dollars", "€75.50"}, got)
}

func TestExtractMoney_NoMatch(t *testing.T) {
	got := ExtractMoney("nothing financial here")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestExtractDates(t *testing.T) {
	got := ExtractDates("We met on 14/03/2023, confirmed by email on 2023-03-15 and again 2 April 2023.")
	assert.ElementsMatch(t, []string{"14/03/2023", "2023-03-15", "2 April 2023"}, got)
}

func TestExtractNames(t *testing.T) {
	got := ExtractNames("John Smith spoke with Mary Jane Watson about the Acme Corporation deal")
	assert.Contains(t, got, "John Smith")
	assert.Contains(t, got, "Mary Jane Watson")
}

func TestSignificantWords(t *testing.T) {
	s := Default()
	words := s.SignificantWords("The payment was not sent to the office on time")
	assert.Contains(t, words, "payment")
	assert.Contains(t, words, "sent")
	assert.Contains(t, words, "office")
	assert.NotContains(t, words, "the")
	assert.NotContains(t, words, "was")
	assert.NotContains(t, words, "on")
}

func TestSignificantWords_Empty(t *testing.T) {
	s := Default()
	assert.Empty(t, s.SignificantWords("to a an of"))
}
