package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridex/internal/lexicon"
)

func TestTokenize_DropsShortTokensAndLowercases(t *testing.T) {
	got := Tokenize("I paid $500 to Jo on 4/1!")
	assert.NotContains(t, got, "jo")
	assert.Contains(t, got, "paid")
	assert.Contains(t, got, "500")
}

func TestBuildVocabulary_Deterministic(t *testing.T) {
	texts := []string{
		"the payment was sent on time",
		"the payment never arrived at all",
		"she confirmed the payment was received",
	}
	v1 := BuildVocabulary(texts, 5)
	v2 := BuildVocabulary(texts, 5)
	assert.Equal(t, v1.tokens, v2.tokens)
	assert.Equal(t, v1.idf, v2.idf)
}

func TestBuildVocabulary_TiesBrokenLexicographically(t *testing.T) {
	texts := []string{"zebra apple", "zebra apple"}
	v := BuildVocabulary(texts, 1)
	require.Equal(t, 1, v.Len())
	assert.Equal(t, "apple", v.tokens[0])
}

func TestGenerate_UnitNorm(t *testing.T) {
	texts := []string{"the payment was sent", "the payment never arrived", "she confirmed receipt"}
	v := BuildVocabulary(texts, 16)
	vec := v.Generate("the payment was sent")
	var sumSquares float64
	for _, x := range vec {
		sumSquares += x * x
	}
	norm := math.Sqrt(sumSquares)
	assert.InDelta(t, 1.0, norm, 1e-6)
}

func TestGenerate_NoMatchingTokensIsZeroVector(t *testing.T) {
	v := BuildVocabulary([]string{"alpha beta gamma"}, 8)
	vec := v.Generate("zzz qqq www")
	for _, x := range vec {
		assert.Equal(t, 0.0, x)
	}
}

func TestCosine_RangeAndSelfSimilarity(t *testing.T) {
	v := BuildVocabulary([]string{"the payment was sent on time to the office"}, 16)
	a := v.Generate("the payment was sent on time")
	assert.InDelta(t, 1.0, Cosine(a, a), 1e-9)
	assert.GreaterOrEqual(t, Cosine(a, a), -1.0)
	assert.LessOrEqual(t, Cosine(a, a), 1.0)
}

func TestCosine_ZeroNormIsSafe(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float64{0, 0}, []float64{1, 1}))
}

func TestDetectSemanticContradiction_UnrelatedReturnsNil(t *testing.T) {
	lex := lexicon.Default()
	v := BuildVocabulary([]string{"completely different sentence about weather", "another unrelated topic entirely"}, 16)
	a := v.Generate("completely different sentence about weather")
	b := v.Generate("another unrelated topic entirely")
	got := DetectSemanticContradiction(lex, a, b, "completely different sentence about weather", "another unrelated topic entirely", 0, 0, 0.5, 0.7)
	assert.Nil(t, got)
}

func TestDetectSemanticContradiction_NegationDetected(t *testing.T) {
	lex := lexicon.Default()
	texts := []string{
		"I was at the office that day",
		"I was not at the office that day",
	}
	v := BuildVocabulary(texts, 16)
	a := v.Generate(texts[0])
	b := v.Generate(texts[1])
	got := DetectSemanticContradiction(lex, a, b, texts[0], texts[1], 0, 0, 0.5, 0.7)
	require.NotNil(t, got)
	assert.Equal(t, "Direct negation detected", got.Reason)
}

func TestDetectSemanticContradiction_OppositeSentiment(t *testing.T) {
	lex := lexicon.Default()
	text := "the meeting at the downtown office building today"
	v := BuildVocabulary([]string{text}, 16)
	a := v.Generate(text)
	got := DetectSemanticContradiction(lex, a, a, text, text, 0.9, -0.9, 0.5, 0.7)
	require.NotNil(t, got)
	assert.Equal(t, "High similarity with opposite sentiment", got.Reason)
}
