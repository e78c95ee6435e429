package embedding

import (
	"math"
	"regexp"
	"strings"

	"veridex/internal/lexicon"
)

// SemanticMatch is the result of DetectSemanticContradiction — mirrors
// spec.md §4.3's Option<SemanticMatch>. A nil return means "no match".
type SemanticMatch struct {
	Similarity         float64
	ContradictionScore float64
	Reason             string
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// DetectSemanticContradiction applies the five rules from spec.md §4.3, in
// order, keeping the best contradiction score and the reason that produced
// it. similarityFloor and highSimilarity are the run's configured
// similarity_threshold and high_similarity_threshold (defaults 0.5, 0.7);
// the 0.9/0.95 rule multipliers and the 0.5 emission floor are fixed by the
// rule definitions themselves. Returns nil if no rule clears the floor.
func DetectSemanticContradiction(lex lexicon.Set, a, b []float64, textA, textB string, sentA, sentB, similarityFloor, highSimilarity float64) *SemanticMatch {
	cos := Cosine(a, b)

	// Rule 1: statements unrelated.
	if cos < similarityFloor {
		return nil
	}

	var score float64
	var reason string

	// Rule 2: high similarity, opposite sentiment.
	if cos > highSimilarity {
		deltaSent := math.Abs(sentA - sentB)
		if deltaSent > 1.0 {
			candidate := cos * (deltaSent / 2)
			if candidate > score {
				score = candidate
				reason = "High similarity with opposite sentiment"
			}
		}
	}

	// Rule 3: shared non-numeric context, disagreeing numbers.
	if sharesContextDisagreesOnNumbers(lex, textA, textB) {
		candidate := cos * 0.9
		if candidate > score {
			score = candidate
			reason = "Conflicting factual claims"
		}
	}

	// Rule 4: negation-pair table satisfied.
	if lex.NegationFlips(textA, textB) || lex.NegationFlips(textB, textA) {
		candidate := cos * 0.95
		if candidate > score {
			score = candidate
			reason = "Direct negation detected"
		}
	}

	// Rule 5: emit only if score exceeds the floor.
	if score <= 0.5 {
		return nil
	}
	return &SemanticMatch{Similarity: cos, ContradictionScore: score, Reason: reason}
}

// sharesContextDisagreesOnNumbers reports whether textA and textB share at
// least two non-numeric significant tokens (spec.md §9's recommended
// token-set overlap threshold for "talking about the same thing") while
// their extracted numbers differ.
func sharesContextDisagreesOnNumbers(lex lexicon.Set, textA, textB string) bool {
	numsA := numberPattern.FindAllString(textA, -1)
	numsB := numberPattern.FindAllString(textB, -1)
	if len(numsA) == 0 || len(numsB) == 0 {
		return false
	}
	if sameNumberSets(numsA, numsB) {
		return false
	}
	return sharedSignificantTokenCount(lex, textA, textB) >= 2
}

func sameNumberSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	setA := make(map[string]int)
	for _, n := range a {
		setA[n]++
	}
	for _, n := range b {
		setA[n]--
	}
	for _, count := range setA {
		if count != 0 {
			return false
		}
	}
	return true
}

func sharedSignificantTokenCount(lex lexicon.Set, textA, textB string) int {
	tokensA := lex.SignificantWords(stripNumbers(textA))
	tokensB := lex.SignificantWords(stripNumbers(textB))
	setB := make(map[string]bool, len(tokensB))
	for _, tok := range tokensB {
		setB[tok] = true
	}
	count := 0
	for _, tok := range tokensA {
		if setB[tok] {
			count++
		}
	}
	return count
}

func stripNumbers(text string) string {
	return numberPattern.ReplaceAllString(strings.ToLower(text), " ")
}
