// Package embedding implements the deterministic TF-IDF "weak" embedding
// generator (C3): a small, explainable surrogate for a real sentence
// embedding model, chosen so the engine's output is reproducible without a
// network call or a trained model on disk.
package embedding

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern lowercases externally; here we just split on runs of
// non [a-z0-9] and keep tokens of length > 2, per spec.md §4.3.
var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Tokenize lowercases text, replaces every non [a-z0-9] run with a
// separator, and keeps tokens of length > 2.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	all := tokenPattern.FindAllString(lower, -1)
	out := make([]string, 0, len(all))
	for _, tok := range all {
		if len(tok) > 2 {
			out = append(out, tok)
		}
	}
	return out
}

// Vocabulary is the fixed token -> (index, idf) table built once per run
// from the full corpus of texts.
type Vocabulary struct {
	Dimension int
	index     map[string]int
	idf       []float64
	tokens    []string // tokens[i] is the token at index i
}

// BuildVocabulary computes document frequencies over texts and selects the
// top `dimension` tokens by document frequency, ties broken lexicographically
// for determinism. Each selected token receives an index 0..dimension-1 and
// an IDF score ln(N / (1 + df)).
func BuildVocabulary(texts []string, dimension int) Vocabulary {
	df := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(text) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	tokens := make([]string, 0, len(df))
	for tok := range df {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if df[tokens[i]] != df[tokens[j]] {
			return df[tokens[i]] > df[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})
	if len(tokens) > dimension {
		tokens = tokens[:dimension]
	}

	n := float64(len(texts))
	idx := make(map[string]int, len(tokens))
	idf := make([]float64, len(tokens))
	for i, tok := range tokens {
		idx[tok] = i
		idf[i] = math.Log(n / (1 + float64(df[tok])))
	}

	return Vocabulary{Dimension: dimension, index: idx, idf: idf, tokens: tokens}
}

// Len returns the number of tokens actually selected (<= Dimension, when the
// corpus has fewer than Dimension distinct tokens).
func (v Vocabulary) Len() int { return len(v.tokens) }

// Generate produces a unit-norm embedding of length v.Dimension for text.
// Token weight is tf(w) * idf(w) with tf = count(w) / max(1, tokens). The
// result is the zero vector if no vocabulary token matches.
func (v Vocabulary) Generate(text string) []float64 {
	vec := make([]float64, v.Dimension)
	tokens := Tokenize(text)
	if len(tokens) == 0 || len(v.index) == 0 {
		return vec
	}

	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}
	denom := float64(len(tokens))
	if denom < 1 {
		denom = 1
	}

	for tok, count := range counts {
		i, ok := v.index[tok]
		if !ok {
			continue
		}
		tf := float64(count) / denom
		vec[i] = tf * v.idf[i]
	}

	normalize(vec)
	return vec
}

func normalize(vec []float64) {
	var sumSquares float64
	for _, x := range vec {
		sumSquares += x * x
	}
	if sumSquares == 0 {
		return
	}
	norm := math.Sqrt(sumSquares)
	for i := range vec {
		vec[i] /= norm
	}
}

// Cosine returns the cosine similarity of a and b, safe against zero-norm
// vectors (returns 0 rather than NaN) and always in [-1, 1].
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return cos
}
