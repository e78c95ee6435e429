package lexicon

import (
	"regexp"
	"sort"
	"strings"
)

// moneyPattern matches currency-prefixed or suffixed numeric amounts across
// $ € £ ¥ R and the words dollar(s) euro(s) pound(s) rand.
var moneyPattern = regexp.MustCompile(
	`(?i)(?:[$€£¥]\s?\d[\d,]*(?:\.\d+)?|\bR\s?\d[\d,]*(?:\.\d+)?|\d[\d,]*(?:\.\d+)?\s?(?:dollars?|euros?|pounds?|rand))`,
)

// datePattern matches DD/MM/YYYY, YYYY-MM-DD, and "D MonthName YYYY" forms,
// case-insensitively.
var datePattern = regexp.MustCompile(
	`(?i)\b(?:\d{1,2}/\d{1,2}/\d{4}|\d{4}-\d{2}-\d{2}|\d{1,2}\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4})\b`,
)

// namePattern matches capitalized bigrams/trigrams: consecutive
// Title-Case words.
var namePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s[A-Z][a-z]+)+\b`)

// tokenPattern splits text into word tokens for SignificantWords.
var tokenPattern = regexp.MustCompile(`[A-Za-z']+`)

// ExtractMoney returns the sorted, deduplicated set of currency amounts
// found in text. Returns an empty (non-nil) slice on no match; extractors
// never error.
func ExtractMoney(text string) []string {
	return sortedUnique(moneyPattern.FindAllString(text, -1))
}

// ExtractDates returns the sorted, deduplicated set of date strings found
// in text.
func ExtractDates(text string) []string {
	return sortedUnique(datePattern.FindAllString(text, -1))
}

// ExtractNames returns the sorted, deduplicated set of capitalized
// name-like bigrams/trigrams found in text.
func ExtractNames(text string) []string {
	return sortedUnique(namePattern.FindAllString(text, -1))
}

// SignificantWords lowercases text, tokenizes it, and drops the fixed
// stop-list plus tokens of length <= 2. The result is sorted and
// deduplicated for deterministic downstream use (shared-token overlap
// checks in the embedding and contradiction packages).
func (s Set) SignificantWords(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]bool, len(tokens))
	var out []string
	for _, tok := range tokens {
		tok = strings.Trim(tok, "'")
		if len(tok) <= 2 || s.StopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

func sortedUnique(items []string) []string {
	if len(items) == 0 {
		return []string{}
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}
