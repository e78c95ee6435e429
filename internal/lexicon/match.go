package lexicon

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// boundaryCache memoizes the compiled word-boundary regexp for each phrase —
// the same fixed phrases are checked against every statement in a run, so
// compiling once per phrase instead of once per call matters at corpus
// scale.
var boundaryCache sync.Map // map[string]*regexp.Regexp

func boundaryPattern(phrase string) *regexp.Regexp {
	if v, ok := boundaryCache.Load(phrase); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?:^|[^a-z0-9])` + regexp.QuoteMeta(phrase) + `(?:$|[^a-z0-9])`)
	boundaryCache.Store(phrase, re)
	return re
}

// Matches reports whether phrase occurs in text surrounded by non-alphanumeric
// characters or string boundaries. Matching is case-insensitive; text is
// lowercased internally.
func Matches(text, phrase string) bool {
	return boundaryPattern(strings.ToLower(phrase)).MatchString(" " + strings.ToLower(text) + " ")
}

// MatchAny reports whether any phrase in the list matches text.
func MatchAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if Matches(text, p) {
			return true
		}
	}
	return false
}

// CountMatches returns how many distinct phrases in the list match text at
// least once (each phrase counts at most once, regardless of repetitions).
func CountMatches(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if Matches(text, p) {
			n++
		}
	}
	return n
}

// MatchedPhrases returns the subset of phrases that match text, in the
// order the caller supplied them, deduplicated.
func MatchedPhrases(text string, phrases []string) []string {
	var out []string
	seen := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		if !seen[p] && Matches(text, p) {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// HasTag reports whether text matches any phrase tagged tag in set.
func (s Set) HasTag(text, tag string) bool {
	return MatchAny(text, s.Tags[tag])
}

// CountTag returns the number of distinct tag phrases matched in text.
func (s Set) CountTag(text, tag string) int {
	return CountMatches(text, s.Tags[tag])
}

// MatchedTags returns every tag name for which at least one phrase matches
// text, sorted lexicographically for deterministic iteration downstream.
func (s Set) MatchedTags(text string) []string {
	var out []string
	for tag, phrases := range s.Tags {
		if MatchAny(text, phrases) {
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

// NegationFlips reports whether text contains a negated token whose positive
// counterpart appears, unnegated, in other. This underlies direct
// contradiction detection in §4.6 pass 1 (e.g. "I was not there" vs
// "I was there").
func (s Set) NegationFlips(negatedText, positiveText string) bool {
	lowNeg := strings.ToLower(negatedText)
	lowPos := strings.ToLower(positiveText)
	for negated, positive := range s.NegationPairs {
		if Matches(lowNeg, negated) && Matches(lowPos, positive) && !Matches(lowPos, negated) {
			return true
		}
	}
	return false
}

// MatchedThemes returns the theme names whose keywords match text, sorted.
func (s Set) MatchedThemes(text string) []string {
	var out []string
	for theme, keywords := range s.Themes {
		if MatchAny(text, keywords) {
			out = append(out, theme)
		}
	}
	sort.Strings(out)
	return out
}
