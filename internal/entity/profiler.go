// Package entity implements the Entity Profiler (C4): groups statements by
// normalized speaker, merges candidate entities that clearly refer to the
// same person, and derives per-entity themes, key phrases, certainty, and
// communication style.
package entity

import (
	"regexp"
	"sort"
	"strings"

	"veridex/internal/lexicon"
	"veridex/internal/model"
)

// Profiler derives entities from a statement set using a fixed lexicon.
type Profiler struct {
	lex lexicon.Set
}

// New returns a Profiler bound to lex.
func New(lex lexicon.Set) *Profiler {
	return &Profiler{lex: lex}
}

// quotedPattern matches quoted fragments for key-phrase extraction.
var quotedPattern = regexp.MustCompile(`"([^"]{3,80})"|'([^']{3,80})'`)

// numericUnitPattern matches a number followed by a short unit word, e.g.
// "30 days", "500 dollars", "3 times".
var numericUnitPattern = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s+[a-z]{2,12}\b`)

// Build groups statements by normalized speaker and returns one Entity per
// speaker with at least minMentions statements, after merging candidates
// that share an email, a phone, or have primary names that are
// case-insensitive substrings of one another.
func (p *Profiler) Build(statements []model.Statement, minMentions int) map[string]model.Entity {
	bySpeaker := groupBySpeaker(statements)

	candidates := make([]model.Entity, 0, len(bySpeaker))
	speakerKeys := make([]string, 0, len(bySpeaker))
	for k := range bySpeaker {
		speakerKeys = append(speakerKeys, k)
	}
	sort.Strings(speakerKeys)

	for _, key := range speakerKeys {
		stmts := bySpeaker[key]
		candidates = append(candidates, p.profileOne(key, stmts))
	}

	merged := mergeAll(candidates)

	out := make(map[string]model.Entity, len(merged))
	for _, e := range merged {
		if e.MentionCount < minMentions {
			continue
		}
		out[e.ID] = e
	}
	return out
}

func groupBySpeaker(statements []model.Statement) map[string][]model.Statement {
	out := make(map[string][]model.Statement)
	for _, s := range statements {
		key := s.NormalizedSpeaker()
		out[key] = append(out[key], s)
	}
	return out
}

func (p *Profiler) profileOne(speakerKey string, stmts []model.Statement) model.Entity {
	ids := make([]string, 0, len(stmts))
	var texts []string
	emails := map[string]bool{}
	phones := map[string]bool{}
	themeSet := map[string]bool{}
	var keyPhrases []string
	seenPhrase := map[string]bool{}
	var certaintySum float64
	var certaintyCount int
	tagCounts := map[string]int{
		lexicon.TagDefensive:   0,
		lexicon.TagCooperative: 0,
	}
	evasiveCount := 0
	aggressiveCount := 0

	primaryName := displayName(stmts)

	for _, s := range stmts {
		ids = append(ids, s.ID)
		texts = append(texts, s.Text)

		for _, t := range p.lex.MatchedThemes(s.Text) {
			themeSet[t] = true
		}

		for _, m := range quotedPattern.FindAllStringSubmatch(s.Text, -1) {
			phrase := firstNonEmpty(m[1], m[2])
			if phrase != "" && !seenPhrase[phrase] && len(keyPhrases) < 10 {
				seenPhrase[phrase] = true
				keyPhrases = append(keyPhrases, phrase)
			}
		}
		for _, m := range numericUnitPattern.FindAllString(s.Text, -1) {
			if !seenPhrase[m] && len(keyPhrases) < 10 {
				seenPhrase[m] = true
				keyPhrases = append(keyPhrases, m)
			}
		}

		if p.lex.HasTag(s.Text, lexicon.TagCertainty) {
			certaintySum += 1
			certaintyCount++
		} else if p.lex.HasTag(s.Text, lexicon.TagUncertainty) {
			certaintyCount++
		}

		if p.lex.HasTag(s.Text, lexicon.TagDefensive) {
			tagCounts[lexicon.TagDefensive]++
		}
		if p.lex.HasTag(s.Text, lexicon.TagCooperative) {
			tagCounts[lexicon.TagCooperative]++
		}
		if p.lex.HasTag(s.Text, lexicon.TagGaslighting) || p.lex.HasTag(s.Text, lexicon.TagThreatening) {
			aggressiveCount++
		}
		if p.lex.HasTag(s.Text, lexicon.TagDeflection) {
			evasiveCount++
		}

		for _, e := range extractEmails(s.Text) {
			emails[e] = true
		}
		for _, ph := range extractPhones(s.Text) {
			phones[ph] = true
		}
	}

	themes := make([]string, 0, len(themeSet))
	for t := range themeSet {
		themes = append(themes, t)
	}
	sort.Strings(themes)

	avgCertainty := 0.0
	if certaintyCount > 0 {
		avgCertainty = certaintySum / float64(certaintyCount)
	}

	style := classifyStyle(tagCounts[lexicon.TagDefensive], evasiveCount, aggressiveCount, tagCounts[lexicon.TagCooperative])

	return model.Entity{
		ID:                  speakerKey,
		PrimaryName:         primaryName,
		Aliases:             []string{},
		Emails:              sortedKeys(emails),
		Phones:              sortedKeys(phones),
		BankAccounts:        []string{},
		MentionCount:        len(stmts),
		StatementIDs:        ids,
		Themes:              themes,
		KeyPhrases:          keyPhrases,
		AverageCertainty:    avgCertainty,
		CommunicationStyle:  style,
	}
}

// classifyStyle applies the fixed thresholds from spec.md §4.4:
// defensive >= 3 and highest wins; evasive >= 3; aggressive >= 2;
// cooperative >= 2; else neutral.
func classifyStyle(defensive, evasive, aggressive, cooperative int) string {
	if defensive >= 3 && defensive >= evasive && defensive >= aggressive && defensive >= cooperative {
		return "defensive"
	}
	if evasive >= 3 {
		return "evasive"
	}
	if aggressive >= 2 {
		return "aggressive"
	}
	if cooperative >= 2 {
		return "cooperative"
	}
	return "neutral"
}

func displayName(stmts []model.Statement) string {
	if len(stmts) == 0 {
		return ""
	}
	return strings.TrimSpace(stmts[0].Speaker)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
var phonePattern = regexp.MustCompile(`\+?\d[\d\-. ]{7,}\d`)

func extractEmails(text string) []string {
	found := emailPattern.FindAllString(text, -1)
	for i, f := range found {
		found[i] = strings.ToLower(f)
	}
	return found
}

func extractPhones(text string) []string {
	return phonePattern.FindAllString(text, -1)
}
