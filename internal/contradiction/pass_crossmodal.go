package contradiction

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"veridex/internal/lexicon"
	"veridex/internal/model"
)

// passCrossModal is Pass 3: entity contradiction detection (disagreeing
// emails/amounts/dates across documents for the same entity), timeline
// ordering detection via C5 (events about the same subject narrated in one
// order but occurring in the opposite chronological order), and the
// timeline-vs-statement cross-check, per spec.md §4.6.
func (e *Engine) passCrossModal(sorted []model.Statement, entities map[string]model.Entity, events []model.TimelineEvent) []model.Contradiction {
	byID := make(map[string]model.Statement, len(sorted))
	for _, s := range sorted {
		byID[s.ID] = s
	}

	var out []model.Contradiction
	out = append(out, e.entityCrossDocumentContradictions(entities, byID)...)
	out = append(out, e.timelineOrderingContradictions(events, entities, byID)...)
	out = append(out, e.timelineVsStatementCrossCheck(sorted, events)...)
	return out
}

// timelineOrderingContradictions groups events by the entities they involve
// and checks, per entity, whether the narrated order (source document, then
// line number) agrees with the chronological order (TimestampMS). Two
// consecutive-in-narration events about the same entity that run backward
// in time are flagged: the timeline says one thing happened, the narrative
// implies the opposite sequence.
func (e *Engine) timelineOrderingContradictions(events []model.TimelineEvent, entities map[string]model.Entity, byID map[string]model.Statement) []model.Contradiction {
	var out []model.Contradiction

	byEntity := make(map[string][]model.TimelineEvent)
	for _, ev := range events {
		for _, entID := range ev.EntityIDs {
			byEntity[entID] = append(byEntity[entID], ev)
		}
	}

	entityIDs := make([]string, 0, len(byEntity))
	for id := range byEntity {
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)

	for _, entID := range entityIDs {
		evs := append([]model.TimelineEvent{}, byEntity[entID]...)
		sort.SliceStable(evs, func(i, j int) bool {
			si, sj := byID[evs[i].StatementID], byID[evs[j].StatementID]
			if si.DocumentID != sj.DocumentID {
				return si.DocumentID < sj.DocumentID
			}
			if si.LineNumber != sj.LineNumber {
				return si.LineNumber < sj.LineNumber
			}
			return evs[i].ID < evs[j].ID
		})

		name := entID
		if ent, ok := entities[entID]; ok && ent.PrimaryName != "" {
			name = ent.PrimaryName
		}

		for i := 0; i < len(evs)-1; i++ {
			a, b := evs[i], evs[i+1]
			if b.TimestampMS >= a.TimestampMS {
				continue
			}
			sa, sb := byID[a.StatementID], byID[b.StatementID]
			trigger := model.TriggerTimelineInconsistency
			out = append(out, model.Contradiction{
				ID:               contradictionID(a.ID, b.ID, 3),
				Type:             model.ContradictionTimeline,
				SourceStatement:  sa,
				TargetStatement:  sb,
				SourceDocument:   sa.DocumentID,
				SourceLineNumber: sa.LineNumber,
				Severity:         6,
				Description:      fmt.Sprintf("Events involving %s are narrated in one order but occurred in the opposite chronological order", name),
				LegalTrigger:     &trigger,
				AffectedEntities: []string{entID},
			})
		}
	}
	return out
}

// factSet is what one document says about one entity: the extracted
// emails, money amounts, and dates across that entity's statements in that
// document.
type factSet struct {
	emails map[string]bool
	money  map[string]bool
	dates  map[string]bool
}

func newFactSet() factSet {
	return factSet{emails: map[string]bool{}, money: map[string]bool{}, dates: map[string]bool{}}
}

// entityCrossDocumentContradictions groups each entity's statements by
// document, extracts emails/money/dates per document, and flags a
// contradiction when two documents disagree (same fact category, different
// values) for the same entity.
func (e *Engine) entityCrossDocumentContradictions(entities map[string]model.Entity, byID map[string]model.Statement) []model.Contradiction {
	var out []model.Contradiction

	entityIDs := make([]string, 0, len(entities))
	for id := range entities {
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)

	for _, entID := range entityIDs {
		ent := entities[entID]
		docFacts := map[string]factSet{}
		docOrder := []string{}

		for _, sid := range ent.StatementIDs {
			s, ok := byID[sid]
			if !ok {
				continue
			}
			fs, seen := docFacts[s.DocumentID]
			if !seen {
				fs = newFactSet()
				docOrder = append(docOrder, s.DocumentID)
			}
			for _, amount := range lexicon.ExtractMoney(s.Text) {
				fs.money[amount] = true
			}
			for _, email := range extractEmailsLocal(s.Text) {
				fs.emails[email] = true
			}
			for _, d := range lexicon.ExtractDates(s.Text) {
				fs.dates[d] = true
			}
			docFacts[s.DocumentID] = fs
		}
		sort.Strings(docOrder)

		for i := 0; i < len(docOrder); i++ {
			for j := i + 1; j < len(docOrder); j++ {
				docA, docB := docOrder[i], docOrder[j]
				if conflict, category := factSetsDisagree(docFacts[docA], docFacts[docB]); conflict {
					trigger := model.TriggerFinancialDiscrepancy
					if category == "emails" {
						trigger = model.TriggerMisrepresentation
					} else if category == "dates" {
						trigger = model.TriggerTimelineInconsistency
					}
					out = append(out, model.Contradiction{
						ID:               contradictionID(entID+":"+docA, entID+":"+docB, 3),
						Type:             model.ContradictionThirdParty,
						SourceDocument:   docA,
						Severity:         7,
						Description:      fmt.Sprintf("%s for %s disagree between %s and %s", category, ent.PrimaryName, docA, docB),
						LegalTrigger:     &trigger,
						AffectedEntities: []string{entID},
					})
				}
			}
		}
	}
	return out
}

func factSetsDisagree(a, b factSet) (bool, string) {
	if len(a.emails) > 0 && len(b.emails) > 0 && !setsEqual(a.emails, b.emails) {
		return true, "emails"
	}
	if len(a.money) > 0 && len(b.money) > 0 && !setsEqual(a.money, b.money) {
		return true, "amounts"
	}
	if len(a.dates) > 0 && len(b.dates) > 0 && !setsEqual(a.dates, b.dates) {
		return true, "dates"
	}
	return false, ""
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

var emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)

func extractEmailsLocal(text string) []string {
	// The entity package already extracts emails during profiling, but its
	// extractor is unexported, so this pass keeps its own narrow email
	// regex here while reusing lexicon's money/date extractors directly.
	found := emailPattern.FindAllString(text, -1)
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = strings.ToLower(f)
	}
	return out
}

// timelineVsStatementCrossCheck: a statement references an event if they
// share >= 3 tokens of length > 3 (lowercased, non-alphanumeric split); if
// both are timestamped and the difference exceeds timeline_conflict_days,
// emit a timeline contradiction.
func (e *Engine) timelineVsStatementCrossCheck(sorted []model.Statement, events []model.TimelineEvent) []model.Contradiction {
	var out []model.Contradiction
	conflictMS := int64(e.opt.TimelineConflictDays * 86400 * 1000)

	for _, s := range sorted {
		if !s.HasTimestamp() {
			continue
		}
		sTokens := e.significantLongTokens(s.Text)
		for _, ev := range events {
			if ev.StatementID == s.ID {
				continue
			}
			evTokens := e.significantLongTokens(ev.Text)
			if sharedTokenCount(sTokens, evTokens) < 3 {
				continue
			}
			diff := s.Time().UnixMilli() - ev.TimestampMS
			if diff < 0 {
				diff = -diff
			}
			if diff <= conflictMS {
				continue
			}
			trigger := model.TriggerTimelineInconsistency
			affected := []string{s.NormalizedSpeaker()}
			if ev.Speaker != affected[0] {
				affected = append(affected, ev.Speaker)
			}
			out = append(out, model.Contradiction{
				ID:               contradictionID(s.ID, ev.StatementID, 3),
				Type:             model.ContradictionTimeline,
				SourceStatement:  s,
				SourceDocument:   s.DocumentID,
				SourceLineNumber: s.LineNumber,
				Severity:         6,
				Description:      fmt.Sprintf("Statement references an event inconsistent with its recorded timing (%.1f days apart)", float64(diff)/86400000.0),
				LegalTrigger:     &trigger,
				AffectedEntities: affected,
			})
		}
	}
	return out
}

func (e *Engine) significantLongTokens(text string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range e.lex.SignificantWords(text) {
		if len(w) > 3 {
			out[w] = true
		}
	}
	return out
}

func sharedTokenCount(a, b map[string]bool) int {
	n := 0
	for tok := range a {
		if b[tok] {
			n++
		}
	}
	return n
}
