// Package timeline implements the Timeline Builder (C5): derives
// TimelineEvents from timestamped statements, classifies their type and
// significance, clusters nearby events, and flags unusually large gaps as
// QuietPeriods.
package timeline

import (
	"sort"

	"veridex/internal/lexicon"
	"veridex/internal/model"
)

// Builder derives timeline artifacts from a statement set.
type Builder struct {
	lex                lexicon.Set
	clusterWindowHours float64
	gapUnusualMultiple float64
}

// New returns a Builder using the given lexicon and thresholds
// (spec.md §6 cluster_window_hours, gap_unusual_multiple).
func New(lex lexicon.Set, clusterWindowHours, gapUnusualMultiple float64) *Builder {
	return &Builder{lex: lex, clusterWindowHours: clusterWindowHours, gapUnusualMultiple: gapUnusualMultiple}
}

// BuildEvents derives one TimelineEvent per timestamped statement, sorted
// by time then statement id.
func (b *Builder) BuildEvents(statements []model.Statement) []model.TimelineEvent {
	var events []model.TimelineEvent
	for _, s := range statements {
		if !s.HasTimestamp() {
			continue
		}
		eventType := b.classifyType(s.Text)
		events = append(events, model.TimelineEvent{
			ID:           "evt_" + s.ID,
			StatementID:  s.ID,
			DocumentID:   s.DocumentID,
			Speaker:      s.NormalizedSpeaker(),
			TimestampMS:  *s.TimestampMS,
			Type:         eventType,
			Significance: b.classifySignificance(eventType),
			Text:         s.Text,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].TimestampMS != events[j].TimestampMS {
			return events[i].TimestampMS < events[j].TimestampMS
		}
		return events[i].StatementID < events[j].StatementID
	})
	return events
}

// classifyType applies the fixed lexical classification from spec.md §4.5:
// payment vocabulary -> payment; promise verbs -> promise; denial phrases ->
// denial; admission phrases -> admission; default -> communication.
func (b *Builder) classifyType(text string) model.EventType {
	switch {
	case lexicon.MatchAny(text, b.lex.Themes["financial"]):
		return model.EventPayment
	case lexicon.Matches(text, "promise") || lexicon.Matches(text, "i will") || lexicon.Matches(text, "i commit"):
		return model.EventPromise
	case lexicon.Matches(text, "never") || lexicon.Matches(text, "didn't") || lexicon.Matches(text, "did not") || lexicon.Matches(text, "not true"):
		return model.EventDenial
	case lexicon.Matches(text, "i admit") || lexicon.Matches(text, "yes i did"):
		return model.EventAdmission
	default:
		return model.EventCommunication
	}
}

// classifySignificance: critical for any denial or admission; high for
// payments and contradiction events; normal otherwise.
func (b *Builder) classifySignificance(t model.EventType) model.Significance {
	switch t {
	case model.EventDenial, model.EventAdmission:
		return model.SignificanceCritical
	case model.EventPayment, model.EventContradiction:
		return model.SignificanceHigh
	default:
		return model.SignificanceNormal
	}
}

// Cluster groups consecutive events (already time-sorted) whose neighbor
// gap is <= clusterWindowHours.
func (b *Builder) Cluster(events []model.TimelineEvent) []model.EventCluster {
	if len(events) == 0 {
		return nil
	}
	windowMS := int64(b.clusterWindowHours * 3600 * 1000)

	var clusters []model.EventCluster
	current := model.EventCluster{EventIDs: []string{events[0].ID}, Start: events[0].TimestampMS, End: events[0].TimestampMS}
	for i := 1; i < len(events); i++ {
		gap := events[i].TimestampMS - events[i-1].TimestampMS
		if gap <= windowMS {
			current.EventIDs = append(current.EventIDs, events[i].ID)
			current.End = events[i].TimestampMS
			continue
		}
		clusters = append(clusters, current)
		current = model.EventCluster{EventIDs: []string{events[i].ID}, Start: events[i].TimestampMS, End: events[i].TimestampMS}
	}
	clusters = append(clusters, current)
	return clusters
}

// GapAnalysis flags every inter-event gap exceeding gapUnusualMultiple
// times the mean gap as a QuietPeriod.
func (b *Builder) GapAnalysis(events []model.TimelineEvent) []model.QuietPeriod {
	if len(events) < 2 {
		return nil
	}
	gaps := make([]int64, len(events)-1)
	var sum int64
	for i := 1; i < len(events); i++ {
		gaps[i-1] = events[i].TimestampMS - events[i-1].TimestampMS
		sum += gaps[i-1]
	}
	mean := float64(sum) / float64(len(gaps))
	threshold := mean * b.gapUnusualMultiple

	var out []model.QuietPeriod
	for i, gap := range gaps {
		if float64(gap) > threshold && threshold > 0 {
			out = append(out, model.QuietPeriod{
				Start:            events[i].TimestampMS,
				End:              events[i+1].TimestampMS,
				PrecedingEventID: events[i].ID,
				FollowingEventID: events[i+1].ID,
				GapHours:         float64(gap) / 3600000.0,
			})
		}
	}
	return out
}
