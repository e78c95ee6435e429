package model

import "time"

// EventType enumerates the TimelineEvent kinds from spec §3.
type EventType string

const (
	EventCommunication EventType = "communication"
	EventPayment       EventType = "payment"
	EventPromise       EventType = "promise"
	EventDocument      EventType = "document"
	EventContradiction EventType = "contradiction"
	EventAdmission     EventType = "admission"
	EventDenial        EventType = "denial"
	EventBehaviorShift EventType = "behavior_change"
	EventOther         EventType = "other"
)

// Significance enumerates TimelineEvent significance tiers.
type Significance string

const (
	SignificanceLow      Significance = "low"
	SignificanceNormal   Significance = "normal"
	SignificanceHigh     Significance = "high"
	SignificanceCritical Significance = "critical"
)

// TimelineEvent is a dated occurrence derived from one statement or document
// section.
type TimelineEvent struct {
	ID               string       `json:"id"`
	StatementID      string       `json:"statement_id"`
	DocumentID       string       `json:"document_id"`
	Speaker          string       `json:"speaker"`
	TimestampMS      int64        `json:"timestamp_millis"`
	Text             string       `json:"text"`
	Description      string       `json:"description"`
	Type             EventType    `json:"event_type"`
	EntityIDs        []string     `json:"entity_ids,omitempty"`
	SourceEvidenceID string       `json:"source_evidence_id,omitempty"`
	Significance     Significance `json:"significance"`
}

// Time returns the event's timestamp as a time.Time.
func (e TimelineEvent) Time() time.Time {
	return time.UnixMilli(e.TimestampMS)
}

// QuietPeriod is an unusually large inter-event gap flagged by gap analysis.
// Supplements spec.md §4.5's "yields a QuietPeriod" with the concrete shape
// consumed downstream by the narrative composer's causal-chain section.
type QuietPeriod struct {
	Start            int64   `json:"start_millis"`
	End              int64   `json:"end_millis"`
	PrecedingEventID string  `json:"preceding_event_id"`
	FollowingEventID string  `json:"following_event_id"`
	GapHours         float64 `json:"gap_hours"`
}

// EventCluster is a run of consecutive events whose neighbor gap is within
// the configured cluster window.
type EventCluster struct {
	EventIDs []string `json:"event_ids"`
	Start    int64    `json:"start_millis"`
	End      int64    `json:"end_millis"`
}
