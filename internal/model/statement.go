// Package model holds the data types shared across the forensic engine:
// statements, entities, behavioral profiles, timeline events, contradictions,
// liability scores, and the final report. Types here carry no behavior
// beyond small invariant-preserving setters — analysis lives in the
// component packages that consume them.
package model

import "time"

// Statement is an atomic attributable utterance: one line of text, said by
// one speaker, in one document. Immutable after indexing except for the
// later, set-once assignment of Embedding, Sentiment, and Certainty.
type Statement struct {
	ID          string `json:"id"`
	Speaker     string `json:"speaker"` // as supplied; NormalizedSpeaker gives the case-insensitive key
	Text        string `json:"text"`    // original casing, never lowercased in place
	DocumentID  string `json:"document_id"`
	LineNumber  int    `json:"line_number"`
	TimestampMS *int64 `json:"timestamp_millis,omitempty"`

	// Derived, set-once fields. Populated by the embedding generator and by
	// whatever upstream sentiment/certainty scorer the caller supplies.
	Sentiment *float64  `json:"sentiment,omitempty"` // [-1, 1]
	Certainty *float64  `json:"certainty,omitempty"` // [0, 1]
	Embedding []float64 `json:"embedding,omitempty"` // unit-norm, fixed dimension D
}

// HasTimestamp reports whether the statement carries a timestamp.
func (s Statement) HasTimestamp() bool {
	return s.TimestampMS != nil
}

// Time returns the statement's timestamp as a time.Time, or the zero value
// if none is set.
func (s Statement) Time() time.Time {
	if s.TimestampMS == nil {
		return time.Time{}
	}
	return time.UnixMilli(*s.TimestampMS)
}

// NormalizedSpeaker returns the speaker key lower-cased for grouping.
func (s Statement) NormalizedSpeaker() string {
	return normalizeKey(s.Speaker)
}
