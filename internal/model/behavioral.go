package model

// SentimentPoint is one sample in a per-entity sentiment trend.
type SentimentPoint struct {
	TimestampMS       int64   `json:"timestamp_millis"`
	Value             float64 `json:"value"`
	SourceStatementID string  `json:"source_statement_id"`
}

// CertaintyPoint is one sample in a per-entity certainty trend.
type CertaintyPoint struct {
	TimestampMS       int64   `json:"timestamp_millis"`
	Value             float64 `json:"value"`
	SourceStatementID string  `json:"source_statement_id"`
}

// ToneShift records a cooperative-to-defensive (or similar) transition
// between two consecutive statements from the same speaker.
type ToneShift struct {
	BeforeID    string `json:"before_id"`
	AfterID     string `json:"after_id"`
	BeforeTone  string `json:"before_tone"`
	AfterTone   string `json:"after_tone"`
}

// BehavioralProfile is the per-entity time-series view built by the
// behavioral/linguistic drift detector (C7) and attached to its entity by
// the contradiction engine once Pass 4 has finished.
type BehavioralProfile struct {
	EntityID         string           `json:"entity_id"`
	SentimentTrend   []SentimentPoint `json:"sentiment_trend,omitempty"`
	CertaintyTrend   []CertaintyPoint `json:"certainty_trend,omitempty"`
	DeflectionCount  int              `json:"deflection_count"`
	ToneShifts       []ToneShift      `json:"tone_shifts,omitempty"`
	Patterns         []string         `json:"patterns,omitempty"` // detected pattern tags
}

// BehavioralAnomaly is one finding emitted by a C7 sub-detector.
type BehavioralAnomaly struct {
	ID           string   `json:"id"`
	Entity       string   `json:"entity"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Severity     int      `json:"severity"` // 1..10
	StatementIDs []string `json:"statement_ids"`
	BeforeState  string   `json:"before_state,omitempty"`
	AfterState   string   `json:"after_state,omitempty"`
}
