package model

// ContradictionType enumerates the seven-member taxonomy from spec §3.
type ContradictionType string

const (
	ContradictionDirect          ContradictionType = "direct"
	ContradictionCrossDocument   ContradictionType = "cross_document"
	ContradictionBehavioral      ContradictionType = "behavioral"
	ContradictionTemporal        ContradictionType = "temporal"
	ContradictionMissingEvidence ContradictionType = "missing_evidence"
	ContradictionThirdParty      ContradictionType = "third_party"
	ContradictionTimeline        ContradictionType = "timeline"
)

// LegalTrigger enumerates the categorical legal-significance labels from the
// glossary.
type LegalTrigger string

const (
	TriggerFraud                LegalTrigger = "fraud"
	TriggerMisrepresentation     LegalTrigger = "misrepresentation"
	TriggerConcealment           LegalTrigger = "concealment"
	TriggerPerjuryRisk           LegalTrigger = "perjury_risk"
	TriggerBreachOfContract      LegalTrigger = "breach_of_contract"
	TriggerTimelineInconsistency LegalTrigger = "timeline_inconsistency"
	TriggerUnreliableTestimony   LegalTrigger = "unreliable_testimony"
	TriggerFinancialDiscrepancy  LegalTrigger = "financial_discrepancy"
	TriggerConflictOfInterest    LegalTrigger = "conflict_of_interest"
	TriggerNegligence            LegalTrigger = "negligence"
)

// Contradiction ties two statements together as a finding.
type Contradiction struct {
	ID                string            `json:"id"`
	Type              ContradictionType `json:"type"`
	SourceStatement   Statement         `json:"source_statement"`
	TargetStatement   Statement         `json:"target_statement"`
	SourceDocument    string            `json:"source_document"`
	SourceLineNumber  int               `json:"source_line_number"`
	Severity          int               `json:"severity"` // 1..10
	Description       string            `json:"description"`
	LegalTrigger      *LegalTrigger     `json:"legal_trigger,omitempty"`
	AffectedEntities  []string          `json:"affected_entities"`
	SimilarityScore   *float64          `json:"similarity_score,omitempty"`
}
