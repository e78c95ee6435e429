// Package report assembles the final ContradictionReport (C10) from the
// Contradiction Engine's Result, the per-entity liability scores, and the
// composed narrative sections.
package report

import (
	"veridex/internal/model"
)

// Assembler packages a run's findings into the terminal report artifact.
type Assembler struct{}

// New returns an Assembler.
func New() *Assembler {
	return &Assembler{}
}

// Input bundles everything one run produced, since the assembler's only job
// is to package it — it never computes new findings.
type Input struct {
	CaseID              string
	Contradictions      []model.Contradiction
	TimelineConflicts   []model.Contradiction
	BehavioralAnomalies []model.BehavioralAnomaly
	Entities            map[string]model.Entity
	EntityInvolvement   map[string]model.EntityInvolvement
	DocumentLinks       map[string][]string
	SeverityBreakdown   map[int]int
	LegalTriggers       []model.LegalTriggerEvidence
	Narrative           model.NarrativeSections
	VerificationStatus  model.VerificationStatus
	Warnings            []string
}

// Assemble packages in into the final report. TotalContradictions counts
// both direct/cross-document/behavioral/third-party findings and timeline
// conflicts, since both are findings the report surfaces.
func (a *Assembler) Assemble(in Input) model.ContradictionReport {
	total := len(in.Contradictions) + len(in.TimelineConflicts)

	return model.ContradictionReport{
		CaseID:              in.CaseID,
		TotalContradictions: total,
		Contradictions:      nonNil(in.Contradictions),
		TimelineConflicts:   nonNil(in.TimelineConflicts),
		BehavioralAnomalies: nonNilAnomalies(in.BehavioralAnomalies),
		AffectedEntities:    nonNilInvolvement(in.EntityInvolvement),
		DocumentLinks:       nonNilLinks(in.DocumentLinks),
		SeverityBreakdown:   nonNilBreakdown(in.SeverityBreakdown),
		LegalTriggers:       nonNilTriggers(in.LegalTriggers),
		Entities:            in.Entities,
		Summary:             in.Narrative.FinalSummary,
		NarrativeSections:   in.Narrative,
		VerificationStatus:  in.VerificationStatus,
		Warnings:            nonNilStrings(append(in.Warnings, in.VerificationStatus.Warnings...)),
		AutoCorrections:     nonNilStrings(in.VerificationStatus.AutoCorrections),
	}
}

func nonNil(c []model.Contradiction) []model.Contradiction {
	if c == nil {
		return []model.Contradiction{}
	}
	return c
}

func nonNilAnomalies(a []model.BehavioralAnomaly) []model.BehavioralAnomaly {
	if a == nil {
		return []model.BehavioralAnomaly{}
	}
	return a
}

func nonNilInvolvement(m map[string]model.EntityInvolvement) map[string]model.EntityInvolvement {
	if m == nil {
		return map[string]model.EntityInvolvement{}
	}
	return m
}

func nonNilLinks(m map[string][]string) map[string][]string {
	if m == nil {
		return map[string][]string{}
	}
	return m
}

func nonNilBreakdown(m map[int]int) map[int]int {
	if m == nil {
		return map[int]int{}
	}
	return m
}

func nonNilTriggers(t []model.LegalTriggerEvidence) []model.LegalTriggerEvidence {
	if t == nil {
		return []model.LegalTriggerEvidence{}
	}
	return t
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
