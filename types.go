package veridex

import "veridex/internal/model"

// Statement is the public representation of one atomic attributable
// utterance — an alias of internal/model.Statement. This engine has no
// enterprise/OSS split to hide behind a curated view, so the public and
// internal shapes are the same type.
type Statement = model.Statement

// ContradictionReport is the terminal artifact returned by App.Run.
type ContradictionReport = model.ContradictionReport

// Entity is a participant referenced across statements in a case.
type Entity = model.Entity

// Contradiction ties two statements together as a finding.
type Contradiction = model.Contradiction

// BehavioralAnomaly is one finding emitted by the behavioral drift detector.
type BehavioralAnomaly = model.BehavioralAnomaly

// LiabilityScore is the per-entity liability aggregate.
type LiabilityScore = model.LiabilityScore
