package contradiction

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"veridex/internal/embedding"
	"veridex/internal/model"
)

// passIntraDocument is Pass 1: every unordered pair (A, B) with
// A.document == B.document.
func (e *Engine) passIntraDocument(sorted []model.Statement) []model.Contradiction {
	return e.pairPass(sorted, 1, model.ContradictionDirect, func(a, b model.Statement) bool {
		return a.DocumentID == b.DocumentID
	})
}

// passCrossDocument is Pass 2: every unordered pair restricted to
// statements from different documents.
func (e *Engine) passCrossDocument(sorted []model.Statement) []model.Contradiction {
	return e.pairPass(sorted, 2, model.ContradictionCrossDocument, func(a, b model.Statement) bool {
		return a.DocumentID != b.DocumentID
	})
}

// pairPass enumerates (i, j) with i < j over the sorted statement list,
// restricted by include, and calls detect_semantic_contradiction on each
// qualifying pair.
func (e *Engine) pairPass(sorted []model.Statement, pass int, ctype model.ContradictionType, include func(a, b model.Statement) bool) []model.Contradiction {
	var out []model.Contradiction
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[i], sorted[j]
			if !include(a, b) {
				continue
			}
			match := embedding.DetectSemanticContradiction(
				e.lex, a.Embedding, b.Embedding, a.Text, b.Text,
				valueOr(a.Sentiment, 0), valueOr(b.Sentiment, 0),
				e.opt.SimilarityThreshold, e.opt.HighSimilarityThreshold,
			)
			if match == nil {
				continue
			}
			sev := severityFromScore(match.ContradictionScore)
			trigger := legalTriggerForPass12(match.Reason, a, b)
			affected := []string{a.NormalizedSpeaker()}
			if b.NormalizedSpeaker() != affected[0] {
				affected = append(affected, b.NormalizedSpeaker())
			}
			out = append(out, model.Contradiction{
				ID:               contradictionID(a.ID, b.ID, pass),
				Type:             ctype,
				SourceStatement:  a,
				TargetStatement:  b,
				SourceDocument:   a.DocumentID,
				SourceLineNumber: a.LineNumber,
				Severity:         sev,
				Description:      fmt.Sprintf("%s (similarity %.2f)", match.Reason, match.Similarity),
				LegalTrigger:     &trigger,
				AffectedEntities: affected,
				SimilarityScore:  &match.Similarity,
			})
		}
	}
	return out
}

// severityFromScore maps a contradiction score to the 5..10 severity scale
// from spec.md §4.6.
func severityFromScore(score float64) int {
	switch {
	case score > 0.9:
		return 10
	case score > 0.8:
		return 9
	case score > 0.7:
		return 8
	case score > 0.6:
		return 7
	case score > 0.5:
		return 6
	default:
		return 5
	}
}

// legalTriggerForPass12 applies spec.md §4.6's Pass 1/2 trigger rules:
// "negation" reason -> misrepresentation; "conflicting" reason -> fraud;
// same speaker across both -> unreliable-testimony; different document ->
// misrepresentation; else concealment.
func legalTriggerForPass12(reason string, a, b model.Statement) model.LegalTrigger {
	lowerReason := strings.ToLower(reason)
	switch {
	case strings.Contains(lowerReason, "negation"):
		return model.TriggerMisrepresentation
	case strings.Contains(lowerReason, "conflicting"):
		return model.TriggerFraud
	case a.NormalizedSpeaker() == b.NormalizedSpeaker():
		return model.TriggerUnreliableTestimony
	case a.DocumentID != b.DocumentID:
		return model.TriggerMisrepresentation
	default:
		return model.TriggerConcealment
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// contradictionID is deterministic over the pair of statement ids and pass
// number, per spec.md §4.6's post-processing dedup key.
func contradictionID(idA, idB string, pass int) string {
	h := sha1.New()
	if idA > idB {
		idA, idB = idB, idA
	}
	fmt.Fprintf(h, "%s|%s|%d", idA, idB, pass)
	return "c_" + hex.EncodeToString(h.Sum(nil))[:16]
}
