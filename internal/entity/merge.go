package entity

import (
	"strings"

	"veridex/internal/model"
)

// mergeAll repeatedly merges candidate entities that satisfy the spec.md
// §4.4 merge rule — share an email (case-insensitive), a phone, or have
// primary names that are case-insensitive substrings of one another —
// until no further merge applies. Processing order is the candidates'
// incoming order (already sorted by speaker key), so results are
// deterministic.
func mergeAll(candidates []model.Entity) []model.Entity {
	merged := candidates
	for changed := true; changed; {
		changed = false
		next := make([]model.Entity, 0, len(merged))
		for _, c := range merged {
			target := -1
			for i := range next {
				if shouldMerge(next[i], c) {
					target = i
					break
				}
			}
			if target == -1 {
				next = append(next, c)
				continue
			}
			next[target] = next[target].Merge(c)
			changed = true
		}
		merged = next
	}
	return merged
}

func shouldMerge(a, b model.Entity) bool {
	if sharesAny(a.Emails, b.Emails) {
		return true
	}
	if sharesAny(a.Phones, b.Phones) {
		return true
	}
	return namesOverlap(a.PrimaryName, b.PrimaryName)
}

func sharesAny(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[strings.ToLower(v)] = true
	}
	for _, v := range b {
		if set[strings.ToLower(v)] {
			return true
		}
	}
	return false
}

func namesOverlap(a, b string) bool {
	la, lb := strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
