package model

import "strings"

// normalizeKey lowercases and trims a speaker/entity key for case-insensitive
// comparison. Used for grouping statements by speaker and for entity merge
// candidate matching.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSpeaker exposes normalizeKey for callers outside this package
// that need to look up a speaker without holding a Statement (e.g. index
// lookups by speaker name).
func NormalizeSpeaker(s string) string {
	return normalizeKey(s)
}
