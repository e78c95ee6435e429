// Package index implements the Statement Index (C2): an append-then-freeze
// collection of model.Statement values with set-once derived slots for
// embedding, sentiment, and certainty.
package index

import (
	"sort"
	"sync"

	"veridex/internal/model"
)

// Index holds one run's statements. It is append-only until Freeze, after
// which only the set-once derived-value setters may write to it. Construct
// it with New; the zero value has nil maps and is not ready to use.
type Index struct {
	mu       sync.Mutex
	byID     map[string]*model.Statement
	order    []string // insertion order, for all()
	frozen   bool
	embedSet map[string]bool
	sentSet  map[string]bool
	certSet  map[string]bool
}

// New returns an empty, unfrozen Index.
func New() *Index {
	return &Index{
		byID:     make(map[string]*model.Statement),
		embedSet: make(map[string]bool),
		sentSet:  make(map[string]bool),
		certSet:  make(map[string]bool),
	}
}

// Add appends a batch of statements, enforcing id uniqueness. On the first
// duplicate id it returns model.ErrDuplicateStatementID and adds none of the
// batch — callers see an all-or-nothing append.
func (idx *Index) Add(statements []model.Statement) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.frozen {
		return model.ErrFrozenIndexMutation
	}
	seenInBatch := make(map[string]bool, len(statements))
	for _, s := range statements {
		if _, exists := idx.byID[s.ID]; exists || seenInBatch[s.ID] {
			return model.ErrDuplicateStatementID
		}
		seenInBatch[s.ID] = true
	}
	for i := range statements {
		s := statements[i]
		idx.byID[s.ID] = &s
		idx.order = append(idx.order, s.ID)
	}
	return nil
}

// Freeze prevents further Add calls. Idempotent.
func (idx *Index) Freeze() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.frozen = true
}

// Frozen reports whether Freeze has been called.
func (idx *Index) Frozen() bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.frozen
}

// Len returns the number of indexed statements.
func (idx *Index) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.order)
}

// Get returns the statement with the given id, if present.
func (idx *Index) Get(id string) (model.Statement, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	s, ok := idx.byID[id]
	if !ok {
		return model.Statement{}, false
	}
	return *s, true
}

// All returns every statement exactly once, ordered by (document_id,
// line_number, id) as required by spec.md §5's ordering guarantee.
func (idx *Index) All() []model.Statement {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	out := make([]model.Statement, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, *idx.byID[id])
	}
	sortCanonical(out)
	return out
}

// BySpeaker returns statements for the given normalized speaker, ordered by
// timestamp then id (stable).
func (idx *Index) BySpeaker(speaker string) []model.Statement {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	key := model.NormalizeSpeaker(speaker)
	var out []model.Statement
	for _, id := range idx.order {
		s := idx.byID[id]
		if s.NormalizedSpeaker() == key {
			out = append(out, *s)
		}
	}
	sortByTimestampThenID(out)
	return out
}

// ByDocument returns statements belonging to document d, preserving the
// document's original insertion order among statements sharing identical
// timestamps.
func (idx *Index) ByDocument(d string) []model.Statement {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	var out []model.Statement
	for _, id := range idx.order {
		s := idx.byID[id]
		if s.DocumentID == d {
			out = append(out, *s)
		}
	}
	// Timestamp only, stable: ties keep insertion order; untimestamped last.
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].TimestampMS, out[j].TimestampMS
		if ti == nil || tj == nil {
			return ti != nil && tj == nil
		}
		return *ti < *tj
	})
	return out
}

// Speakers returns the sorted set of distinct normalized speakers.
func (idx *Index) Speakers() []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	seen := make(map[string]bool)
	for _, id := range idx.order {
		seen[idx.byID[id].NormalizedSpeaker()] = true
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Documents returns the sorted set of distinct document ids.
func (idx *Index) Documents() []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	seen := make(map[string]bool)
	for _, id := range idx.order {
		seen[idx.byID[id].DocumentID] = true
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// UpdateEmbedding sets a statement's embedding exactly once.
func (idx *Index) UpdateEmbedding(id string, vec []float64) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.embedSet[id] {
		return model.ErrEmbeddingAlreadySet
	}
	s, ok := idx.byID[id]
	if !ok {
		return nil
	}
	s.Embedding = vec
	idx.embedSet[id] = true
	return nil
}

// UpdateSentiment sets a statement's sentiment exactly once.
func (idx *Index) UpdateSentiment(id string, v float64) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.sentSet[id] {
		return model.ErrSentimentAlreadySet
	}
	s, ok := idx.byID[id]
	if !ok {
		return nil
	}
	s.Sentiment = &v
	idx.sentSet[id] = true
	return nil
}

// UpdateCertainty sets a statement's certainty exactly once.
func (idx *Index) UpdateCertainty(id string, v float64) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.certSet[id] {
		return model.ErrCertaintyAlreadySet
	}
	s, ok := idx.byID[id]
	if !ok {
		return nil
	}
	s.Certainty = &v
	idx.certSet[id] = true
	return nil
}

// MissingEmbeddings returns, in canonical order, the ids of statements with
// no embedding assigned yet.
func (idx *Index) MissingEmbeddings() []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	var out []string
	all := make([]model.Statement, 0, len(idx.order))
	for _, id := range idx.order {
		all = append(all, *idx.byID[id])
	}
	sortCanonical(all)
	for _, s := range all {
		if !idx.embedSet[s.ID] {
			out = append(out, s.ID)
		}
	}
	return out
}

func sortCanonical(ss []model.Statement) {
	sort.SliceStable(ss, func(i, j int) bool {
		if ss[i].DocumentID != ss[j].DocumentID {
			return ss[i].DocumentID < ss[j].DocumentID
		}
		if ss[i].LineNumber != ss[j].LineNumber {
			return ss[i].LineNumber < ss[j].LineNumber
		}
		return ss[i].ID < ss[j].ID
	})
}

func sortByTimestampThenID(ss []model.Statement) {
	sort.SliceStable(ss, func(i, j int) bool {
		ti, tj := ss[i].TimestampMS, ss[j].TimestampMS
		switch {
		case ti == nil && tj == nil:
			return ss[i].ID < ss[j].ID
		case ti == nil:
			return false
		case tj == nil:
			return true
		case *ti != *tj:
			return *ti < *tj
		default:
			return ss[i].ID < ss[j].ID
		}
	})
}
