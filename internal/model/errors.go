package model

import "errors"

// ErrDuplicateStatementID is returned by index.Index.Add when a statement
// id already exists in the index. Fatal to the current run.
var ErrDuplicateStatementID = errors.New("model: duplicate statement id")

// ErrEmbeddingAlreadySet is returned when a statement's embedding slot is
// written a second time. Indicates a programming error in the caller.
var ErrEmbeddingAlreadySet = errors.New("model: embedding already set")

// ErrSentimentAlreadySet is returned when a statement's sentiment slot is
// written a second time.
var ErrSentimentAlreadySet = errors.New("model: sentiment already set")

// ErrCertaintyAlreadySet is returned when a statement's certainty slot is
// written a second time.
var ErrCertaintyAlreadySet = errors.New("model: certainty already set")

// ErrFrozenIndexMutation is returned when a caller attempts to Add to an
// index that has already been frozen.
var ErrFrozenIndexMutation = errors.New("model: index is frozen")

// ErrEmptyCorpus signals a non-fatal warning: no statements were indexed.
// The engine still returns a report with empty lists.
var ErrEmptyCorpus = errors.New("model: empty corpus")

// ErrMissingDerivedArtifact signals a non-fatal condition: an embedding,
// timeline, or entity profile derived artifact was missing and had to be
// rebuilt by self-verification.
var ErrMissingDerivedArtifact = errors.New("model: missing derived artifact")
