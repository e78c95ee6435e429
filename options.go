package veridex

import (
	"log/slog"

	"veridex/internal/engine"
	"veridex/internal/lexicon"
)

// Option configures an App.
type Option func(*resolvedOptions)

// resolvedOptions holds all extension points after applying defaults.
// Unexported — callers use the With* functions.
type resolvedOptions struct {
	logger  *slog.Logger
	config  engine.Config
	lexicon lexicon.Set
}

// WithLogger sets the structured logger for the App. If not set, the
// default slog logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *resolvedOptions) { o.logger = logger }
}

// WithConfig overrides the engine configuration (embedding dimension,
// thresholds, cluster window, …) from its spec.md §6 defaults.
func WithConfig(cfg engine.Config) Option {
	return func(o *resolvedOptions) { o.config = cfg }
}

// WithLexicons replaces the fixed keyword/negation/theme tables wholesale.
// Per spec.md §6, lexicons may only be overridden wholesale, never
// incrementally — there is no WithExtraTag/WithExtraTheme.
func WithLexicons(lex lexicon.Set) Option {
	return func(o *resolvedOptions) { o.lexicon = lex }
}
