// Package config loads and validates engine configuration from environment
// variables (and, optionally, a local .env file for development runs).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all tunables from spec.md §6. Every field has a sensible
// default; Validate rejects values outside their allowed ranges.
type Config struct {
	EmbeddingDimension      int     // default 256
	MinEntityMentions       int     // default 2
	ClusterWindowHours      float64 // default 24
	GapUnusualMultiple      float64 // default 3
	TimelineConflictDays    float64 // default 1
	SimilarityThreshold     float64 // default 0.5
	HighSimilarityThreshold float64 // default 0.7
	DecayLambda             float64 // read from VERIDEX_DECAY_LAMBDA; not used by the engine or liability scoring

	LogLevel     string
	OTELEndpoint string
	OTELInsecure bool
	ServiceName  string
}

// Load reads an optional .env file (via godotenv, ignored if absent) and then
// environment variables with defaults. Returns an error for malformed
// numeric/boolean values and for values that fail Validate.
func Load() (Config, error) {
	_ = godotenv.Load() // optional; absence is not an error

	var errs []error
	cfg := Config{
		LogLevel:     envStr("VERIDEX_LOG_LEVEL", "info"),
		OTELEndpoint: envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  envStr("OTEL_SERVICE_NAME", "veridex"),
	}

	cfg.EmbeddingDimension, errs = collectInt(errs, "VERIDEX_EMBEDDING_DIMENSION", 256)
	cfg.MinEntityMentions, errs = collectInt(errs, "VERIDEX_MIN_ENTITY_MENTIONS", 2)
	cfg.ClusterWindowHours, errs = collectFloat(errs, "VERIDEX_CLUSTER_WINDOW_HOURS", 24)
	cfg.GapUnusualMultiple, errs = collectFloat(errs, "VERIDEX_GAP_UNUSUAL_MULTIPLE", 3)
	cfg.TimelineConflictDays, errs = collectFloat(errs, "VERIDEX_TIMELINE_CONFLICT_DAYS", 1)
	cfg.SimilarityThreshold, errs = collectFloat(errs, "VERIDEX_SIMILARITY_THRESHOLD", 0.5)
	cfg.HighSimilarityThreshold, errs = collectFloat(errs, "VERIDEX_HIGH_SIMILARITY_THRESHOLD", 0.7)
	cfg.DecayLambda, errs = collectFloat(errs, "VERIDEX_DECAY_LAMBDA", 0)
	cfg.OTELInsecure, errs = collectBool(errs, "OTEL_EXPORTER_OTLP_INSECURE", false)

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return Config{}, fmt.Errorf("config: invalid environment variables:\n  %s", strings.Join(msgs, "\n  "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration with every field at its spec.md §6
// default — used by library callers that don't want environment coupling.
func Default() Config {
	return Config{
		EmbeddingDimension:      256,
		MinEntityMentions:       2,
		ClusterWindowHours:      24,
		GapUnusualMultiple:      3,
		TimelineConflictDays:    1,
		SimilarityThreshold:     0.5,
		HighSimilarityThreshold: 0.7,
		LogLevel:                "info",
		ServiceName:             "veridex",
	}
}

// Validate checks that configuration values are sane.
func (c Config) Validate() error {
	var errs []error
	if c.EmbeddingDimension <= 0 {
		errs = append(errs, errors.New("config: VERIDEX_EMBEDDING_DIMENSION must be positive"))
	}
	if c.MinEntityMentions < 1 {
		errs = append(errs, errors.New("config: VERIDEX_MIN_ENTITY_MENTIONS must be at least 1"))
	}
	if c.ClusterWindowHours <= 0 {
		errs = append(errs, errors.New("config: VERIDEX_CLUSTER_WINDOW_HOURS must be positive"))
	}
	if c.GapUnusualMultiple <= 0 {
		errs = append(errs, errors.New("config: VERIDEX_GAP_UNUSUAL_MULTIPLE must be positive"))
	}
	if c.TimelineConflictDays <= 0 {
		errs = append(errs, errors.New("config: VERIDEX_TIMELINE_CONFLICT_DAYS must be positive"))
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		errs = append(errs, errors.New("config: VERIDEX_SIMILARITY_THRESHOLD must be in [0,1]"))
	}
	if c.HighSimilarityThreshold < 0 || c.HighSimilarityThreshold > 1 {
		errs = append(errs, errors.New("config: VERIDEX_HIGH_SIMILARITY_THRESHOLD must be in [0,1]"))
	}
	if c.DecayLambda < 0 {
		errs = append(errs, errors.New("config: VERIDEX_DECAY_LAMBDA must be non-negative"))
	}
	return errors.Join(errs...)
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func collectInt(errs []error, key string, fallback int) (int, []error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, errs
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, append(errs, fmt.Errorf("%s=%q is not a valid integer", key, v))
	}
	return n, errs
}

func collectFloat(errs []error, key string, fallback float64) (float64, []error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, errs
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, append(errs, fmt.Errorf("%s=%q is not a valid number", key, v))
	}
	return f, errs
}

func collectBool(errs []error, key string, fallback bool) (bool, []error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, errs
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, append(errs, fmt.Errorf("%s=%q is not a valid boolean", key, v))
	}
	return b, errs
}
