package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 256, cfg.EmbeddingDimension)
	assert.Equal(t, 2, cfg.MinEntityMentions)
	assert.Equal(t, 0.5, cfg.SimilarityThreshold)
	assert.Equal(t, 0.7, cfg.HighSimilarityThreshold)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().EmbeddingDimension, cfg.EmbeddingDimension)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VERIDEX_EMBEDDING_DIMENSION", "128")
	t.Setenv("VERIDEX_SIMILARITY_THRESHOLD", "0.4")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.EmbeddingDimension)
	assert.Equal(t, 0.4, cfg.SimilarityThreshold)
}

func TestLoad_InvalidInt(t *testing.T) {
	t.Setenv("VERIDEX_EMBEDDING_DIMENSION", "not-a-number")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VERIDEX_EMBEDDING_DIMENSION")
}

func TestValidate_RejectsOutOfRangeThreshold(t *testing.T) {
	cfg := Default()
	cfg.SimilarityThreshold = 1.5
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VERIDEX_SIMILARITY_THRESHOLD")
}

func TestValidate_RejectsNonPositiveDimension(t *testing.T) {
	cfg := Default()
	cfg.EmbeddingDimension = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VERIDEX_EMBEDDING_DIMENSION")
}
