package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.4, cfg.Search.DenseWeight)
	assert.Equal(t, 0.3, cfg.Search.SparseWeight)
	assert.Equal(t, 0.3, cfg.Search.WebWeight)
	assert.Equal(t, 5, cfg.Search.MaxDocuments)
	assert.Equal(t, 5, cfg.Search.MaxWebResults)
	assert.Equal(t, 0.6, cfg.Search.SimilarityThreshold)
	assert.True(t, cfg.Search.IncludeWeb)
	assert.False(t, cfg.Search.IncludeNews)
	assert.Equal(t, 10*time.Second, cfg.WebSearch.Timeout)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Search, cfg.Search)
}

func TestLoad_OverlaysOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fathom.yaml")
	content := `
search:
  max_documents: 10
  include_news: true
embeddings:
  provider: static
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 10, cfg.Search.MaxDocuments)
	assert.True(t, cfg.Search.IncludeNews)
	assert.Equal(t, "static", cfg.Embeddings.Provider)

	// Untouched values keep their defaults
	assert.Equal(t, 0.4, cfg.Search.DenseWeight)
	assert.Equal(t, 5, cfg.Search.MaxWebResults)
	assert.Equal(t, "nomic-embed-text", cfg.Embeddings.Model)
}

func TestLoad_DefaultsNotMutated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fathom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  max_documents: 99\n"), 0o644))

	_, err := Load(path)
	require.NoError(t, err)

	// A second load without file overrides still sees pristine defaults.
	fresh := DefaultConfig()
	assert.Equal(t, DefaultMaxDocuments, fresh.Search.MaxDocuments)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fathom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"negative max documents", func(c *Config) { c.Search.MaxDocuments = -1 }, true},
		{"negative max web results", func(c *Config) { c.Search.MaxWebResults = -1 }, true},
		{"threshold above one", func(c *Config) { c.Search.SimilarityThreshold = 1.5 }, true},
		{"negative weight", func(c *Config) { c.Search.WebWeight = -0.1 }, true},
		{"weights above one allowed", func(c *Config) { c.Search.DenseWeight = 0.9; c.Search.SparseWeight = 0.9 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAPIKeyResolution(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WebSearch.APIKeyEnv = "FATHOM_TEST_KEY"
	t.Setenv("FATHOM_TEST_KEY", "secret")

	assert.Equal(t, "secret", cfg.WebSearchAPIKey())

	cfg.WebSearch.APIKeyEnv = ""
	assert.Equal(t, "", cfg.WebSearchAPIKey())
}
