// Package config loads Fathom configuration from YAML with defaults.
// Caller-supplied values are overlaid onto process-wide defaults; the
// defaults themselves are never mutated.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "github.com/fathom-search/fathom/internal/errors"
)

// Config represents the complete Fathom configuration.
type Config struct {
	Version    int              `yaml:"version" json:"version"`
	Search     SearchConfig     `yaml:"search" json:"search"`
	Embeddings EmbeddingsConfig `yaml:"embeddings" json:"embeddings"`
	WebSearch  WebSearchConfig  `yaml:"web_search" json:"web_search"`
	Storage    StorageConfig    `yaml:"storage" json:"storage"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
}

// SearchConfig configures hybrid search defaults.
type SearchConfig struct {
	// DenseWeight, SparseWeight and WebWeight are the top-level default
	// strategy weights. Nothing enforces that they sum to 1.
	DenseWeight  float64 `yaml:"dense_weight" json:"dense_weight"`
	SparseWeight float64 `yaml:"sparse_weight" json:"sparse_weight"`
	WebWeight    float64 `yaml:"web_weight" json:"web_weight"`

	// MaxDocuments is the maximum number of document results returned.
	MaxDocuments int `yaml:"max_documents" json:"max_documents"`

	// MaxWebResults is the maximum number of web results returned.
	MaxWebResults int `yaml:"max_web_results" json:"max_web_results"`

	// SimilarityThreshold is the minimum vector similarity for dense results.
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarity_threshold"`

	// IncludeWeb enables the web search strategy.
	IncludeWeb bool `yaml:"include_web" json:"include_web"`

	// IncludeNews requests news results alongside organic web results.
	IncludeNews bool `yaml:"include_news" json:"include_news"`

	// Location is an optional geographic hint passed to the web provider.
	Location string `yaml:"location" json:"location"`
}

// EmbeddingsConfig configures the embedding provider.
type EmbeddingsConfig struct {
	// Provider selects the embedding backend: "ollama", "openai", "static".
	Provider string `yaml:"provider" json:"provider"`

	// Model is the embedding model name.
	Model string `yaml:"model" json:"model"`

	// Dimensions is the expected embedding dimension (0 = auto-detect).
	Dimensions int `yaml:"dimensions" json:"dimensions"`

	// OllamaHost is the Ollama API endpoint.
	OllamaHost string `yaml:"ollama_host" json:"ollama_host"`

	// OpenAIBaseURL is the base URL for OpenAI-compatible providers.
	OpenAIBaseURL string `yaml:"openai_base_url" json:"openai_base_url"`

	// APIKeyEnv names the environment variable holding the provider API key.
	APIKeyEnv string `yaml:"api_key_env" json:"api_key_env"`

	// CacheSize is the number of query embeddings kept in the LRU cache.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// WebSearchConfig configures the external web search provider.
type WebSearchConfig struct {
	// Endpoint is the provider search endpoint.
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// APIKeyEnv names the environment variable holding the provider API key.
	APIKeyEnv string `yaml:"api_key_env" json:"api_key_env"`

	// Timeout bounds a single provider call. No automatic retry is performed.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// StorageConfig configures on-disk state.
type StorageConfig struct {
	// Path is the data directory holding the document corpus and vector index.
	Path string `yaml:"path" json:"path"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// Default strategy weights and limits. The method-level fusion defaults
// (0.6 dense / 0.4 sparse) live in the hybrid package and intentionally
// differ from these top-level defaults.
const (
	DefaultDenseWeight         = 0.4
	DefaultSparseWeight        = 0.3
	DefaultWebWeight           = 0.3
	DefaultMaxDocuments        = 5
	DefaultMaxWebResults       = 5
	DefaultSimilarityThreshold = 0.6
	DefaultWebSearchTimeout    = 10 * time.Second
)

// DefaultConfig returns the process-wide default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Search: SearchConfig{
			DenseWeight:         DefaultDenseWeight,
			SparseWeight:        DefaultSparseWeight,
			WebWeight:           DefaultWebWeight,
			MaxDocuments:        DefaultMaxDocuments,
			MaxWebResults:       DefaultMaxWebResults,
			SimilarityThreshold: DefaultSimilarityThreshold,
			IncludeWeb:          true,
			IncludeNews:         false,
		},
		Embeddings: EmbeddingsConfig{
			Provider:  "ollama",
			Model:     "nomic-embed-text",
			CacheSize: 1000,
		},
		WebSearch: WebSearchConfig{
			Endpoint:  "https://google.serper.dev/search",
			APIKeyEnv: "FATHOM_SERPER_API_KEY",
			Timeout:   DefaultWebSearchTimeout,
		},
		Storage: StorageConfig{
			Path: defaultDataDir(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// defaultDataDir returns ~/.fathom, falling back to the temp directory.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".fathom")
	}
	return filepath.Join(home, ".fathom")
}

// Load reads configuration from the given path, overlaying file values onto
// defaults. A missing file yields the defaults without error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, ferrors.New(ferrors.ErrCodeConfigNotFound,
			fmt.Sprintf("cannot read config file %s", path), err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ferrors.ConfigError(fmt.Sprintf("invalid YAML in %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Search.MaxDocuments < 0 {
		return ferrors.ConfigError("search.max_documents must be >= 0", nil)
	}
	if c.Search.MaxWebResults < 0 {
		return ferrors.ConfigError("search.max_web_results must be >= 0", nil)
	}
	if c.Search.SimilarityThreshold < 0 || c.Search.SimilarityThreshold > 1 {
		return ferrors.ConfigError("search.similarity_threshold must be in [0,1]", nil)
	}
	if c.Search.DenseWeight < 0 || c.Search.SparseWeight < 0 || c.Search.WebWeight < 0 {
		return ferrors.ConfigError("search weights must be >= 0", nil)
	}
	if c.WebSearch.Timeout < 0 {
		return ferrors.ConfigError("web_search.timeout must be >= 0", nil)
	}
	return nil
}

// WebSearchAPIKey resolves the provider API key from the environment.
func (c *Config) WebSearchAPIKey() string {
	if c.WebSearch.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.WebSearch.APIKeyEnv)
}

// EmbeddingsAPIKey resolves the embedding provider API key from the environment.
func (c *Config) EmbeddingsAPIKey() string {
	if c.Embeddings.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Embeddings.APIKeyEnv)
}

// DefaultConfigPath returns the default config file location (~/.fathom/fathom.yaml).
func DefaultConfigPath() string {
	return filepath.Join(defaultDataDir(), "fathom.yaml")
}
