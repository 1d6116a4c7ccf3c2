package embed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fathom-search/fathom/internal/config"
	ferrors "github.com/fathom-search/fathom/internal/errors"
)

// NewEmbedder constructs the embedder selected by the configuration and
// wraps it with the LRU cache.
func NewEmbedder(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Embedder, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		inner Embedder
		err   error
	)
	switch cfg.Embeddings.Provider {
	case "", "ollama":
		inner, err = NewOllamaEmbedder(ctx, OllamaConfig{
			Host:       cfg.Embeddings.OllamaHost,
			Model:      cfg.Embeddings.Model,
			Dimensions: cfg.Embeddings.Dimensions,
		})
	case "openai":
		inner, err = NewOpenAIEmbedder(OpenAIConfig{
			APIKey:  cfg.EmbeddingsAPIKey(),
			Model:   cfg.Embeddings.Model,
			BaseURL: cfg.Embeddings.OpenAIBaseURL,
		}, logger)
	case "static":
		inner = NewStaticEmbedder(cfg.Embeddings.Dimensions)
	default:
		return nil, ferrors.ConfigError(
			fmt.Sprintf("unknown embedding provider %q", cfg.Embeddings.Provider), nil)
	}
	if err != nil {
		return nil, err
	}

	cached, err := NewCachedEmbedder(inner, cfg.Embeddings.CacheSize)
	if err != nil {
		_ = inner.Close()
		return nil, err
	}

	logger.Info("embedder ready",
		"provider", cfg.Embeddings.Provider,
		"model", cached.ModelName(),
		"dimensions", cached.Dimensions())
	return cached, nil
}

// NewLazyProvider returns a Provider that constructs the configured
// embedder on first use.
func NewLazyProvider(cfg *config.Config, logger *slog.Logger) *Provider {
	return NewProvider(func(ctx context.Context) (Embedder, error) {
		return NewEmbedder(ctx, cfg, logger)
	})
}
