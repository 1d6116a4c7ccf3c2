package embed

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	ferrors "github.com/fathom-search/fathom/internal/errors"
)

// OpenAI embedding model dimensions.
const (
	openaiSmallDims = 1536
	openaiLargeDims = 3072
)

// OpenAIConfig configures the OpenAI embedder.
type OpenAIConfig struct {
	// APIKey authenticates against the OpenAI API.
	APIKey string

	// Model is the embedding model (default: text-embedding-3-small).
	Model string

	// BaseURL overrides the API endpoint (for compatible providers).
	BaseURL string
}

// openaiAPI is the subset of the OpenAI client we use. Swappable in tests.
type openaiAPI interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// OpenAIEmbedder generates embeddings using the OpenAI embeddings API.
type OpenAIEmbedder struct {
	api    openaiAPI
	model  openai.EmbeddingModel
	dims   int
	logger *slog.Logger
}

var _ Embedder = (*OpenAIEmbedder)(nil)

// NewOpenAIEmbedder creates an OpenAI embedder.
func NewOpenAIEmbedder(cfg OpenAIConfig, logger *slog.Logger) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, ferrors.ConfigError("openai api key is required", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	model := openai.EmbeddingModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.SmallEmbedding3
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIEmbedder{
		api:    openai.NewClientWithConfig(clientCfg),
		model:  model,
		dims:   openaiModelDimensions(model),
		logger: logger.With("component", "embed.openai"),
	}, nil
}

func openaiModelDimensions(model openai.EmbeddingModel) int {
	switch model {
	case openai.LargeEmbedding3:
		return openaiLargeDims
	case openai.SmallEmbedding3, openai.AdaEmbeddingV2:
		return openaiSmallDims
	default:
		return openaiSmallDims
	}
}

// Embed generates an embedding for a single text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one API call.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := e.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, ferrors.EmbeddingError("openai embedding request failed", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, ferrors.SchemaError(
			fmt.Sprintf("openai returned %d embeddings for %d inputs", len(resp.Data), len(texts)), nil)
	}

	vecs := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, ferrors.SchemaError(
				fmt.Sprintf("openai returned out-of-range index %d", item.Index), nil)
		}
		vecs[item.Index] = normalizeVector(item.Embedding)
	}

	e.logger.Debug("embedded batch", "count", len(texts), "model", string(e.model))
	return vecs, nil
}

// Dimensions returns the embedding dimension for the configured model.
func (e *OpenAIEmbedder) Dimensions() int {
	return e.dims
}

// ModelName returns the model identifier.
func (e *OpenAIEmbedder) ModelName() string {
	return string(e.model)
}

// Available reports whether the embedder can serve requests. The OpenAI
// API has no cheap health endpoint, so a configured client is considered
// available.
func (e *OpenAIEmbedder) Available(ctx context.Context) bool {
	return e.api != nil
}

// Close releases resources. The OpenAI client holds no persistent state.
func (e *OpenAIEmbedder) Close() error {
	return nil
}
