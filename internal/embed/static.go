package embed

import (
	"context"
	"hash/fnv"
	"math"
)

// StaticEmbedder produces deterministic hash-based embeddings without any
// external service. It exists for tests and offline operation; similar
// texts do NOT produce similar vectors.
type StaticEmbedder struct {
	dims int
}

var _ Embedder = (*StaticEmbedder)(nil)

// NewStaticEmbedder creates a deterministic embedder with the given
// dimension (DefaultDimensions when dims <= 0).
func NewStaticEmbedder(dims int) *StaticEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &StaticEmbedder{dims: dims}
}

// Embed generates a deterministic embedding from the text hash.
func (e *StaticEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dims)

	// Seed a simple LCG from the FNV hash so the full vector is cheap
	// to derive and stable across runs.
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	state := h.Sum64()

	for i := range vec {
		state = state*6364136223846793005 + 1442695040888963407
		// Map the top bits into [-1, 1).
		vec[i] = float32(int64(state>>11))/float32(math.MaxInt64>>11)*2 - 1
	}
	return normalizeVector(vec), nil
}

// EmbedBatch generates embeddings for multiple texts.
func (e *StaticEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		vecs[i] = v
	}
	return vecs, nil
}

// Dimensions returns the embedding dimension.
func (e *StaticEmbedder) Dimensions() int {
	return e.dims
}

// ModelName returns the model identifier.
func (e *StaticEmbedder) ModelName() string {
	return "static-hash"
}

// Available always returns true.
func (e *StaticEmbedder) Available(context.Context) bool {
	return true
}

// Close is a no-op.
func (e *StaticEmbedder) Close() error {
	return nil
}
