package embed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the default number of cached embeddings.
const DefaultCacheSize = 1000

// CachedEmbedder wraps an Embedder with an LRU cache keyed by text and
// model name. Repeated queries skip the underlying provider entirely.
type CachedEmbedder struct {
	inner Embedder
	cache *lru.Cache[string, []float32]
}

var _ Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder wraps inner with an LRU cache of the given size.
func NewCachedEmbedder(inner Embedder, size int) (*CachedEmbedder, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, err
	}
	return &CachedEmbedder{inner: inner, cache: cache}, nil
}

// cacheKey hashes the model name and text so long inputs stay cheap to key.
func (e *CachedEmbedder) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(e.inner.ModelName() + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// Embed returns the cached embedding or delegates to the inner embedder.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := e.cacheKey(text)
	if vec, ok := e.cache.Get(key); ok {
		return vec, nil
	}

	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	e.cache.Add(key, vec)
	return vec, nil
}

// EmbedBatch serves cached entries and batches the misses into a single
// call to the inner embedder.
func (e *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string

	for i, t := range texts {
		if vec, ok := e.cache.Get(e.cacheKey(t)); ok {
			vecs[i] = vec
		} else {
			missIdx = append(missIdx, i)
			missTexts = append(missTexts, t)
		}
	}

	if len(missTexts) > 0 {
		fresh, err := e.inner.EmbedBatch(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		for j, i := range missIdx {
			vecs[i] = fresh[j]
			e.cache.Add(e.cacheKey(texts[i]), fresh[j])
		}
	}
	return vecs, nil
}

// Dimensions returns the inner embedder's dimension.
func (e *CachedEmbedder) Dimensions() int {
	return e.inner.Dimensions()
}

// ModelName returns the inner embedder's model identifier.
func (e *CachedEmbedder) ModelName() string {
	return e.inner.ModelName()
}

// Available delegates to the inner embedder.
func (e *CachedEmbedder) Available(ctx context.Context) bool {
	return e.inner.Available(ctx)
}

// Close purges the cache and closes the inner embedder.
func (e *CachedEmbedder) Close() error {
	e.cache.Purge()
	return e.inner.Close()
}
