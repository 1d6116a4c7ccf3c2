package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathom-search/fathom/internal/embed"
	"github.com/fathom-search/fathom/internal/store"
)

type fakeCorpus struct {
	docs []*store.DocumentRecord
	err  error
}

func (f *fakeCorpus) ListAll(context.Context) ([]*store.DocumentRecord, error) {
	return f.docs, f.err
}

type fakeVectorStore struct {
	rows []*store.SimilarityRow
	err  error
}

func (f *fakeVectorStore) SimilarityQuery(context.Context, []float32, float64, int) ([]*store.SimilarityRow, error) {
	return f.rows, f.err
}

func doc(id, title, content string) *store.DocumentRecord {
	return &store.DocumentRecord{ID: id, Title: title, Content: content}
}

func TestSparseRetrieveExactTitleMatch(t *testing.T) {
	corpus := &fakeCorpus{docs: []*store.DocumentRecord{
		doc("1", "causes of climate change", "greenhouse gases trap heat"),
		doc("2", "pasta recipes", "boil water and add salt"),
	}}
	r := NewSparseRetriever(corpus, nil)

	results := r.Retrieve(context.Background(), "climate change", Options{MaxResults: 10})
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].Document.ID)
	assert.Equal(t, KindSparse, results[0].Kind)
	assert.Greater(t, results[0].Similarity, 0.6)
}

func TestSparseRetrieveFuzzyToleratesTypos(t *testing.T) {
	corpus := &fakeCorpus{docs: []*store.DocumentRecord{
		doc("1", "kubernetes networking", "pods and services"),
	}}
	r := NewSparseRetriever(corpus, nil)

	results := r.Retrieve(context.Background(), "kubernets networking", Options{MaxResults: 10})
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].Document.ID)
}

func TestSparseRetrieveRespectsMaxResults(t *testing.T) {
	corpus := &fakeCorpus{docs: []*store.DocumentRecord{
		doc("1", "go concurrency patterns", "channels"),
		doc("2", "go concurrency basics", "goroutines"),
		doc("3", "go concurrency pitfalls", "races"),
	}}
	r := NewSparseRetriever(corpus, nil)

	results := r.Retrieve(context.Background(), "go concurrency", Options{MaxResults: 2})
	assert.Len(t, results, 2)
}

func TestSparseRetrieveDegradesOnCorpusError(t *testing.T) {
	r := NewSparseRetriever(&fakeCorpus{err: errors.New("db locked")}, nil)
	assert.Empty(t, r.Retrieve(context.Background(), "anything here", Options{MaxResults: 5}))
}

func TestSparseRetrieveSkipsShortTokens(t *testing.T) {
	corpus := &fakeCorpus{docs: []*store.DocumentRecord{doc("1", "a", "b")}}
	r := NewSparseRetriever(corpus, nil)

	// Single-character tokens fall under the minimum match length.
	assert.Empty(t, r.Retrieve(context.Background(), "a b", Options{MaxResults: 5}))
}

func TestSparseTokenLengthCountsRunes(t *testing.T) {
	corpus := &fakeCorpus{docs: []*store.DocumentRecord{doc("1", "猫猫", "feline notes")}}
	r := NewSparseRetriever(corpus, nil)

	// A single multi-byte character is still one character, not three bytes.
	assert.Empty(t, r.Retrieve(context.Background(), "猫", Options{MaxResults: 5}))

	results := r.Retrieve(context.Background(), "猫猫", Options{MaxResults: 5})
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].Document.ID)
}

func TestDenseRetrieveMapsRows(t *testing.T) {
	vs := &fakeVectorStore{rows: []*store.SimilarityRow{
		{Document: doc("1", "first", ""), Similarity: 0.92},
		{Document: doc("2", "second", ""), Similarity: 0.71},
	}}
	provider := embed.NewProviderFor(embed.NewStaticEmbedder(8))
	r := NewDenseRetriever(provider, vs, nil)

	results := r.Retrieve(context.Background(), "query", Options{MaxResults: 5, Threshold: 0.6})
	require.Len(t, results, 2)
	assert.Equal(t, KindDense, results[0].Kind)
	assert.Equal(t, 0.92, results[0].Similarity)
	assert.Equal(t, 0.92, results[0].Score)
}

func TestDenseRetrieveDegradesOnStoreError(t *testing.T) {
	vs := &fakeVectorStore{err: errors.New("index corrupt")}
	provider := embed.NewProviderFor(embed.NewStaticEmbedder(8))
	r := NewDenseRetriever(provider, vs, nil)

	assert.Empty(t, r.Retrieve(context.Background(), "query", Options{MaxResults: 5, Threshold: 0.6}))
}

func TestDenseRetrieveDegradesOnEmbedderFailure(t *testing.T) {
	provider := embed.NewProvider(func(context.Context) (embed.Embedder, error) {
		return nil, errors.New("ollama unreachable")
	})
	r := NewDenseRetriever(provider, &fakeVectorStore{}, nil)

	assert.Empty(t, r.Retrieve(context.Background(), "query", Options{MaxResults: 5, Threshold: 0.6}))
}
