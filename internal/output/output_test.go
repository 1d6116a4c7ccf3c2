package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fathom-search/fathom/internal/hybrid"
	"github.com/fathom-search/fathom/internal/retrieval"
	"github.com/fathom-search/fathom/internal/store"
	"github.com/fathom-search/fathom/internal/websearch"
)

func TestResultEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlain(&buf)

	w.Result(&hybrid.HybridSearchResult{Query: "nothing", SearchTimeMs: 12})

	assert.Contains(t, buf.String(), `no results for "nothing"`)
	assert.Contains(t, buf.String(), "12ms")
}

func TestResultRendersAllSections(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlain(&buf)

	w.Result(&hybrid.HybridSearchResult{
		Query: "go concurrency",
		DocumentResults: []*retrieval.SearchResult{
			{
				Document: &store.DocumentRecord{ID: "1", Title: "Concurrency Patterns"},
				Score:    0.74,
				Kind:     retrieval.KindHybrid,
			},
		},
		WebResults: []websearch.WebSearchResult{
			{Title: "Go Blog", Domain: "go.dev", RelevanceScore: 0.9, CredibilityScore: 0.5},
		},
		Sources: []hybrid.Source{
			{Label: "[1] Concurrency Patterns", URL: "fathom://document/1"},
			{Label: "[2] Go Blog - go.dev", URL: "https://go.dev/blog"},
		},
		RelatedQueries: []string{"goroutines", "channels"},
		CombinedScore:  0.71,
		TotalResults:   2,
		SearchTimeMs:   42,
	})

	out := buf.String()
	assert.Contains(t, out, "2 results in 42ms")
	assert.Contains(t, out, "Concurrency Patterns")
	assert.Contains(t, out, "(score 0.740, hybrid)")
	assert.Contains(t, out, "go.dev")
	assert.Contains(t, out, "[1] Concurrency Patterns")
	assert.Contains(t, out, "[2] Go Blog - go.dev")
	assert.Contains(t, out, "related: goroutines, channels")

	// Plain writers emit no ANSI escapes.
	assert.NotContains(t, out, "\033[")
}

func TestResultKnowledgeGraph(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlain(&buf)

	w.Result(&hybrid.HybridSearchResult{
		Query:          "marie curie",
		KnowledgeGraph: &websearch.KnowledgeGraph{Title: "Marie Curie", Type: "Physicist", Description: "Radioactivity pioneer"},
		TotalResults:   1,
		WebResults: []websearch.WebSearchResult{
			{Title: "Biography", Domain: "example.com"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Marie Curie (Physicist)")
	assert.Contains(t, out, "Radioactivity pioneer")
}

func TestSuccessAndError(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlain(&buf)

	w.Success("stored %d documents", 3)
	w.Error("bad flag %q", "x")

	assert.Contains(t, buf.String(), "ok stored 3 documents")
	assert.Contains(t, buf.String(), `error: bad flag "x"`)
}
