// Package hybrid orchestrates dense, sparse and web retrieval into one
// ranked, cited result.
package hybrid

import (
	"github.com/fathom-search/fathom/internal/config"
	"github.com/fathom-search/fathom/internal/retrieval"
	"github.com/fathom-search/fathom/internal/websearch"
)

// MethodKind identifies a retrieval method slot.
type MethodKind string

const (
	MethodDense         MethodKind = "dense"
	MethodSparse        MethodKind = "sparse"
	MethodWebOnly       MethodKind = "web_only"
	MethodHybrid        MethodKind = "hybrid"
	MethodDocumentsOnly MethodKind = "documents_only"
)

// RetrievalMethod declares whether a method runs and with what weight.
// Read-only per request.
type RetrievalMethod struct {
	Kind    MethodKind `json:"kind" yaml:"kind"`
	Enabled bool       `json:"enabled" yaml:"enabled"`
	Weight  float64    `json:"weight" yaml:"weight"`
}

// SearchConfig is the per-request configuration. Zero-valued fields fall
// back to the orchestrator defaults when merged.
type SearchConfig struct {
	Methods             []RetrievalMethod `json:"methods" yaml:"methods"`
	MaxDocuments        int               `json:"max_documents" yaml:"max_documents"`
	MaxWebResults       int               `json:"max_web_results" yaml:"max_web_results"`
	SimilarityThreshold float64           `json:"similarity_threshold" yaml:"similarity_threshold"`
	IncludeNews         bool              `json:"include_news" yaml:"include_news"`
	Location            string            `json:"location" yaml:"location"`
}

// DefaultSearchConfig returns the stock configuration: all three methods
// enabled with weights 0.4 (dense), 0.3 (sparse) and 0.3 (web).
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Methods: []RetrievalMethod{
			{Kind: MethodDense, Enabled: true, Weight: config.DefaultDenseWeight},
			{Kind: MethodSparse, Enabled: true, Weight: config.DefaultSparseWeight},
			{Kind: MethodWebOnly, Enabled: true, Weight: config.DefaultWebWeight},
		},
		MaxDocuments:        config.DefaultMaxDocuments,
		MaxWebResults:       config.DefaultMaxWebResults,
		SimilarityThreshold: config.DefaultSimilarityThreshold,
	}
}

// mergeConfig overlays the caller's partial configuration onto defaults.
// Only the method kinds the caller names are overridden.
func mergeConfig(partial *SearchConfig) SearchConfig {
	merged := DefaultSearchConfig()
	if partial == nil {
		return merged
	}

	for _, m := range partial.Methods {
		replaced := false
		for i := range merged.Methods {
			if merged.Methods[i].Kind == m.Kind {
				merged.Methods[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			merged.Methods = append(merged.Methods, m)
		}
	}

	if partial.MaxDocuments > 0 {
		merged.MaxDocuments = partial.MaxDocuments
	}
	if partial.MaxWebResults > 0 {
		merged.MaxWebResults = partial.MaxWebResults
	}
	if partial.SimilarityThreshold > 0 {
		merged.SimilarityThreshold = partial.SimilarityThreshold
	}
	if partial.IncludeNews {
		merged.IncludeNews = true
	}
	if partial.Location != "" {
		merged.Location = partial.Location
	}
	return merged
}

// method returns the named method record, or a disabled zero record.
func (c SearchConfig) method(kind MethodKind) RetrievalMethod {
	for _, m := range c.Methods {
		if m.Kind == kind {
			return m
		}
	}
	return RetrievalMethod{Kind: kind}
}

// Source is one citation-numbered entry in the assembled source list.
// ID carries the document id for local sources and the web result's
// identifier otherwise.
type Source struct {
	ID               string  `json:"id"`
	Label            string  `json:"label"`
	Title            string  `json:"title"`
	URL              string  `json:"url"`
	Domain           string  `json:"domain"`
	Snippet          string  `json:"snippet"`
	Kind             string  `json:"kind"`
	PublishDate      string  `json:"publish_date,omitempty"`
	CredibilityScore float64 `json:"credibility_score"`
	RelevanceScore   float64 `json:"relevance_score"`
}

// HybridSearchResult is the unified outcome of one orchestrated search.
type HybridSearchResult struct {
	Query           string                      `json:"query"`
	DocumentResults []*retrieval.SearchResult   `json:"document_results"`
	WebResults      []websearch.WebSearchResult `json:"web_results"`
	Sources         []Source                    `json:"sources"`
	RelatedQueries  []string                    `json:"related_queries,omitempty"`
	KnowledgeGraph  *websearch.KnowledgeGraph   `json:"knowledge_graph,omitempty"`
	CombinedScore   float64                     `json:"combined_score"`
	TotalResults    int                         `json:"total_results"`
	SearchTimeMs    int64                       `json:"search_time_ms"`
}

// emptyResult is the orchestrator-level degraded outcome.
func emptyResult(query string, elapsedMs int64) *HybridSearchResult {
	return &HybridSearchResult{
		Query:           query,
		DocumentResults: []*retrieval.SearchResult{},
		WebResults:      []websearch.WebSearchResult{},
		Sources:         []Source{},
		CombinedScore:   0,
		TotalResults:    0,
		SearchTimeMs:    elapsedMs,
	}
}
