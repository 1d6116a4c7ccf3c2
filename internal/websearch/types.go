// Package websearch wraps an external search provider behind a typed
// client with deterministic credibility and relevance scoring.
package websearch

// ResultKind labels the provider category a result came from.
type ResultKind string

const (
	KindOrganic        ResultKind = "organic"
	KindNews           ResultKind = "news"
	KindAnswerBox      ResultKind = "answer_box"
	KindKnowledgeGraph ResultKind = "knowledge_graph"
)

// WebSearchResult is one scored result in the unified shape, regardless
// of provider category. ID is the result's URL when the provider gave
// one, otherwise derived from its kind and position.
type WebSearchResult struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Domain      string     `json:"domain"`
	Snippet     string     `json:"snippet"`
	PublishDate string     `json:"publish_date,omitempty"`
	Position    int        `json:"position"`
	Kind        ResultKind `json:"kind"`

	// CredibilityScore is domain-derived, in [0,1].
	CredibilityScore float64 `json:"credibility_score"`

	// RelevanceScore is query-token-derived, clamped to [0,1].
	RelevanceScore float64 `json:"relevance_score"`
}

// KnowledgeGraph is the provider's entity panel, when present.
type KnowledgeGraph struct {
	Title       string            `json:"title"`
	Type        string            `json:"type,omitempty"`
	Description string            `json:"description,omitempty"`
	Website     string            `json:"website,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// SearchResponse is the client's unified response.
type SearchResponse struct {
	Results        []WebSearchResult `json:"results"`
	TotalResults   int64             `json:"total_results"`
	SearchTimeMs   int64             `json:"search_time_ms"`
	RelatedQueries []string          `json:"related_queries"`
	KnowledgeGraph *KnowledgeGraph   `json:"knowledge_graph,omitempty"`
}

// EmptyResponse is the canonical degraded response returned by
// SearchWithFallback when the provider cannot be reached.
func EmptyResponse() *SearchResponse {
	return &SearchResponse{
		Results:        []WebSearchResult{},
		TotalResults:   0,
		SearchTimeMs:   0,
		RelatedQueries: []string{},
	}
}

// SearchOptions tune one search call.
type SearchOptions struct {
	// IncludeNews issues a secondary news query alongside the web query.
	IncludeNews bool

	// Location is an optional geographic hint for the provider.
	Location string

	// MaxResults truncates the scored result list (0 = provider default).
	MaxResults int
}

// Provider wire schema. Every field the client reads is declared here;
// shape mismatches surface as provider errors instead of silent absence.

type providerRequest struct {
	Query    string `json:"q"`
	Location string `json:"location,omitempty"`
	Num      int    `json:"num,omitempty"`
}

type providerOrganic struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Date     string `json:"date,omitempty"`
	Position int    `json:"position"`
}

type providerNews struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date,omitempty"`
	Source  string `json:"source,omitempty"`
}

type providerAnswerBox struct {
	Title   string `json:"title"`
	Answer  string `json:"answer"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type providerKnowledgeGraph struct {
	Title       string            `json:"title"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Website     string            `json:"website"`
	Attributes  map[string]string `json:"attributes"`
}

type providerRelated struct {
	Query string `json:"query"`
}

type providerSearchInfo struct {
	TotalResults int64 `json:"totalResults"`
}

type providerResponse struct {
	Organic         []providerOrganic       `json:"organic"`
	News            []providerNews          `json:"news"`
	AnswerBox       *providerAnswerBox      `json:"answerBox"`
	KnowledgeGraph  *providerKnowledgeGraph `json:"knowledgeGraph"`
	RelatedSearches []providerRelated       `json:"relatedSearches"`
	SearchInfo      *providerSearchInfo     `json:"searchInformation"`

	// Message carries the provider's in-band error payload.
	Message string `json:"message"`
}
