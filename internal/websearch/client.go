package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	ferrors "github.com/fathom-search/fathom/internal/errors"
)

// Client defaults.
const (
	// DefaultTimeout bounds a single provider call. No retry is performed.
	DefaultTimeout = 10 * time.Second

	// maxRelatedQueries caps the related-query suggestions returned.
	maxRelatedQueries = 5
)

// ClientConfig configures the web search client.
type ClientConfig struct {
	// Endpoint is the provider's web search URL.
	Endpoint string

	// APIKey authenticates requests.
	APIKey string

	// Timeout bounds each provider call (default: 10s).
	Timeout time.Duration
}

// Client calls the external search provider and scores its results.
type Client struct {
	http     *http.Client
	endpoint string
	apiKey   string
	logger   *slog.Logger
}

// NewClient creates a web search client.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:     &http.Client{Timeout: cfg.Timeout},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		logger:   logger.With("component", "websearch"),
	}
}

// Search runs a web query (and optionally a news query), scores and ranks
// the merged results, and truncates to opts.MaxResults.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	start := time.Now()

	primary, err := c.call(ctx, c.endpoint, query, opts)
	if err != nil {
		return nil, err
	}

	results := mapOrganic(query, primary.Organic)
	if primary.AnswerBox != nil {
		results = append(results, mapAnswerBox(query, primary.AnswerBox))
	}
	if primary.KnowledgeGraph != nil {
		results = append(results, mapKnowledgeGraphResult(query, primary.KnowledgeGraph))
	}

	if opts.IncludeNews {
		news, newsErr := c.call(ctx, c.newsEndpoint(), query, opts)
		if newsErr != nil {
			// News is best-effort; the primary results stand on their own.
			c.logger.Warn("news query failed", "query", query, "error", newsErr)
		} else {
			results = append(results, mapNews(query, news.News)...)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return rankingScore(results[i]) > rankingScore(results[j])
	})

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	resp := &SearchResponse{
		Results:        results,
		TotalResults:   totalResults(primary, len(results)),
		SearchTimeMs:   time.Since(start).Milliseconds(),
		RelatedQueries: relatedQueries(primary.RelatedSearches),
	}
	if primary.KnowledgeGraph != nil {
		resp.KnowledgeGraph = &KnowledgeGraph{
			Title:       primary.KnowledgeGraph.Title,
			Type:        primary.KnowledgeGraph.Type,
			Description: primary.KnowledgeGraph.Description,
			Website:     primary.KnowledgeGraph.Website,
			Attributes:  primary.KnowledgeGraph.Attributes,
		}
	}
	return resp, nil
}

// SearchWithFallback wraps Search and degrades any failure to the
// canonical empty response. This is the only failure contract callers
// may rely on.
func (c *Client) SearchWithFallback(ctx context.Context, query string, opts SearchOptions) *SearchResponse {
	resp, err := c.Search(ctx, query, opts)
	if err != nil {
		c.logger.Warn("web search degraded to empty response", "query", query, "error", err)
		return EmptyResponse()
	}
	return resp
}

// call performs one provider request against the given endpoint.
func (c *Client) call(ctx context.Context, endpoint, query string, opts SearchOptions) (*providerResponse, error) {
	body, err := json.Marshal(providerRequest{
		Query:    query,
		Location: opts.Location,
		Num:      opts.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ferrors.TransportError("search provider unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ferrors.TransportError("failed to read provider response", err)
	}

	var parsed providerResponse
	if jsonErr := json.Unmarshal(data, &parsed); jsonErr != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, statusError(resp.StatusCode, "")
		}
		return nil, ferrors.SchemaError("provider response is not valid JSON", jsonErr)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, parsed.Message)
	}

	// An error payload is a provider error even on a 200.
	if parsed.Message != "" {
		return nil, ferrors.ProviderError("provider error: "+parsed.Message, nil)
	}

	return &parsed, nil
}

// statusError classifies a non-200 provider status, keeping any in-band
// message the payload carried. Rejected credentials get their own code.
func statusError(status int, message string) error {
	if message == "" {
		message = fmt.Sprintf("provider returned status %d", status)
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return ferrors.AuthError(message, nil)
	}
	return ferrors.ProviderError(message, nil)
}

// newsEndpoint derives the provider's news URL from the search endpoint.
func (c *Client) newsEndpoint() string {
	if strings.HasSuffix(c.endpoint, "/search") {
		return strings.TrimSuffix(c.endpoint, "/search") + "/news"
	}
	return strings.TrimRight(c.endpoint, "/") + "/news"
}

func mapOrganic(query string, items []providerOrganic) []WebSearchResult {
	results := make([]WebSearchResult, 0, len(items))
	for i, item := range items {
		domain := domainOf(item.Link)
		position := item.Position
		if position == 0 {
			position = i + 1
		}
		results = append(results, WebSearchResult{
			ID:               resultID(item.Link, KindOrganic, position),
			Title:            item.Title,
			URL:              item.Link,
			Domain:           domain,
			Snippet:          item.Snippet,
			PublishDate:      item.Date,
			Position:         position,
			Kind:             KindOrganic,
			CredibilityScore: CredibilityScore(domain, KindOrganic),
			RelevanceScore:   RelevanceScore(query, item.Title, item.Snippet, KindOrganic),
		})
	}
	return results
}

func mapNews(query string, items []providerNews) []WebSearchResult {
	results := make([]WebSearchResult, 0, len(items))
	for i, item := range items {
		domain := domainOf(item.Link)
		results = append(results, WebSearchResult{
			ID:               resultID(item.Link, KindNews, i+1),
			Title:            item.Title,
			URL:              item.Link,
			Domain:           domain,
			Snippet:          item.Snippet,
			PublishDate:      item.Date,
			Position:         i + 1,
			Kind:             KindNews,
			CredibilityScore: CredibilityScore(domain, KindNews),
			RelevanceScore:   RelevanceScore(query, item.Title, item.Snippet, KindNews),
		})
	}
	return results
}

func mapAnswerBox(query string, box *providerAnswerBox) WebSearchResult {
	snippet := box.Answer
	if snippet == "" {
		snippet = box.Snippet
	}
	domain := domainOf(box.Link)
	return WebSearchResult{
		ID:               resultID(box.Link, KindAnswerBox, 1),
		Title:            box.Title,
		URL:              box.Link,
		Domain:           domain,
		Snippet:          snippet,
		Position:         1,
		Kind:             KindAnswerBox,
		CredibilityScore: CredibilityScore(domain, KindAnswerBox),
		RelevanceScore:   RelevanceScore(query, box.Title, snippet, KindAnswerBox),
	}
}

func mapKnowledgeGraphResult(query string, kg *providerKnowledgeGraph) WebSearchResult {
	domain := domainOf(kg.Website)
	return WebSearchResult{
		ID:               resultID(kg.Website, KindKnowledgeGraph, 1),
		Title:            kg.Title,
		URL:              kg.Website,
		Domain:           domain,
		Snippet:          kg.Description,
		Position:         1,
		Kind:             KindKnowledgeGraph,
		CredibilityScore: CredibilityScore(domain, KindKnowledgeGraph),
		RelevanceScore:   RelevanceScore(query, kg.Title, kg.Description, KindKnowledgeGraph),
	}
}

// resultID derives a stable identifier for a result: its URL when the
// provider gave one, otherwise its kind and position.
func resultID(url string, kind ResultKind, position int) string {
	if url != "" {
		return url
	}
	return fmt.Sprintf("%s-%d", kind, position)
}

func relatedQueries(items []providerRelated) []string {
	queries := make([]string, 0, maxRelatedQueries)
	for _, item := range items {
		if item.Query == "" {
			continue
		}
		queries = append(queries, item.Query)
		if len(queries) == maxRelatedQueries {
			break
		}
	}
	return queries
}

// totalResults prefers provider metadata, falling back to the count of
// results actually returned.
func totalResults(resp *providerResponse, returned int) int64 {
	if resp.SearchInfo != nil && resp.SearchInfo.TotalResults > 0 {
		return resp.SearchInfo.TotalResults
	}
	return int64(returned)
}
