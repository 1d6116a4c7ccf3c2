package hybrid

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	ferrors "github.com/fathom-search/fathom/internal/errors"
	"github.com/fathom-search/fathom/internal/retrieval"
	"github.com/fathom-search/fathom/internal/websearch"
)

// WebSearcher is the web client surface the orchestrator depends on.
type WebSearcher interface {
	SearchWithFallback(ctx context.Context, query string, opts websearch.SearchOptions) *websearch.SearchResponse
}

// Orchestrator runs the enabled retrieval strategies concurrently, fuses
// document scores and assembles cited sources. Search never returns an
// error: strategy failures degrade to empty contributions and an
// orchestrator-level fault degrades the whole call to an empty result.
type Orchestrator struct {
	dense  retrieval.Retriever
	sparse retrieval.Retriever
	web    WebSearcher
	logger *slog.Logger
}

// NewOrchestrator wires the three strategies together. Any collaborator
// may be nil, which disables its method regardless of configuration.
func NewOrchestrator(dense, sparse retrieval.Retriever, web WebSearcher, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		dense:  dense,
		sparse: sparse,
		web:    web,
		logger: logger.With("component", "hybrid"),
	}
}

// Search runs one hybrid search. partial overlays the default
// configuration; pass nil for stock behavior.
func (o *Orchestrator) Search(ctx context.Context, query string, partial *SearchConfig) (result *HybridSearchResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := ferrors.OrchestratorError(fmt.Sprintf("search panicked: %v", r), nil)
			o.logger.Error("orchestrator fault, returning empty result",
				"query", query, "error", err)
			result = emptyResult(query, time.Since(start).Milliseconds())
		}
	}()

	cfg := mergeConfig(partial)

	denseMethod := cfg.method(MethodDense)
	sparseMethod := cfg.method(MethodSparse)
	webMethod := cfg.method(MethodWebOnly)

	denseEnabled := denseMethod.Enabled && o.dense != nil
	sparseEnabled := sparseMethod.Enabled && o.sparse != nil
	webEnabled := webMethod.Enabled && o.web != nil

	var (
		denseResults  []*retrieval.SearchResult
		sparseResults []*retrieval.SearchResult
		webResponse   *websearch.SearchResponse
	)

	// Settle-all join: every branch runs to completion and a failing
	// branch only empties its own slot. No cross-strategy cancellation.
	retrievalOpts := retrieval.Options{
		MaxResults: cfg.MaxDocuments,
		Threshold:  cfg.SimilarityThreshold,
	}

	var g errgroup.Group
	if denseEnabled {
		g.Go(func() error {
			denseResults = o.runDocumentStrategy(ctx, "dense", o.dense, query, retrievalOpts)
			return nil
		})
	}
	if sparseEnabled {
		g.Go(func() error {
			sparseResults = o.runDocumentStrategy(ctx, "sparse", o.sparse, query, retrievalOpts)
			return nil
		})
	}
	if webEnabled {
		g.Go(func() error {
			webResponse = o.runWebStrategy(ctx, query, websearch.SearchOptions{
				IncludeNews: cfg.IncludeNews,
				Location:    cfg.Location,
				MaxResults:  cfg.MaxWebResults,
			})
			return nil
		})
	}
	_ = g.Wait()

	documentResults := fuseDocuments(denseResults, sparseResults,
		denseEnabled, sparseEnabled, denseMethod.Weight, sparseMethod.Weight)
	if len(documentResults) > cfg.MaxDocuments {
		documentResults = documentResults[:cfg.MaxDocuments]
	}

	var webResults []websearch.WebSearchResult
	var relatedQueries []string
	var knowledgeGraph *websearch.KnowledgeGraph
	if webResponse != nil {
		webResults = webResponse.Results
		relatedQueries = webResponse.RelatedQueries
		knowledgeGraph = webResponse.KnowledgeGraph
	}
	if len(webResults) > cfg.MaxWebResults {
		webResults = webResults[:cfg.MaxWebResults]
	}

	sources := documentsToSources(documentResults)
	sources = append(sources, webResultsToSources(webResults, len(sources))...)

	result = &HybridSearchResult{
		Query:           query,
		DocumentResults: documentResults,
		WebResults:      webResults,
		Sources:         sources,
		RelatedQueries:  relatedQueries,
		KnowledgeGraph:  knowledgeGraph,
		CombinedScore:   combinedScore(documentResults, webResults),
		TotalResults:    len(documentResults) + len(webResults),
		SearchTimeMs:    time.Since(start).Milliseconds(),
	}

	o.logger.Debug("hybrid search complete",
		"query", query,
		"documents", len(documentResults),
		"web", len(webResults),
		"combined_score", result.CombinedScore,
		"elapsed_ms", result.SearchTimeMs)
	return result
}

// SearchDocuments searches local documents only, with fusion weights
// fixed to 0.6 (dense) and 0.4 (sparse).
func (o *Orchestrator) SearchDocuments(ctx context.Context, query string, maxResults int) *HybridSearchResult {
	return o.Search(ctx, query, &SearchConfig{
		Methods: []RetrievalMethod{
			{Kind: MethodDense, Enabled: true, Weight: retrieval.DefaultFusionDenseWeight},
			{Kind: MethodSparse, Enabled: true, Weight: retrieval.DefaultFusionSparseWeight},
			{Kind: MethodWebOnly, Enabled: false},
		},
		MaxDocuments: maxResults,
	})
}

// SearchWeb searches the web only.
func (o *Orchestrator) SearchWeb(ctx context.Context, query string, maxResults int) *HybridSearchResult {
	return o.Search(ctx, query, &SearchConfig{
		Methods: []RetrievalMethod{
			{Kind: MethodDense, Enabled: false},
			{Kind: MethodSparse, Enabled: false},
			{Kind: MethodWebOnly, Enabled: true, Weight: 1.0},
		},
		MaxWebResults: maxResults,
	})
}

// runDocumentStrategy invokes one retriever, converting a panic into an
// empty contribution. The adapters already degrade internally; this is
// the orchestration layer's own line of defense.
func (o *Orchestrator) runDocumentStrategy(ctx context.Context, name string, r retrieval.Retriever, query string, opts retrieval.Options) (results []*retrieval.SearchResult) {
	defer func() {
		if rec := recover(); rec != nil {
			o.logger.Warn("retrieval strategy fault", "strategy", name, "panic", rec)
			results = nil
		}
	}()
	return r.Retrieve(ctx, query, opts)
}

func (o *Orchestrator) runWebStrategy(ctx context.Context, query string, opts websearch.SearchOptions) (resp *websearch.SearchResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			o.logger.Warn("web strategy fault", "panic", rec)
			resp = websearch.EmptyResponse()
		}
	}()
	return o.web.SearchWithFallback(ctx, query, opts)
}

// fuseDocuments applies the fusion rule: both document strategies
// enabled fuses via weighted sum, a single enabled strategy passes its
// results through unfused, neither yields nothing.
func fuseDocuments(dense, sparse []*retrieval.SearchResult, denseEnabled, sparseEnabled bool, denseWeight, sparseWeight float64) []*retrieval.SearchResult {
	switch {
	case denseEnabled && sparseEnabled:
		if denseWeight == 0 {
			denseWeight = retrieval.DefaultFusionDenseWeight
		}
		if sparseWeight == 0 {
			sparseWeight = retrieval.DefaultFusionSparseWeight
		}
		return retrieval.CombineResults(dense, sparse, denseWeight, sparseWeight)
	case denseEnabled:
		return dense
	case sparseEnabled:
		return sparse
	default:
		return nil
	}
}

// combinedScore averages the document and web mean scores. Each mean is
// computed over its own list only and contributes 0 when empty; the two
// terms weigh equally regardless of list sizes.
func combinedScore(docs []*retrieval.SearchResult, web []websearch.WebSearchResult) float64 {
	var docMean float64
	if len(docs) > 0 {
		for _, d := range docs {
			docMean += d.Score
		}
		docMean /= float64(len(docs))
	}

	var webMean float64
	if len(web) > 0 {
		for _, w := range web {
			webMean += 0.6*w.RelevanceScore + 0.4*w.CredibilityScore
		}
		webMean /= float64(len(web))
	}

	return (docMean + webMean) / 2
}
