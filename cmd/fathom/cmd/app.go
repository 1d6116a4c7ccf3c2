package cmd

import (
	"context"
	"log/slog"

	"github.com/fathom-search/fathom/internal/config"
	"github.com/fathom-search/fathom/internal/embed"
	"github.com/fathom-search/fathom/internal/hybrid"
	"github.com/fathom-search/fathom/internal/retrieval"
	"github.com/fathom-search/fathom/internal/store"
	"github.com/fathom-search/fathom/internal/websearch"
)

// app wires the storage, embedding and retrieval layers for one command
// invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	cleanup  func()
	docs     *store.DocumentStore
	index    *store.HNSWIndex
	vectors  *store.IndexedVectorStore
	provider *embed.Provider
	engine   *hybrid.Orchestrator
}

// newApp loads config, opens storage, rebuilds the in-memory vector
// index from stored embeddings and assembles the orchestrator.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, cleanup, err := setupLogging(cfg)
	if err != nil {
		return nil, err
	}

	path, err := dbPath(cfg)
	if err != nil {
		cleanup()
		return nil, err
	}

	docs, err := store.NewDocumentStore(path)
	if err != nil {
		cleanup()
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		cleanup:  cleanup,
		docs:     docs,
		provider: embed.NewLazyProvider(cfg, logger),
	}

	if err := a.rebuildIndex(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.engine = hybrid.NewOrchestrator(
		a.denseRetriever(),
		retrieval.NewSparseRetriever(docs, logger),
		a.webClient(),
		logger,
	)
	return a, nil
}

// rebuildIndex loads every stored embedding into a fresh HNSW index. An
// empty corpus leaves the index unset until the first document arrives.
func (a *app) rebuildIndex(ctx context.Context) error {
	records, err := a.docs.ListAll(ctx)
	if err != nil {
		return err
	}

	var ids []string
	var vectors [][]float32
	for _, rec := range records {
		if len(rec.Embedding) == 0 {
			continue
		}
		ids = append(ids, rec.ID)
		vectors = append(vectors, rec.Embedding)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := a.ensureIndex(len(vectors[0])); err != nil {
		return err
	}
	if err := a.index.Add(ctx, ids, vectors); err != nil {
		return err
	}

	a.logger.Debug("vector index rebuilt", "documents", len(ids))
	return nil
}

// ensureIndex creates the HNSW index on first use, sized to the
// embedding dimension actually observed.
func (a *app) ensureIndex(dims int) error {
	if a.index != nil {
		return nil
	}
	index, err := store.NewHNSWIndex(store.HNSWConfig{Dimensions: dims})
	if err != nil {
		return err
	}
	a.index = index
	a.vectors = store.NewIndexedVectorStore(index, a.docs)
	return nil
}

// denseRetriever returns nil when no vector index exists yet, which
// disables the dense strategy for this invocation.
func (a *app) denseRetriever() retrieval.Retriever {
	if a.vectors == nil {
		return nil
	}
	return retrieval.NewDenseRetriever(a.provider, a.vectors, a.logger)
}

// webClient returns nil when no API key is configured, disabling the web
// strategy.
func (a *app) webClient() hybrid.WebSearcher {
	apiKey := a.cfg.WebSearchAPIKey()
	if apiKey == "" {
		a.logger.Debug("web search disabled, no api key configured",
			"env", a.cfg.WebSearch.APIKeyEnv)
		return nil
	}
	return websearch.NewClient(websearch.ClientConfig{
		Endpoint: a.cfg.WebSearch.Endpoint,
		APIKey:   apiKey,
		Timeout:  a.cfg.WebSearch.Timeout,
	}, a.logger)
}

// Close releases storage and logging resources.
func (a *app) Close() {
	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			a.logger.Warn("failed to close embedder", "error", err)
		}
	}
	if a.index != nil {
		_ = a.index.Close()
	}
	if a.docs != nil {
		if err := a.docs.Close(); err != nil {
			a.logger.Warn("failed to close document store", "error", err)
		}
	}
	if a.cleanup != nil {
		a.cleanup()
	}
}
