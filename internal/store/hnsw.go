package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/coder/hnsw"
)

// HNSWConfig configures the HNSW vector index.
type HNSWConfig struct {
	// Dimensions is the embedding dimension. Required.
	Dimensions int

	// Metric is the distance metric: "cos" (default) or "l2".
	Metric string

	// M is the maximum number of graph neighbors per node.
	M int

	// EfSearch controls search-time candidate list size.
	EfSearch int
}

// vectorHit is one nearest-neighbor match from the index.
type vectorHit struct {
	ID    string
	Score float64
}

// HNSWIndex is an in-process vector index built on coder/hnsw.
// It maps string document IDs to internal uint64 graph keys.
type HNSWIndex struct {
	mu     sync.RWMutex
	graph  *hnsw.Graph[uint64]
	config HNSWConfig

	idMap   map[string]uint64 // document ID -> internal key
	keyMap  map[uint64]string // internal key -> document ID
	nextKey uint64

	closed bool
}

// NewHNSWIndex creates a new HNSW vector index.
func NewHNSWIndex(cfg HNSWConfig) (*HNSWIndex, error) {
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive, got %d", cfg.Dimensions)
	}
	if cfg.Metric == "" {
		cfg.Metric = "cos"
	}
	if cfg.M == 0 {
		cfg.M = 16
	}
	if cfg.EfSearch == 0 {
		cfg.EfSearch = 20
	}

	graph := hnsw.NewGraph[uint64]()

	switch cfg.Metric {
	case "l2":
		graph.Distance = hnsw.EuclideanDistance
	default:
		graph.Distance = hnsw.CosineDistance
	}

	graph.M = cfg.M
	graph.EfSearch = cfg.EfSearch
	graph.Ml = 0.25

	return &HNSWIndex{
		graph:  graph,
		config: cfg,
		idMap:  make(map[string]uint64),
		keyMap: make(map[uint64]string),
	}, nil
}

// Add inserts vectors with their document IDs.
// An existing ID is updated via lazy deletion of the old node.
func (s *HNSWIndex) Add(ctx context.Context, ids []string, vectors [][]float32) error {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) != len(vectors) {
		return fmt.Errorf("ids and vectors length mismatch: %d vs %d", len(ids), len(vectors))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("index is closed")
	}

	for _, v := range vectors {
		if len(v) != s.config.Dimensions {
			return ErrDimensionMismatch{Expected: s.config.Dimensions, Got: len(v)}
		}
	}

	for i, id := range ids {
		// Lazy deletion: orphan the old graph node rather than removing it.
		// Deleting the last node breaks the coder/hnsw graph.
		if existingKey, exists := s.idMap[id]; exists {
			delete(s.keyMap, existingKey)
			delete(s.idMap, id)
		}

		key := s.nextKey
		s.nextKey++

		vec := make([]float32, len(vectors[i]))
		copy(vec, vectors[i])
		if s.config.Metric == "cos" {
			normalizeVectorInPlace(vec)
		}

		s.graph.Add(hnsw.MakeNode(key, vec))

		s.idMap[id] = key
		s.keyMap[key] = id
	}

	return nil
}

// Search finds the k nearest neighbors to the query vector.
func (s *HNSWIndex) Search(ctx context.Context, query []float32, k int) ([]vectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, fmt.Errorf("index is closed")
	}
	if len(query) != s.config.Dimensions {
		return nil, ErrDimensionMismatch{Expected: s.config.Dimensions, Got: len(query)}
	}
	if s.graph.Len() == 0 {
		return []vectorHit{}, nil
	}

	normalized := make([]float32, len(query))
	copy(normalized, query)
	if s.config.Metric == "cos" {
		normalizeVectorInPlace(normalized)
	}

	nodes := s.graph.Search(normalized, k)

	hits := make([]vectorHit, 0, len(nodes))
	for _, node := range nodes {
		id, exists := s.keyMap[node.Key]
		if !exists {
			continue // lazy-deleted orphan
		}

		distance := s.graph.Distance(normalized, node.Value)
		hits = append(hits, vectorHit{
			ID:    id,
			Score: distanceToScore(distance, s.config.Metric),
		})
	}

	return hits, nil
}

// Delete removes vectors by document ID via lazy deletion.
func (s *HNSWIndex) Delete(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("index is closed")
	}

	for _, id := range ids {
		if key, exists := s.idMap[id]; exists {
			delete(s.keyMap, key)
			delete(s.idMap, id)
		}
	}

	return nil
}

// Count returns the number of active vectors.
func (s *HNSWIndex) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0
	}
	return len(s.idMap)
}

// Close marks the index closed.
func (s *HNSWIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
