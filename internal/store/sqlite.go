package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	ferrors "github.com/fathom-search/fathom/internal/errors"
)

// DocumentStore persists the document corpus in SQLite.
// WAL mode enables concurrent reader access.
type DocumentStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	closed bool
}

// Verify interface implementation at compile time.
var _ Corpus = (*DocumentStore)(nil)

const documentSchema = `
CREATE TABLE IF NOT EXISTS documents (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    content    TEXT NOT NULL,
    embedding  BLOB,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC);
`

// NewDocumentStore opens (or creates) the corpus database at path.
func NewDocumentStore(path string) (*DocumentStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(documentSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DocumentStore{db: db, path: path}, nil
}

// SaveDocument inserts or replaces a document.
func (s *DocumentStore) SaveDocument(ctx context.Context, doc *DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ferrors.CorpusError("store is closed", nil)
	}
	if doc.ID == "" {
		return fmt.Errorf("document id is required")
	}

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (id, title, content, embedding, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.Title, doc.Content, encodeEmbedding(doc.Embedding), createdAt)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", doc.ID, err)
	}

	return nil
}

// GetDocument fetches one document by ID. A missing document surfaces as
// a not-found error.
func (s *DocumentStore) GetDocument(ctx context.Context, id string) (*DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ferrors.CorpusError("store is closed", nil)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, embedding, created_at FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ferrors.NotFoundError(id)
	}
	return doc, err
}

// ListAll returns all documents ordered by recency (newest first).
func (s *DocumentStore) ListAll(ctx context.Context) ([]*DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ferrors.CorpusError("store is closed", nil)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, embedding, created_at FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []*DocumentRecord
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument removes a document by ID.
func (s *DocumentStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ferrors.CorpusError("store is closed", nil)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	return nil
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ferrors.CorpusError("store is closed", nil)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// Close closes the database.
func (s *DocumentStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// scanner abstracts sql.Row and sql.Rows for scanDocument.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*DocumentRecord, error) {
	var doc DocumentRecord
	var embedding []byte

	if err := row.Scan(&doc.ID, &doc.Title, &doc.Content, &embedding, &doc.CreatedAt); err != nil {
		return nil, err
	}

	doc.Embedding = decodeEmbedding(embedding)
	return &doc, nil
}

// encodeEmbedding packs a float32 vector as little-endian bytes.
func encodeEmbedding(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeEmbedding unpacks little-endian bytes to a float32 vector.
func decodeEmbedding(b []byte) []float32 {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
