package embed

import (
	"context"
	"sync"

	ferrors "github.com/fathom-search/fathom/internal/errors"
)

// Provider hands out a shared Embedder, constructing it on first use.
// Construction runs at most once even under concurrent callers; a failed
// construction is returned to every caller rather than retried.
type Provider struct {
	build func(ctx context.Context) (Embedder, error)

	once     sync.Once
	embedder Embedder
	err      error
}

// NewProvider creates a lazy provider around the given constructor.
func NewProvider(build func(ctx context.Context) (Embedder, error)) *Provider {
	return &Provider{build: build}
}

// NewProviderFor wraps an already-constructed embedder.
func NewProviderFor(e Embedder) *Provider {
	return NewProvider(func(context.Context) (Embedder, error) { return e, nil })
}

// Get returns the shared embedder, constructing it on first call.
func (p *Provider) Get(ctx context.Context) (Embedder, error) {
	p.once.Do(func() {
		if p.build == nil {
			p.err = ferrors.ConfigError("no embedder constructor configured", nil)
			return
		}
		p.embedder, p.err = p.build(ctx)
	})
	return p.embedder, p.err
}

// Close closes the embedder if it was ever constructed.
func (p *Provider) Close() error {
	initialized := false
	p.once.Do(func() {
		// Never constructed. Mark the once consumed so a later Get
		// does not build an embedder nobody will close.
		p.err = ferrors.ConfigError("embedding provider closed before use", nil)
	})
	if p.embedder != nil {
		initialized = true
	}
	if !initialized {
		return nil
	}
	return p.embedder.Close()
}
