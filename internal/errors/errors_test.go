package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryFromCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		category Category
	}{
		{"config", ErrCodeConfigInvalid, CategoryConfig},
		{"storage", ErrCodeVectorStoreFailed, CategoryStorage},
		{"transport", ErrCodeTransportTimeout, CategoryTransport},
		{"provider", ErrCodeProviderError, CategoryProvider},
		{"internal", ErrCodeEmbeddingFailed, CategoryInternal},
		{"short code falls back to internal", "ERR", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "test", nil)
			assert.Equal(t, tt.category, err.Category)
		})
	}
}

func TestError_Format(t *testing.T) {
	err := New(ErrCodeProviderError, "search provider rejected query", nil)
	assert.Equal(t, "[ERR_401_PROVIDER_ERROR] search provider rejected query", err.Error())
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeTransportUnavailable, cause)

	require.NotNil(t, err)
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestIs_MatchesByCode(t *testing.T) {
	a := TransportError("timeout", nil)
	b := TransportError("other timeout", nil)
	c := ProviderError("bad payload", nil)

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(TransportError("timeout", nil)))
	assert.True(t, IsRetryable(ProviderError("temporary", nil)))
	assert.False(t, IsRetryable(OrchestratorError("bug", nil)))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestCategoryOf_UnwrapsChain(t *testing.T) {
	inner := EmbeddingError("model gone", nil)
	outer := fmt.Errorf("dense retrieve: %w", inner)

	assert.Equal(t, CategoryInternal, CategoryOf(outer))
	assert.False(t, IsTransport(outer))
}

func TestTaxonomyHelpers(t *testing.T) {
	assert.True(t, IsTransport(TransportError("down", nil)))
	assert.True(t, IsProvider(SchemaError("missing field", nil)))
	assert.False(t, IsProvider(TransportError("down", nil)))
}

func TestAuthAndStorageConstructors(t *testing.T) {
	auth := AuthError("invalid api key", nil)
	assert.Equal(t, ErrCodeProviderAuth, auth.Code)
	assert.Equal(t, CategoryProvider, auth.Category)
	assert.False(t, auth.Retryable)

	corpus := CorpusError("store is closed", nil)
	assert.Equal(t, ErrCodeCorpusUnavailable, corpus.Code)
	assert.Equal(t, CategoryStorage, corpus.Category)

	nf := NotFoundError("doc-9")
	assert.Equal(t, ErrCodeDocumentNotFound, nf.Code)
	assert.Contains(t, nf.Error(), "doc-9")
}

func TestWithDetail(t *testing.T) {
	err := ProviderError("bad payload", nil).
		WithDetail("provider", "serper").
		WithDetail("status", "500")

	assert.Equal(t, "serper", err.Details["provider"])
	assert.Equal(t, "500", err.Details["status"])
}

func TestSeverity_StrategyFailuresAreWarnings(t *testing.T) {
	assert.Equal(t, SeverityWarning, TransportError("down", nil).Severity)
	assert.Equal(t, SeverityWarning, ProviderError("bad", nil).Severity)
	assert.Equal(t, SeverityFatal, ConfigError("bad yaml", nil).Severity)
	assert.Equal(t, SeverityError, OrchestratorError("bug", nil).Severity)
}
