// Package errors provides structured error handling for Fathom.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Storage errors (corpus, vector store)
//   - 3XX: Transport errors (provider unreachable, timeouts)
//   - 4XX: Provider errors (explicit error payloads, schema mismatches)
//   - 5XX: Internal errors (embedding, fusion, assembly)
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryStorage indicates corpus and vector store errors.
	CategoryStorage Category = "STORAGE"
	// CategoryTransport indicates network-level failures: the provider
	// could not be reached at all.
	CategoryTransport Category = "TRANSPORT"
	// CategoryProvider indicates the provider answered but reported an
	// explicit error payload or returned an unparseable shape.
	CategoryProvider Category = "PROVIDER"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Storage errors (200-299)
	ErrCodeCorpusUnavailable = "ERR_201_CORPUS_UNAVAILABLE"
	ErrCodeVectorStoreFailed = "ERR_202_VECTOR_STORE_FAILED"
	ErrCodeDimensionMismatch = "ERR_203_DIMENSION_MISMATCH"
	ErrCodeDocumentNotFound  = "ERR_204_DOCUMENT_NOT_FOUND"

	// Transport errors (300-399)
	ErrCodeTransportTimeout     = "ERR_301_TRANSPORT_TIMEOUT"
	ErrCodeTransportUnavailable = "ERR_302_TRANSPORT_UNAVAILABLE"

	// Provider errors (400-499)
	ErrCodeProviderError  = "ERR_401_PROVIDER_ERROR"
	ErrCodeProviderSchema = "ERR_402_PROVIDER_SCHEMA"
	ErrCodeProviderAuth   = "ERR_403_PROVIDER_AUTH"

	// Internal errors (500-599)
	ErrCodeInternal        = "ERR_501_INTERNAL"
	ErrCodeEmbeddingFailed = "ERR_502_EMBEDDING_FAILED"
	ErrCodeOrchestrator    = "ERR_503_ORCHESTRATOR"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryStorage
	case '3':
		return CategoryTransport
	case '4':
		return CategoryProvider
	default:
		return CategoryInternal
	}
}

// severityFromCode derives severity from error code.
// Strategy-level failures degrade rather than abort, so transport and
// provider codes are warnings; config problems are fatal.
func severityFromCode(code string) Severity {
	switch categoryFromCode(code) {
	case CategoryConfig:
		return SeverityFatal
	case CategoryTransport, CategoryProvider:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// isRetryableCode reports whether the operation behind the code may be retried.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeTransportTimeout, ErrCodeTransportUnavailable, ErrCodeProviderError:
		return true
	default:
		return false
	}
}
