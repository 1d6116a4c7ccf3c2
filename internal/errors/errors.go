package errors

import (
	"errors"
	"fmt"
)

// FathomError is the structured error type for Fathom.
// It provides rich context for error handling and logging.
type FathomError struct {
	// Code is the unique error code (e.g., "ERR_301_TRANSPORT_TIMEOUT").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Transport, Provider, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool
}

// Error implements the error interface.
func (e *FathomError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *FathomError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with FathomError.
func (e *FathomError) Is(target error) bool {
	if t, ok := target.(*FathomError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *FathomError) WithDetail(key, value string) *FathomError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new FathomError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *FathomError {
	return &FathomError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a FathomError from an existing error.
// The error's message becomes the FathomError message.
func Wrap(code string, err error) *FathomError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// TransportError creates a network-level failure: the provider was
// unreachable or the connection timed out.
func TransportError(message string, cause error) *FathomError {
	return New(ErrCodeTransportUnavailable, message, cause)
}

// ProviderError creates a provider-level failure: the provider answered
// but its response carried an explicit error payload.
func ProviderError(message string, cause error) *FathomError {
	return New(ErrCodeProviderError, message, cause)
}

// SchemaError creates a provider-level failure for a response whose shape
// did not match the expected schema.
func SchemaError(message string, cause error) *FathomError {
	return New(ErrCodeProviderSchema, message, cause)
}

// AuthError creates a provider-level failure for rejected credentials.
func AuthError(message string, cause error) *FathomError {
	return New(ErrCodeProviderAuth, message, cause)
}

// CorpusError creates a storage failure for a corpus that cannot serve
// requests, such as a closed store.
func CorpusError(message string, cause error) *FathomError {
	return New(ErrCodeCorpusUnavailable, message, cause)
}

// NotFoundError creates a storage failure for a missing document.
func NotFoundError(id string) *FathomError {
	return New(ErrCodeDocumentNotFound, "document not found: "+id, nil)
}

// EmbeddingError creates an embedding-generation failure.
func EmbeddingError(message string, cause error) *FathomError {
	return New(ErrCodeEmbeddingFailed, message, cause)
}

// OrchestratorError creates a failure in fusion or assembly logic.
func OrchestratorError(message string, cause error) *FathomError {
	return New(ErrCodeOrchestrator, message, cause)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *FathomError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IsRetryable checks if an error is retryable.
// Returns true if the error chain contains a FathomError with Retryable set.
func IsRetryable(err error) bool {
	var fe *FathomError
	if errors.As(err, &fe) {
		return fe.Retryable
	}
	return false
}

// CategoryOf returns the category of an error, or CategoryInternal when the
// chain contains no FathomError.
func CategoryOf(err error) Category {
	var fe *FathomError
	if errors.As(err, &fe) {
		return fe.Category
	}
	return CategoryInternal
}

// IsTransport reports whether the error chain contains a transport failure.
func IsTransport(err error) bool {
	return CategoryOf(err) == CategoryTransport
}

// IsProvider reports whether the error chain contains a provider failure.
func IsProvider(err error) bool {
	return CategoryOf(err) == CategoryProvider
}
