package model

// Error codes shared across the client, the orchestrator and the HTTP edge.
// MOCK_DATA is a soft marker: the operation succeeded, but only via the
// fallback store. Everything else identifies a hard failure class.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeNetworkError = "NETWORK_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
	CodeMockData     = "MOCK_DATA"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Source records which terminal branch produced a result: the live upstream
// or the local fallback. Hard failures reach neither and carry no source.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Result is the internal call-site envelope. Data is non-nil unless the
// error is a hard failure; when both are set, Err is either the preserved
// upstream error or the MOCK_DATA marker and Source is SourceFallback.
type Result[T any] struct {
	Data   *T
	Err    *APIError
	Source Source
}

// OK wraps a live upstream value.
func OK[T any](v T) Result[T] {
	return Result[T]{Data: &v, Source: SourceLive}
}

// Fail builds a hard failure with no data.
func Fail[T any](code, message string) Result[T] {
	return Result[T]{Err: &APIError{Code: code, Message: message}}
}

// Degraded reports whether the value was synthesized by the fallback store.
func (r Result[T]) Degraded() bool {
	return r.Source == SourceFallback
}
