package aiclient

import (
	"errors"
	"fmt"
)

// Kind categorizes a structured error.
type Kind string

const (
	// KindLLM is the root category for any LLM-related failure that does
	// not fit a more specific kind (e.g. an unsupported backend name).
	KindLLM Kind = "llm"
	// KindAPIKeyMissing means the credential for the selected backend is
	// absent. Fatal to the call, never retried.
	KindAPIKeyMissing Kind = "api_key_missing"
	// KindResponse means the provider call failed or returned something
	// that could not be parsed as a response at all.
	KindResponse Kind = "response"
	// KindContentFormat means the response text violated the expected
	// formatting contract (zero or multiple code blocks, or a block that
	// stripped to nothing).
	KindContentFormat Kind = "content_format"
)

// Stable error codes, usable for programmatic matching across versions.
const (
	CodeAPIKeyMissing      = "LLM_API_KEY_MISSING"
	CodeAPIRequestFailed   = "LLM_API_REQUEST_FAILED"
	CodeResponseParse      = "LLM_RESPONSE_PARSE_ERROR"
	CodeContentMultiBlock  = "LLM_CONTENT_MULTIBLOCK"
	CodeContentStrip       = "LLM_CONTENT_STRIP_ERROR"
	CodeUnsupportedBackend = "LLM_UNSUPPORTED_BACKEND"
)

// Error is the structured error used throughout the module. It carries a
// stable code, a human-readable message, optional context metadata, and an
// optional wrapped cause. Errors are constructed at the failure site and
// never mutated afterwards.
type Error struct {
	Kind     Kind
	Code     string
	Message  string
	Metadata map[string]any
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a structured error of an arbitrary kind.
func NewError(kind Kind, code, message string, metadata map[string]any, cause error) *Error {
	return &Error{
		Kind:     kind,
		Code:     code,
		Message:  message,
		Metadata: metadata,
		Cause:    cause,
	}
}

// NewAPIKeyMissingError reports an absent credential for a backend.
func NewAPIKeyMissingError(message string, metadata map[string]any) *Error {
	return NewError(KindAPIKeyMissing, CodeAPIKeyMissing, message, metadata, nil)
}

// NewResponseError reports a failed provider call or an unparseable
// provider response, wrapping the original error as cause.
func NewResponseError(code, message string, metadata map[string]any, cause error) *Error {
	return NewError(KindResponse, code, message, metadata, cause)
}

// NewContentFormatError reports a formatting contract violation in
// otherwise well-received response text.
func NewContentFormatError(code, message string, metadata map[string]any) *Error {
	return NewError(KindContentFormat, code, message, metadata, nil)
}

// IsAPIKeyMissing checks whether err is a missing-credential error.
func IsAPIKeyMissing(err error) bool {
	return errorKind(err) == KindAPIKeyMissing
}

// IsResponseError checks whether err is a provider/transport-level error.
func IsResponseError(err error) bool {
	return errorKind(err) == KindResponse
}

// IsContentFormatError checks whether err is a formatting contract error.
func IsContentFormatError(err error) bool {
	return errorKind(err) == KindContentFormat
}

// ErrorCode returns the stable code carried by err, or "" when err is not
// a structured error from this module.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func errorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
