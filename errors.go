package main

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies why a highlight request failed
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates bad request parameters
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeForbiddenSource indicates a source page outside the allow-list
	ErrCodeForbiddenSource ErrorCode = "FORBIDDEN_SOURCE"
	// ErrCodeUpstreamFailed indicates the page or word list could not be fetched
	ErrCodeUpstreamFailed ErrorCode = "UPSTREAM_FAILED"
	// ErrCodeRateLimitExceeded indicates the client sent too many requests
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// RequestError is an error reported back to the HTTP client
type RequestError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Status maps the error code to an HTTP status
func (e *RequestError) Status() int {
	switch e.Code {
	case ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case ErrCodeForbiddenSource:
		return http.StatusForbidden
	case ErrCodeUpstreamFailed:
		return http.StatusBadGateway
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(msg string) *RequestError {
	return &RequestError{Code: ErrCodeInvalidArgument, Message: msg}
}

// ForbiddenSource creates an error for a source root that is not allowed
func ForbiddenSource(root string) *RequestError {
	return &RequestError{
		Code:    ErrCodeForbiddenSource,
		Message: fmt.Sprintf("srcurl root [%s] is not one that's allowed", root),
	}
}

// UpstreamFailed wraps a fetch failure
func UpstreamFailed(msg string, cause error) *RequestError {
	return &RequestError{Code: ErrCodeUpstreamFailed, Message: msg, Cause: cause}
}

// RateLimitExceeded creates a rate limit exceeded error
func RateLimitExceeded(msg string) *RequestError {
	return &RequestError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a RequestError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if reqErr, ok := err.(*RequestError); ok {
		return reqErr.Code
	}
	return defaultCode
}
