// Package apperr provides the service's error type. Every failure that
// reaches the HTTP boundary is an *AppError carrying a machine-readable code
// and the HTTP status it should be rendered with.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeMissingInput              Code = "MISSING_INPUT"
	CodeInvalidInput              Code = "INVALID_INPUT"
	CodePayloadTooLarge           Code = "PAYLOAD_TOO_LARGE"
	CodeProviderUnavailable       Code = "PROVIDER_UNAVAILABLE"
	CodeMalformedProviderResponse Code = "MALFORMED_PROVIDER_RESPONSE"
	CodeInternal                  Code = "INTERNAL"
)

// AppError is the unified application error type.
type AppError struct {
	Code       Code
	Message    string
	HTTPStatus int
	Cause      error
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// MissingInput is returned when the request carries no audio.
func MissingInput() *AppError {
	return &AppError{
		Code:       CodeMissingInput,
		Message:    "No audio data provided",
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidInput is returned for malformed request fields.
func InvalidInput(field, reason string) *AppError {
	msg := "Invalid input: " + reason
	if field != "" {
		msg = fmt.Sprintf("Invalid input for %s: %s", field, reason)
	}
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// PayloadTooLarge is returned when the audio exceeds the size ceiling.
func PayloadTooLarge(maxBytes int64) *AppError {
	return &AppError{
		Code:       CodePayloadTooLarge,
		Message:    fmt.Sprintf("Audio file too large. Maximum size is %s.", humanBytes(maxBytes)),
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
}

// RequestTooLarge is returned when the request body exceeds its cap.
func RequestTooLarge(maxBytes int64) *AppError {
	return &AppError{
		Code:       CodePayloadTooLarge,
		Message:    fmt.Sprintf("Request body too large. Maximum size is %s.", humanBytes(maxBytes)),
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
}

// ProviderUnavailable is returned when the transcription call fails.
func ProviderUnavailable(provider string, cause error) *AppError {
	return &AppError{
		Code:       CodeProviderUnavailable,
		Message:    fmt.Sprintf("Speech-to-text failed: %s provider unavailable", provider),
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// ProviderStatus is returned when the provider answers with a non-success
// status code.
func ProviderStatus(provider string, status int) *AppError {
	return &AppError{
		Code:       CodeProviderUnavailable,
		Message:    fmt.Sprintf("Speech-to-text failed: %s returned status %d", provider, status),
		HTTPStatus: http.StatusBadGateway,
	}
}

// MalformedProviderResponse is returned when the provider body cannot be
// decoded at all.
func MalformedProviderResponse(provider string, cause error) *AppError {
	return &AppError{
		Code:       CodeMalformedProviderResponse,
		Message:    fmt.Sprintf("Speech-to-text failed: unreadable %s response", provider),
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// Internal wraps an unexpected error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Analysis failed",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// From returns err as an *AppError, wrapping anything else as Internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsCode reports whether err is an *AppError with the given code.
func IsCode(err error, code Code) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func humanBytes(n int64) string {
	const mib = 1024 * 1024
	if n > 0 && n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}
