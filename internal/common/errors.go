package common

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Pipeline error taxonomy. A roster miss is not an error; it is just
// IsPresent=false on the match result.
var (
	// ErrInvalidImage marks input that never decoded; detected synchronously
	// in the submission path, before any job record exists.
	ErrInvalidImage = errors.New("invalid image")
	// ErrExtractionUnavailable marks OCR engine failure or timeout, distinct
	// from malformed input.
	ErrExtractionUnavailable = errors.New("text extraction unavailable")
	// ErrRenderIO marks a report write failure.
	ErrRenderIO = errors.New("report write failed")
	// ErrNotFound marks an unknown job record.
	ErrNotFound = errors.New("resource not found")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus maps a pipeline error to the HTTP status the boundary reports.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrExtractionUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
