// Package apperror provides structured error handling following RFC 7807 Problem Details.
// Every error that reaches an API response is an AppError.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// 5xx
	CodeInternal           = "INTERNAL_ERROR"
	CodeDatabase           = "DATABASE_ERROR"
	CodeStorage            = "STORAGE_ERROR"
	CodePrinterUnavailable = "PRINTER_UNAVAILABLE"

	// 400
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidPattern       = "INVALID_PATTERN"
	CodeUnsupportedSymbology = "UNSUPPORTED_SYMBOLOGY"
	CodeUnsupportedDialect   = "UNSUPPORTED_DIALECT"
	CodeUnsafeData           = "UNSAFE_DATA"

	// 409
	CodeConflict               = "CONFLICT"
	CodeDuplicate              = "DUPLICATE_ENTRY"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
)

// AppError is the standard error type of the service.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, offending values)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return newError(CodeValidation, http.StatusBadRequest, message)
}

// NewInvalidPattern reports a base name without a trailing number (400).
func NewInvalidPattern(pattern string) *AppError {
	return newError(CodeInvalidPattern, http.StatusBadRequest,
		"Base name must end with a number (e.g., PA00001, ITEM001)").
		WithDetail("baseName", pattern)
}

// NewUnsupportedSymbology creates a 400 for an unknown code type.
func NewUnsupportedSymbology(symbology string) *AppError {
	return newError(CodeUnsupportedSymbology, http.StatusBadRequest,
		fmt.Sprintf("Unsupported code type %q", symbology)).
		WithDetail("codeType", symbology)
}

// NewUnsupportedDialect creates a 400 for an unknown printer language.
func NewUnsupportedDialect(dialect string) *AppError {
	return newError(CodeUnsupportedDialect, http.StatusBadRequest,
		fmt.Sprintf("Unsupported printer language %q", dialect)).
		WithDetail("dialect", dialect)
}

// NewUnsafeData rejects a code that would corrupt the command stream (400).
func NewUnsafeData(code, dialect string) *AppError {
	return newError(CodeUnsafeData, http.StatusBadRequest,
		"Code contains characters reserved by the printer language").
		WithDetail("code", code).
		WithDetail("dialect", dialect)
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewConcurrentModification creates an optimistic locking error
func NewConcurrentModification(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeConcurrentModification,
		Message:    "Record was modified by another user. Please refresh and try again.",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return newError(CodeConflict, http.StatusConflict, message)
}

// NewDuplicate creates a duplicate entry error (409)
func NewDuplicate(entity, field, value string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    fmt.Sprintf("%s with this %s already exists", entity, field),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "field": field, "value": value},
	}
}

// NewPrinterUnavailable wraps a transport failure (502).
func NewPrinterUnavailable(printer string, err error) *AppError {
	return newError(CodePrinterUnavailable, http.StatusBadGateway, "Printer is not reachable").
		WithDetail("printer", printer).
		WithCause(err)
}

// NewStorage wraps a file storage failure (502).
func NewStorage(err error) *AppError {
	return newError(CodeStorage, http.StatusBadGateway, "File storage error").WithCause(err)
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, message)
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return newError(CodeForbidden, http.StatusForbidden, message)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsConcurrentModification checks if error is CodeConcurrentModification
func IsConcurrentModification(err error) bool {
	return hasCode(err, CodeConcurrentModification)
}

func hasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
