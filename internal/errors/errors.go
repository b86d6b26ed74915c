// Package errors defines the structured API error shape rendered by the
// HTTP layer. Engine-level irregularities (malformed cells, missing
// columns) never reach this package; only request problems and workbook
// read failures do.
package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError is a structured API error response.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError carries the offending field for validation failures.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates an APIError.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates an APIError with additional details.
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidRequest = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrNotFound       = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ErrValidation creates a validation error naming the offending field.
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// WorkbookNotFoundError reports an unknown workbook identifier.
func WorkbookNotFoundError(name string) *APIError {
	return NewWithDetails(http.StatusNotFound, "WORKBOOK_NOT_FOUND", fmt.Sprintf("Workbook %q not found", name), name)
}

// WorkbookUnreadableError reports the one true engine error: the workbook
// could not be opened or is not a valid .xlsx file.
func WorkbookUnreadableError(err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "WORKBOOK_UNREADABLE", "Workbook could not be read", err.Error())
}
