package model

import (
	"sort"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string              `json:"error"`
	Message       string              `json:"message"`
	CorrelationID string              `json:"correlationId,omitempty"`
	Fields        map[string][]string `json:"fields,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeCategoryNotFound = "CATEGORY_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeUnauthenticated  = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCategoryNotFound = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrNotFound         = NewDomainError(ErrCodeNotFound, "Not found")
	ErrInvalidPage      = NewDomainError(ErrCodeNotFound, "Invalid page")
	ErrInvalidJSON      = NewDomainError(ErrCodeInvalidJSON, "Request body is not valid JSON")
	ErrMethodNotAllowed = NewDomainError(ErrCodeMethodNotAllowed, "Method not allowed")
	ErrUnauthenticated  = NewDomainError(ErrCodeUnauthenticated, "Authentication credentials were not provided or are invalid")
	ErrForbidden        = NewDomainError(ErrCodeForbidden, "You do not have permission to perform this action")
)

// ValidationError reports field-level problems with a request payload or query.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add records a message against field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no field messages were recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
