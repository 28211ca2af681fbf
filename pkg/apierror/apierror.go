package apierror

import (
	"fmt"
	"net/http"
)

const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeValidation       = "VALIDATION_FAILED"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeInvalidCreds     = "INVALID_CREDENTIALS"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeConfiguration    = "CONFIGURATION_ERROR"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
	CodeRequestTimeout   = "REQUEST_TIMEOUT"
	CodeServiceUnhealthy = "SERVICE_UNAVAILABLE"
)

type APIError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    string            `json:"details,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	HTTPStatus int               `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

func BadRequest(message string, details string) *APIError {
	return New(CodeBadRequest, message, details, http.StatusBadRequest)
}

// Validation reports per-field failures keyed by JSON field name.
func Validation(fields map[string]string) *APIError {
	return &APIError{
		Code:       CodeValidation,
		Message:    "request validation failed",
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}
