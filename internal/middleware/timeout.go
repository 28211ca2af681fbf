package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"movie-catalog-api/internal/model"
	"movie-catalog-api/pkg/apierror"
)

// Timeout bounds handler run time. The body matches the usual error envelope.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	message, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: apierror.CodeRequestTimeout, Message: "request timed out"},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(message))
	}
}
