package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"movie-catalog-api/pkg/apierror"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			slog.ErrorContext(r.Context(), "panic recovered",
				"error", fmt.Sprintf("%v", recovered),
				"request_id", RequestIDFromContext(r.Context()),
				"stack", string(debug.Stack()))
			writeJSONError(w, http.StatusInternalServerError, apierror.CodeInternal, "Unexpected server error")
		}()

		next.ServeHTTP(w, r)
	})
}
