package middleware

import (
	"context"
	"net/http"
	"strings"

	"movie-catalog-api/internal/model"
	"movie-catalog-api/internal/service"
	"movie-catalog-api/pkg/apierror"
)

type accessVerifier interface {
	VerifyAccess(token string) (*service.AccessClaims, error)
}

type denialObserver interface {
	ObserveDenial(reason string)
}

type contextKey string

const principalContextKey contextKey = "principal"

// AuthMiddleware authenticates bearer access tokens and gates routes by role.
type AuthMiddleware struct {
	verifier accessVerifier
	observer denialObserver
}

func NewAuthMiddleware(verifier accessVerifier, observer denialObserver) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, observer: observer}
}

// Authenticate requires "Authorization: Bearer <access token>" and stores
// the resulting principal in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			m.deny(w, http.StatusUnauthorized, apierror.CodeUnauthenticated, "missing or malformed bearer token")
			return
		}

		claims, err := m.verifier.VerifyAccess(token)
		if err != nil {
			m.deny(w, http.StatusUnauthorized, apierror.CodeUnauthenticated, "invalid or expired token")
			return
		}

		principal := model.Principal{UserID: claims.Subject, Roles: claims.Roles}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// RequireRoles admits principals holding any one of the allowed roles. It
// must run after Authenticate; without a principal it answers 401, never 403.
func (m *AuthMiddleware) RequireRoles(allowed ...model.Role) func(http.Handler) http.Handler {
	allowedSet := model.Roles(allowed).Normalize()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				m.deny(w, http.StatusUnauthorized, apierror.CodeUnauthenticated, "authentication required")
				return
			}

			if !principal.Roles.Intersects(allowedSet) {
				m.deny(w, http.StatusForbidden, apierror.CodeForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func WithPrincipal(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(model.Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

func (m *AuthMiddleware) deny(w http.ResponseWriter, status int, code string, message string) {
	if m.observer != nil {
		reason := "unauthenticated"
		if status == http.StatusForbidden {
			reason = "forbidden"
		}
		m.observer.ObserveDenial(reason)
	}

	writeJSONError(w, status, code, message)
}
