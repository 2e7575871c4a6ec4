package middleware

import (
	"net/http"
	"strings"

	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/infrastructure/auth"
)

const (
	// ActorIDHeader names the acting staff member when token auth is disabled.
	ActorIDHeader = "X-Actor-ID"
	// ActorRoleHeader carries that staff member's role.
	ActorRoleHeader = "X-Actor-Role"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware creates an authentication middleware that requires a
// valid bearer token and stores its actor in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := domain.WithActor(r.Context(), claims.Actor())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HeaderActor trusts the X-Actor-ID and X-Actor-Role headers. It is meant
// for local setups without token auth. Requests without the headers pass
// through anonymously.
func HeaderActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(ActorIDHeader))
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		role := domain.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(ActorRoleHeader))))
		if !role.IsValid() {
			writeError(w, http.StatusUnauthorized, "invalid actor role")
			return
		}

		ctx := domain.WithActor(r.Context(), domain.Actor{ID: id, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
