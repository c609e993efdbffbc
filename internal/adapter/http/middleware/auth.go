package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// ActorContextKey is the context key for the authenticated actor
	ActorContextKey ContextKey = "actor"
)

// Actor identifies the authenticated user performing a request.
type Actor struct {
	ID    string
	Email string
	Role  domain.Role
}

// AuthMiddleware creates an authentication middleware
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			actor := &Actor{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  claims.Role,
			}

			ctx := context.WithValue(r.Context(), ActorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates a middleware that checks for a minimum approver role.
// Role ranks are ordered BURSAR < HEADTEACHER < DIRECTOR.
func RequireRole(minRole domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := r.Context().Value(ActorContextKey).(*Actor)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if domain.RoleRank(actor.Role) < domain.RoleRank(minRole) {
				http.Error(w, "insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetActorFromContext extracts the authenticated actor from context
func GetActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(ActorContextKey).(*Actor)
	return actor, ok
}
