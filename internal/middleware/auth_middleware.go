package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mentorconnect/backend/internal/auth"
	"github.com/mentorconnect/backend/internal/models"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// UserID returns the authenticated user's id from the request context.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// Role returns the authenticated user's role from the request context.
func Role(ctx context.Context) (models.UserRole, bool) {
	role, ok := ctx.Value(roleKey).(models.UserRole)
	return role, ok
}

// WithUser stamps an authenticated identity onto a context. Exposed for
// handler tests.
func WithUser(ctx context.Context, userID string, role models.UserRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

type AuthMiddleware struct {
	tokens *auth.TokenManager
}

func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Protect requires a valid credential: a bearer token in the Authorization
// header, or the token cookie set at login.
func (m *AuthMiddleware) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if cookie, err := r.Cookie("token"); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := WithUser(r.Context(), claims.UserID, models.UserRole(claims.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authorize gates a protected route to the given roles.
func (m *AuthMiddleware) Authorize(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := Role(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
