package fakeapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/recyclemate/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyAccountID stores the authenticated account ID
	ContextKeyAccountID ContextKey = "account_id"
	// ContextKeyRole stores the authenticated role
	ContextKeyRole ContextKey = "role"
)

// RequireAuth validates the Bearer token and injects the account id and role into the context
func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeMessage(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			writeMessage(w, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		c, err := s.tokens.Verify(parts[1])
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		// Deleted accounts lose access immediately
		if _, err := s.users.GetByID(c.Subject); err != nil {
			writeMessage(w, http.StatusUnauthorized, "Account no longer exists")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyAccountID, c.Subject)
		ctx = context.WithValue(ctx, ContextKeyRole, c.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must be chained after RequireAuth
func RequireRole(allowed ...users.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(ContextKeyRole).(users.Role)
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeMessage(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}

func accountID(r *http.Request) string {
	id, _ := r.Context().Value(ContextKeyAccountID).(string)
	return id
}
