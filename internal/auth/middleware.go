package auth

import (
	"context"
	"net/http"
)

// contextKey is unexported so only this package can read or write the
// userID slot in a request context — plain string keys could be shadowed by
// any other package.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth enforces a valid session on protected routes. It reads the
// JWT from the session cookie, validates it, and stores the account ID in
// the request context; a missing or invalid token short-circuits with 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				http.Error(w, `{"error":"unauthenticated","message":"valid session required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates the context with the account ID when a valid
// session cookie is present but never blocks the request. Used on routes
// like /api/session that must answer "who am I?" with an explicit anonymous
// result instead of a 401.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := extractUserID(r, tokens); err == nil && userID != "" {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext returns the authenticated account ID, or ("", false)
// for an anonymous request.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		// http.ErrNoCookie — anonymous request
		return "", err
	}
	return tokens.Validate(cookie.Value)
}
