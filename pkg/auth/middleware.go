package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

const claimsKey contextKey = "admin_claims"

// ClaimsFromContext returns the verified admin claims attached by RequireAdmin.
func ClaimsFromContext(ctx context.Context) (*AdminClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*AdminClaims)
	return c, ok
}

// WithClaims attaches admin claims to the context.
func WithClaims(ctx context.Context, c *AdminClaims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// RequireAdmin guards admin routes with a bearer-token check. A missing token
// is 401; an invalid or expired token is 403. On success the decoded claims
// are attached to the request context.
func RequireAdmin(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			token := bearerToken(r)
			if token == "" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			claims, err := VerifyAdminToken(secret, token)
			if err != nil {
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
