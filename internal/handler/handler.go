package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// DBPinger is the slice of the database pool the base handler needs.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Handler carries shared dependencies for the cross-cutting endpoints
// (health, CORS, API 404).
type Handler struct {
	db             DBPinger
	allowedOrigins []string
}

func New(db DBPinger, allowedOrigins []string) *Handler {
	return &Handler{db: db, allowedOrigins: allowedOrigins}
}

// CORS allows browser requests from the configured origin allowlist and
// answers preflight requests.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && h.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) originAllowed(origin string) bool {
	for _, o := range h.allowedOrigins {
		if o == origin || o == "*" {
			return true
		}
	}
	return false
}

// NotFoundAPI is the fallback for unmatched API-shaped paths.
func (h *Handler) NotFoundAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
}
