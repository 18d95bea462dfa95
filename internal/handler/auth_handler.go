package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/callowaylaw/backend/internal/service"
)

// AuthHandler handles the admin login endpoint.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates an AuthHandler with the given service.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/v1/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "invalid password",
			})
			return
		}
		writeInfraError(w, err)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"token":   token,
	})
}
