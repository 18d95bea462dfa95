package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/callowaylaw/backend/internal/model"
	"github.com/callowaylaw/backend/internal/service"
)

// emailPattern is a basic local@domain check requiring at least one dot in
// the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactHandler handles the public contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitRequest is the expected JSON body for POST /api/v1/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /api/v1/contact.
// name, email, subject, and message are required; phone is optional.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"subject", req.Subject},
		{"message", req.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			badRequest(w, f.name+" is required")
			return
		}
	}
	if !emailPattern.MatchString(req.Email) {
		badRequest(w, "invalid email address")
		return
	}

	c := &model.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.contactService.Submit(r.Context(), c); err != nil {
		writeInfraError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Your message has been received. We will be in touch shortly.",
		"data":    c,
	})
}

func badRequest(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeInfraError translates a storage or mail failure into a generic 500.
// Postgres network allow-list rejections ("no pg_hba.conf entry") get an
// operator hint so hosting misconfiguration is diagnosable from the response.
func writeInfraError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	if strings.Contains(err.Error(), "pg_hba.conf") {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "database connection rejected",
			"details": "the database refused this server's address; check the provider's IP allow-list",
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "failed to process request"})
}
