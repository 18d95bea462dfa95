package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/callowaylaw/backend/internal/model"
	"github.com/callowaylaw/backend/internal/repository"
	"github.com/callowaylaw/backend/internal/service"
)

// AdminContactHandler handles the token-guarded contact management endpoints.
// Authentication is enforced by auth.RequireAdmin wrapping these routes.
type AdminContactHandler struct {
	contactService service.ContactService
}

// NewAdminContactHandler creates an AdminContactHandler with the given service.
func NewAdminContactHandler(contactService service.ContactService) *AdminContactHandler {
	return &AdminContactHandler{contactService: contactService}
}

// List handles GET /api/v1/admin/contacts.
// Supports optional query params: status, limit, offset.
func (h *AdminContactHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	opts := model.ContactListOptions{Status: r.URL.Query().Get("status")}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	contacts, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		writeInfraError(w, err)
		return
	}
	// Return [] not null for empty lists
	if contacts == nil {
		contacts = []*model.Contact{}
	}
	_ = json.NewEncoder(w).Encode(contacts)
}

// historyResponse is the JSON response for the history endpoint.
type historyResponse struct {
	Contact *model.Contact `json:"contact"`
	Replies []*model.Reply `json:"replies"`
}

// History handles GET /api/v1/admin/contacts/{id}/history.
func (h *AdminContactHandler) History(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, replies, err := h.contactService.History(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeInfraError(w, err)
		return
	}
	if replies == nil {
		replies = []*model.Reply{}
	}
	_ = json.NewEncoder(w).Encode(historyResponse{Contact: c, Replies: replies})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/v1/admin/contacts/{id}.
// The status value is free text; only presence is validated.
func (h *AdminContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		badRequest(w, "status is required")
		return
	}

	if err := h.contactService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeInfraError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Delete handles DELETE /api/v1/admin/contacts/{id}.
func (h *AdminContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeInfraError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// replyRequest is the expected JSON body for POST /api/v1/admin/reply.
type replyRequest struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Reply handles POST /api/v1/admin/reply.
func (h *AdminContactHandler) Reply(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req replyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ID <= 0 {
		badRequest(w, "id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(w, "message is required")
		return
	}

	mailSent, err := h.contactService.Reply(r.Context(), service.ReplyInput{
		ContactID: req.ID,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeNotFound(w)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"message":   "reply sent",
		"mail_sent": mailSent,
	})
}

// pathID parses the {id} path segment; on failure it writes a 400 and
// returns ok=false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}

func writeNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "contact not found"})
}
