package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/callowaylaw/backend/internal/model"
	"github.com/callowaylaw/backend/internal/service"
)

// ---------------------------------------------------------------------------
// mockContactService — stub for handler tests
// ---------------------------------------------------------------------------

type mockContactService struct {
	submitFunc       func(ctx context.Context, c *model.Contact) error
	listFunc         func(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error)
	historyFunc      func(ctx context.Context, id int64) (*model.Contact, []*model.Reply, error)
	updateStatusFunc func(ctx context.Context, id int64, status string) error
	deleteFunc       func(ctx context.Context, id int64) error
	replyFunc        func(ctx context.Context, in service.ReplyInput) (bool, error)
}

func (m *mockContactService) Submit(ctx context.Context, c *model.Contact) error {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, c)
	}
	c.ID = 1
	c.Status = model.StatusNew
	return nil
}

func (m *mockContactService) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactService) History(ctx context.Context, id int64) (*model.Contact, []*model.Reply, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, id)
	}
	return &model.Contact{ID: id}, nil, nil
}

func (m *mockContactService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockContactService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockContactService) Reply(ctx context.Context, in service.ReplyInput) (bool, error) {
	if m.replyFunc != nil {
		return m.replyFunc(ctx, in)
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func postJSON(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestContactSubmit_Valid_Returns201(t *testing.T) {
	var submitted *model.Contact
	svc := &mockContactService{
		submitFunc: func(ctx context.Context, c *model.Contact) error {
			c.ID = 12
			c.Status = model.StatusNew
			submitted = c
			return nil
		},
	}
	h := NewContactHandler(svc)

	rec := postJSON(t, h.Submit, "/api/v1/contact",
		`{"name":"Jordan Li","email":"jordan@example.com","phone":"555-0100","subject":"Estate planning","message":"Need a will."}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if submitted == nil || submitted.Name != "Jordan Li" || submitted.Phone != "555-0100" {
		t.Errorf("submission not forwarded intact: %+v", submitted)
	}

	var body struct {
		Success bool          `json:"success"`
		Data    model.Contact `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !body.Success || body.Data.ID != 12 || body.Data.Status != model.StatusNew {
		t.Errorf("unexpected response body: %+v", body)
	}
}

func TestContactSubmit_MissingFields_Returns400(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"email":"a@b.co","subject":"s","message":"m"}`, "name is required"},
		{"missing email", `{"name":"n","subject":"s","message":"m"}`, "email is required"},
		{"missing subject", `{"name":"n","email":"a@b.co","message":"m"}`, "subject is required"},
		{"missing message", `{"name":"n","email":"a@b.co","subject":"s"}`, "message is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &mockContactService{
				submitFunc: func(ctx context.Context, c *model.Contact) error {
					called = true
					return nil
				},
			}
			h := NewContactHandler(svc)

			rec := postJSON(t, h.Submit, "/api/v1/contact", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if called {
				t.Error("service should not be called on validation failure")
			}
			var body map[string]string
			_ = json.NewDecoder(rec.Body).Decode(&body)
			if body["error"] != tt.want {
				t.Errorf("expected error %q, got %q", tt.want, body["error"])
			}
		})
	}
}

func TestContactSubmit_InvalidEmail_Returns400(t *testing.T) {
	for _, email := range []string{"not-an-email", "missing@dot", "@nodomain.com", "spaces in@addr.com"} {
		svc := &mockContactService{}
		h := NewContactHandler(svc)

		rec := postJSON(t, h.Submit, "/api/v1/contact",
			`{"name":"n","email":"`+email+`","subject":"s","message":"m"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("email %q: expected 400, got %d", email, rec.Code)
		}
	}
}

func TestContactSubmit_InvalidJSON_Returns400(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	rec := postJSON(t, h.Submit, "/api/v1/contact", `{`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestContactSubmit_ServiceError_Returns500(t *testing.T) {
	svc := &mockContactService{
		submitFunc: func(ctx context.Context, c *model.Contact) error {
			return errors.New("db write failed")
		},
	}
	h := NewContactHandler(svc)

	rec := postJSON(t, h.Submit, "/api/v1/contact",
		`{"name":"n","email":"a@b.co","subject":"s","message":"m"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestContactSubmit_AllowListRejection_SurfacesHint(t *testing.T) {
	svc := &mockContactService{
		submitFunc: func(ctx context.Context, c *model.Contact) error {
			return errors.New(`FATAL: no pg_hba.conf entry for host "203.0.113.9"`)
		},
	}
	h := NewContactHandler(svc)

	rec := postJSON(t, h.Submit, "/api/v1/contact",
		`{"name":"n","email":"a@b.co","subject":"s","message":"m"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if !strings.Contains(body["details"], "IP allow-list") {
		t.Errorf("expected allow-list hint in details, got %v", body)
	}
}
