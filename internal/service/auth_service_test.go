package service

import (
	"errors"
	"testing"

	"github.com/callowaylaw/backend/pkg/auth"
)

func TestAuthService_Login_CorrectPassword(t *testing.T) {
	secret := []byte("test-secret-32-bytes-minimum-ok!")
	svc := NewAuthService("s3cret-admin-password", secret)

	token, err := svc.Login("s3cret-admin-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	claims, err := auth.VerifyAdminToken(secret, token)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role=admin, got %q", claims.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService("s3cret-admin-password", []byte("test-secret-32-bytes-minimum-ok!"))

	token, err := svc.Login("guess")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
	if token != "" {
		t.Errorf("expected empty token on failure, got %q", token)
	}
}
