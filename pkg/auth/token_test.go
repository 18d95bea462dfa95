package auth

import (
	"testing"
	"time"
)

var testSecret = []byte("test-secret-32-bytes-minimum-ok!")

func TestCreateAndVerifyAdminToken(t *testing.T) {
	token, err := CreateAdminToken(testSecret, time.Now())
	if err != nil {
		t.Fatalf("CreateAdminToken failed: %v", err)
	}

	claims, err := VerifyAdminToken(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyAdminToken failed: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role=admin, got %q", claims.Role)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != TokenTTL {
		t.Errorf("expected %v expiry window, got %v", TokenTTL, ttl)
	}
}

func TestVerifyAdminToken_WrongSecret(t *testing.T) {
	token, err := CreateAdminToken(testSecret, time.Now())
	if err != nil {
		t.Fatalf("CreateAdminToken failed: %v", err)
	}

	if _, err := VerifyAdminToken([]byte("a-completely-different-secret!!!"), token); err == nil {
		t.Error("expected verification to fail with wrong secret")
	}
}

func TestVerifyAdminToken_Expired(t *testing.T) {
	// Issued 3 hours ago with a 2 hour TTL.
	token, err := CreateAdminToken(testSecret, time.Now().Add(-3*time.Hour))
	if err != nil {
		t.Fatalf("CreateAdminToken failed: %v", err)
	}

	if _, err := VerifyAdminToken(testSecret, token); err == nil {
		t.Error("expected verification to fail for expired token")
	}
}

func TestVerifyAdminToken_Garbage(t *testing.T) {
	if _, err := VerifyAdminToken(testSecret, "not.a.token"); err == nil {
		t.Error("expected verification to fail for garbage input")
	}
}
