package service

import (
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/callowaylaw/backend/pkg/auth"
)

// authServiceImpl is the single-shared-password implementation of AuthService.
type authServiceImpl struct {
	adminPassword string
	secret        []byte
}

// NewAuthService creates an AuthService with the configured admin password
// and token signing secret.
func NewAuthService(adminPassword string, secret []byte) AuthService {
	return &authServiceImpl{adminPassword: adminPassword, secret: secret}
}

// Login verifies the password in constant time and mints an admin token.
func (s *authServiceImpl) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
		slog.Warn("admin login rejected")
		return "", ErrInvalidPassword
	}
	token, err := auth.CreateAdminToken(s.secret, time.Now())
	if err != nil {
		return "", err
	}
	slog.Info("admin login succeeded")
	return token, nil
}
