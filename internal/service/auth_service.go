package service

import "errors"

// ErrInvalidPassword is returned by Login when the submitted password does
// not match the configured admin password.
var ErrInvalidPassword = errors.New("invalid password")

// AuthService issues admin tokens. There is a single shared admin identity;
// the interface exists so a per-user model can replace it without touching
// the handlers.
type AuthService interface {
	// Login verifies the admin password and returns a signed token.
	Login(password string) (string, error)
}
