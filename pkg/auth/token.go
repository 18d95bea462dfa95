package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the lifetime of an admin token. There is no revocation list:
// validity is solely a function of signature and expiry.
const TokenTTL = 2 * time.Hour

const roleAdmin = "admin"

// ErrInvalidToken is returned when a token fails signature, expiry, or role
// verification.
var ErrInvalidToken = errors.New("invalid token")

// AdminClaims is the claim set carried by an admin token.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CreateAdminToken issues a signed admin token valid for TokenTTL from now.
func CreateAdminToken(secret []byte, now time.Time) (string, error) {
	claims := AdminClaims{
		Role: roleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAdminToken checks signature, expiry, and the admin role claim.
func VerifyAdminToken(secret []byte, tokenStr string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || claims.Role != roleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
