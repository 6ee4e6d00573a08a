package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// NewAccessToken signs a token JWTAuth accepts. Production tokens come from the
// auth service; this exists for the seed command and tests.
func NewAccessToken(secret, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"type":    "access",
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
