package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is written into the iss claim of every generated token.
const Issuer = "hiringboard-auth"

// GenerateToken signs an HS256 token for userID that expires after ttl.
func GenerateToken(userID string, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"iss": Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Subject returns the sub claim, or "" when absent.
func Subject(claims jwt.MapClaims) string {
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
