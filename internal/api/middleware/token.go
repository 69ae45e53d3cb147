package middleware

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MintSessionToken signs an HS256 token carrying the session id. The token
// is tamper-evidence only; all session state stays server-side.
func MintSessionToken(secret, sid string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionToken validates the cookie token and extracts the session id.
func ParseSessionToken(secret, token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", fmt.Errorf("session token missing sid claim")
	}
	return sid, nil
}
