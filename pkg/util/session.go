package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrExpiredSession = errors.New("session expired")
)

// SessionClaims carry an explicit issued-at and TTL so expiry stays a pure
// function of now - issuedAt > ttl.
type SessionClaims struct {
	SessionID string `json:"sid"`
	TTL       int64  `json:"ttl"` // seconds
	jwt.RegisteredClaims
}

// Session is the admin session object returned on login.
type Session struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
	TTL      int64     `json:"ttl"` // seconds
}

// SessionExpired reports whether a session issued at issuedAt with the given
// TTL has expired at now.
func SessionExpired(issuedAt time.Time, ttl time.Duration, now time.Time) bool {
	return now.Sub(issuedAt) > ttl
}

// GenerateSessionToken issues a signed admin session token.
func GenerateSessionToken(sessionID, secret string, ttl time.Duration, now time.Time) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		TTL:       int64(ttl.Seconds()),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Subject:  "admin",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken parses and verifies a session token, returning its
// claims. Expiry is checked against now using the embedded issued-at and TTL.
func ValidateSessionToken(tokenString, secret string, now time.Time) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.IssuedAt == nil {
		return nil, ErrInvalidSession
	}

	ttl := time.Duration(claims.TTL) * time.Second
	if SessionExpired(claims.IssuedAt.Time, ttl, now) {
		return nil, ErrExpiredSession
	}

	return claims, nil
}
