package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultTokenType = "Bearer"
	DefaultExpiresIn = time.Hour
	ExpiryMargin     = 60 * time.Second
)

// Session is the token state obtained from the auth endpoint. A zero
// ExpiresAt means no expiry is known, which never counts as valid.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
}

// ValidAt reports whether the session holds an access token that has not
// reached its (margin-adjusted) expiry at now.
func (s Session) ValidAt(now time.Time) bool {
	return s.AccessToken != "" && !s.ExpiresAt.IsZero() && now.Before(s.ExpiresAt)
}

// Header returns the Authorization header for the session.
func (s Session) Header() http.Header {
	kind := s.TokenType
	if kind == "" {
		kind = DefaultTokenType
	}
	h := http.Header{}
	h.Set("Authorization", kind+" "+s.AccessToken)
	return h
}

// Claims decodes the registered claims of a JWT access token without
// verifying its signature. It is meant for diagnostics only; ok is false for
// opaque tokens.
func (s Session) Claims() (claims *jwt.RegisteredClaims, ok bool) {
	if s.AccessToken == "" {
		return nil, false
	}
	claims = &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return nil, false
	}
	return claims, true
}
