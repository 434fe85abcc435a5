package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenGracePeriod is subtracted from the token expiry so that a token is
// refreshed before the server would start rejecting it.
const TokenGracePeriod = 120 * time.Second

// AccessToken is the response of the client-credentials grant.
// A token is replaced wholesale on refresh and never mutated in place.
type AccessToken struct {
	// AccessToken is the bearer credential sent on authenticated calls.
	AccessToken string `json:"access_token"`

	// TokenType is normally "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds, kept as transmitted.
	ExpiresIn NumericString `json:"expires_in"`

	// CreatedAt is the issue time in Unix seconds. Zero means the server
	// did not send it; the token manager stamps the receive time instead.
	CreatedAt int64 `json:"created_at"`
}

// ExpiresAt reports when the token stops being accepted by the server.
// If expires_in is missing or malformed and the access token is a JWT, its
// exp claim is used. ok is false when no expiry can be determined.
func (t *AccessToken) ExpiresAt() (at time.Time, ok bool) {
	if secs, err := t.ExpiresIn.Int64(); err == nil {
		return time.Unix(t.CreatedAt+secs, 0), true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.AccessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// IsValid reports whether the token can still be used at now, allowing for
// TokenGracePeriod.
func (t *AccessToken) IsValid(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	exp, ok := t.ExpiresAt()
	if !ok {
		return false
	}
	return exp.Add(-TokenGracePeriod).Unix() > now.Unix()
}
