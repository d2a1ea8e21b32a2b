package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel for wrong signing methods inside the parse callback
	"fmt"    // error formatting for the secret length check
	"time"   // time utilities for issue and expiry timestamps

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens

	"github.com/schadenscheck/admin-api/internal/model" // principal carried inside tokens
)

// MinSecretLen is the minimum accepted signing secret length.  Anything
// shorter makes HS256 tokens practical to brute-force offline, so a short
// secret is a deployment mistake that must stop the process at startup.
const MinSecretLen = 32

// TokenCodec issues and verifies the signed session tokens that represent
// an administrator's session.  Tokens are HS256 JWTs carrying the subject
// (username), role, issue time and expiry.  The codec is immutable after
// construction and safe for concurrent use.
type TokenCodec struct {
	secret []byte        // HMAC signing secret, validated at construction
	ttl    time.Duration // lifetime applied to every issued token
}

// NewTokenCodec builds a codec for the given secret and token lifetime.
// It returns an error when the secret is shorter than MinSecretLen; main
// treats that as fatal so a weakly configured service never serves traffic.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("signing secret must be at least %d characters, got %d", MinSecretLen, len(secret))
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL reports the lifetime applied to issued tokens.  Handlers use it to
// align the session cookie's MaxAge with the token's expiry.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Issue builds and signs a token for the given principal.  The JWT includes
// standard claims: subject (sub), role, expiration (exp) and issued at
// (iat).  Signing can only fail on an internal HMAC error, which the login
// handler surfaces as a generic failure.
func (tc *TokenCodec) Issue(p model.Principal) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  p.Username,
		"role": p.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(tc.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(tc.secret)
}

// Verify checks a token's signature and expiry and extracts its principal.
// It never returns an error: any malformed, tampered or expired token
// yields ok=false, so callers treat "no valid session" uniformly without
// caring why the token failed.  The role inside a valid token is trusted
// as-is; there is deliberately no credential re-lookup here, so a role
// change only takes effect once outstanding tokens expire.
func (tc *TokenCodec) Verify(raw string) (model.Principal, bool) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject any token not signed with HMAC; accepting attacker-chosen
		// methods (e.g. "none") would bypass the signature entirely.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tc.secret, nil
	})
	if err != nil || !tok.Valid {
		return model.Principal{}, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return model.Principal{}, false
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return model.Principal{}, false
	}
	return model.Principal{Username: sub, Role: role}, true
}
