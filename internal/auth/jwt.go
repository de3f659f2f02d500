// Package auth provides password hashing, signed session tokens, and the
// session gates that protect routes.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. User registers at /register → password stored as a bcrypt hash
// 2. User logs in at /login → hash verified, a JWT is issued for the user id
// 3. The server-side session stores isAuth, a user snapshot, and the JWT
// 4. Gated routes check the session flag, or re-verify the stored JWT
// 5. /logout destroys the session
//
// JWT STRUCTURE (three base64-encoded parts separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: algorithm + token type → {"alg":"HS256","typ":"JWT"}
//	- Payload: claims (data) → {"sub":"userID","iss":"restaurant-directory"}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// issuer is written into every token and required on validation, so tokens
// signed for another app with the same secret are rejected.
const issuer = "restaurant-directory"

// ErrInvalidToken is wrapped by every Validate failure: bad signature,
// malformed token, wrong algorithm, wrong issuer, expired, missing subject.
var ErrInvalidToken = errors.New("auth: invalid token")

// TokenService handles JWT creation and validation.
//
// It holds the HMAC secret key used to sign and verify tokens, and an
// optional lifetime. A zero ttl issues tokens with NO exp claim: such a
// token stays valid for as long as the secret does, and logout only works
// by destroying the server-side session that holds it.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given secret and lifetime.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl < 0 {
		return nil, errors.New("auth: token lifetime must not be negative")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the JWT payload. The user id travels in the standard "sub"
// (Subject) claim.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a token asserting the given user id, using the
// service's configured lifetime.
func (s *TokenService) Generate(userID string) (string, error) {
	return s.GenerateWithDuration(userID, s.ttl)
}

// GenerateWithDuration creates a token with a custom lifetime.
// d == 0 means no exp claim; a negative d produces an already-expired token,
// which tests use to exercise expiry handling.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   issuer,
		},
	}
	if d != 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(d))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string.
// Returns the user id (stored in the "sub" claim) if the token is valid.
//
// VALIDATION CHECKS (performed by the jwt library):
//   - Signature is valid (wasn't tampered with)
//   - Algorithm is HS256 (prevents the "alg: none" confusion attack)
//   - Issuer matches
//   - If an exp claim is present, it is in the future
//
// Every failure wraps ErrInvalidToken.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%w: unexpected claims", ErrInvalidToken)
	}

	if c.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}

	return c.Subject, nil
}
