// Package token signs and verifies the stateless credentials used by the API.
// A credential embeds the full identity claim; nothing is stored server-side
// and tokens are never revoked before their expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/material-mover/marketplace-api/internal/core/domain"
)

// defaultSecret keeps the signature scheme consistent and verifiable when no
// secret is configured. Deployments must set JWT_SECRET.
const defaultSecret = "replace_with_a_strong_secret"

// DefaultTTL is the credential lifetime when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Verification failures. All of them are reported to clients as a uniform
// authentication failure; the distinction exists for internal logging only.
var (
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("token malformed")
	ErrBadSignature     = errors.New("token signature invalid")
	ErrUnexpectedMethod = errors.New("unexpected signing method")
)

// Claims is the identity embedded in a signed credential.
type Claims struct {
	UserID string      `json:"id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec is a stateless signer/verifier keyed by a process-wide secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a Codec. An empty secret falls back to a fixed development
// secret rather than disabling verification; a non-positive ttl falls back to
// DefaultTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if secret == "" {
		secret = defaultSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a credential for the given user, embedding issuance and expiry.
func (c *Codec) Issue(user *domain.User) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a credential. The returned error is one of
// ErrExpired, ErrBadSignature or ErrMalformed so the caller can log the real
// cause while responding uniformly.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrUnexpectedMethod
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, classify(err)
	}
	if !tkn.Valid {
		return nil, ErrMalformed
	}
	if _, parseErr := domain.ParseRole(string(claims.Role)); parseErr != nil {
		return nil, ErrMalformed
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrUnexpectedMethod):
		return ErrBadSignature
	default:
		return ErrMalformed
	}
}
