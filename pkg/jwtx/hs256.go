package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// HS256 signs and verifies session tokens with a process-wide shared secret.
// The secret is loaded once at startup from configuration and injected here;
// nothing in the request path ever derives or reloads it.
type HS256 struct {
	secret []byte
	issuer string
}

// NewHS256 builds a signer/verifier pair over the given secret. An empty
// secret is a configuration error and the process must not serve traffic.
func NewHS256(secret, issuer string) (*HS256, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &HS256{secret: []byte(secret), issuer: issuer}, nil
}

// Sign produces a compact HS256 token for the given claims.
func (s *HS256) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry. Every failure collapses into
// ErrInvalidToken; the wrapped cause is for logs only, never for clients.
func (s *HS256) Verify(raw string) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return claims, nil
}
