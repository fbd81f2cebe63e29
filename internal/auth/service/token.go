package service

import (
	"time"

	"github.com/loftwire/depot/pkg/jwtx"
)

// TokenService issues and verifies the bearer session tokens handed out
// after a completed authentication. Tokens are stateless; there is no
// server-side session store to consult or invalidate.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
}

// Issue signs a session token bound to the account.
func (s *TokenService) Issue(accountID, email string) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(accountID, email, s.Issuer, ttl, time.Now().UTC())
	return s.Signer.Sign(claims)
}

// Verify checks a presented token. Any failure is jwtx.ErrInvalidToken; the
// caller cannot and must not distinguish expired from tampered.
func (s *TokenService) Verify(token string) (jwtx.Claims, error) {
	return s.Verifier.Verify(token)
}
