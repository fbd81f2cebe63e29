// Package jwtx signs and verifies the session tokens that gate access to
// authenticated endpoints. Tokens are stateless: validity is determined
// purely by signature and expiry, never by a server-side store.
package jwtx

import "errors"

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a session token and gives you back the claims if it's
// legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	// ErrInvalidToken is the uniform failure for any structural, signature,
	// or expiry problem. Callers must not surface finer detail to clients;
	// the wrapped cause exists only for logging.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrMissingSecret reports an empty signing secret at construction time.
	ErrMissingSecret = errors.New("jwtx: signing secret must not be empty")
)
