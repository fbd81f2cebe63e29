package domain

// AuthResult is the outcome of a successful login or MFA verification step.
// When RequiresMFA is set there is no token and no account data beyond the
// email echo; the caller must complete MFA verification to authenticate.
type AuthResult struct {
	Token       string
	Account     *Account
	RequiresMFA bool
	Email       string
}
