package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/loftwire/depot/internal/auth/domain"
	"github.com/loftwire/depot/internal/auth/store"
	"github.com/loftwire/depot/pkg/cryptox"
	"github.com/loftwire/depot/pkg/idx"
	"github.com/loftwire/depot/pkg/totpx"
)

// AuthService is the authentication orchestrator: registration, the
// password login step, and the MFA completion step. It owns the decision
// of when a session token may be issued; nothing else in the process
// issues tokens.
type AuthService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	TOTP   *totpx.Engine
	Tokens *TokenService
	Backup *BackupCodeVerifier
}

// Register creates a new account with a hashed password and MFA disabled.
func (s *AuthService) Register(ctx context.Context, email, firstName, lastName, password string) (domain.Account, error) {
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	acct := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		MFA:          domain.MFAOff(),
	}

	if err := s.Store.Accounts().CreateAccount(ctx, acct); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrEmailTaken
		}
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	// Re-read so the caller sees store-assigned timestamps.
	return s.Store.Accounts().GetAccountByID(ctx, acct.ID)
}

// Login performs the password step. When the account has MFA enabled the
// result carries RequiresMFA instead of a token; the caller must come back
// through VerifyMFA to finish. Unknown email and wrong password produce
// the identical ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AuthResult{}, ErrInvalidCredentials
		}
		return domain.AuthResult{}, fmt.Errorf("lookup account: %w", err)
	}

	if err := s.Hasher.Verify(password, acct.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return domain.AuthResult{}, ErrInvalidCredentials
		}
		return domain.AuthResult{}, fmt.Errorf("verify password: %w", err)
	}

	if acct.MFA.Enabled() {
		return domain.AuthResult{RequiresMFA: true, Email: acct.Email}, nil
	}

	return s.issue(&acct)
}

// VerifyMFA performs the second step of a login for an MFA-enabled account.
// The code is either a current TOTP code or, when isBackupCode is set, a
// single-use backup code which is consumed on success.
func (s *AuthService) VerifyMFA(ctx context.Context, email, code string, isBackupCode bool) (domain.AuthResult, error) {
	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AuthResult{}, ErrAccountNotFound
		}
		return domain.AuthResult{}, fmt.Errorf("lookup account: %w", err)
	}

	if isBackupCode {
		ok, err := s.Backup.Consume(ctx, acct.ID, code)
		if err != nil {
			return domain.AuthResult{}, fmt.Errorf("consume backup code: %w", err)
		}
		if !ok {
			return domain.AuthResult{}, ErrInvalidBackupCode
		}
		return s.issue(&acct)
	}

	// An absent secret fails exactly like a wrong code. Accounts that never
	// enabled MFA don't get a distinguishable error from this endpoint.
	secret, ok := acct.MFA.Secret()
	if !ok || !acct.MFA.Enabled() || !s.TOTP.Verify(code, secret) {
		return domain.AuthResult{}, ErrInvalidTOTPCode
	}
	return s.issue(&acct)
}

func (s *AuthService) issue(acct *domain.Account) (domain.AuthResult, error) {
	token, err := s.Tokens.Issue(acct.ID, acct.Email)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("issue session token: %w", err)
	}
	return domain.AuthResult{Token: token, Account: acct}, nil
}
