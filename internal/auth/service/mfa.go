package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/loftwire/depot/internal/auth/domain"
	"github.com/loftwire/depot/internal/auth/store"
	"github.com/loftwire/depot/pkg/cryptox"
	"github.com/loftwire/depot/pkg/idx"
	"github.com/loftwire/depot/pkg/slogx"
	"github.com/loftwire/depot/pkg/totpx"
)

// backupCodeCount is the size of a freshly issued backup-code set.
const backupCodeCount = 10

// MFAService manages TOTP enrollment lifecycle and backup-code sets for an
// account. It never issues session tokens; that stays with AuthService.
type MFAService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	TOTP   *totpx.Engine
}

// Setup starts (or restarts) TOTP enrollment. A fresh secret is generated
// and stored as pending; calling Setup again before Enable simply replaces
// the previous pending secret. Accounts with MFA already enabled must
// disable it first.
func (s *MFAService) Setup(ctx context.Context, accountID string) (domain.MFASetup, error) {
	acct, err := s.getAccount(ctx, accountID)
	if err != nil {
		return domain.MFASetup{}, err
	}
	if acct.MFA.Enabled() {
		return domain.MFASetup{}, ErrMFAAlreadyEnabled
	}

	enr, err := s.TOTP.Enroll(acct.Email)
	if err != nil {
		return domain.MFASetup{}, fmt.Errorf("generate totp secret: %w", err)
	}

	if err := s.Store.Accounts().UpdateMFASecret(ctx, accountID, enr.Secret); err != nil {
		return domain.MFASetup{}, fmt.Errorf("store pending secret: %w", err)
	}

	setup := domain.MFASetup{Secret: enr.Secret, URL: enr.URL}

	// QR rendering is a convenience; the secret and otpauth URL are always
	// enough to enroll by hand, so a render failure is not fatal.
	qr, err := totpx.QRCodeDataURI(enr.URL)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to render mfa qr code", "error", err)
	} else {
		setup.QRCode = qr
	}

	return setup, nil
}

// Enable activates MFA after the caller proves possession of the pending
// secret with a current TOTP code. A fresh backup-code set is generated and
// stored in the same transaction, but only the count is returned; plaintext
// codes are handed out exclusively by RegenerateBackupCodes so that
// activation and code retrieval stay distinct events.
func (s *MFAService) Enable(ctx context.Context, accountID, code string) (int, error) {
	acct, err := s.getAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if acct.MFA.Enabled() {
		return 0, ErrMFAAlreadyEnabled
	}
	secret, ok := acct.MFA.Secret()
	if !ok {
		return 0, ErrMFANotEnrolled
	}
	if !s.TOTP.Verify(code, secret) {
		return 0, ErrInvalidTOTPCode
	}

	_, hashes, err := s.freshCodeSet(accountID)
	if err != nil {
		return 0, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, accountID); err != nil {
			return err
		}
		for _, bc := range hashes {
			if err := tx.BackupCodes().CreateBackupCode(ctx, bc); err != nil {
				return err
			}
		}
		return tx.Accounts().EnableMFA(ctx, accountID)
	})
	if err != nil {
		return 0, fmt.Errorf("enable mfa: %w", err)
	}
	return len(hashes), nil
}

// Disable turns MFA off and deletes the secret and every backup code. It
// is idempotent: disabling an account that never enabled MFA succeeds.
func (s *MFAService) Disable(ctx context.Context, accountID string) error {
	if _, err := s.getAccount(ctx, accountID); err != nil {
		return err
	}
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, accountID); err != nil {
			return err
		}
		return tx.Accounts().DisableMFA(ctx, accountID)
	})
	if err != nil {
		return fmt.Errorf("disable mfa: %w", err)
	}
	return nil
}

// RegenerateBackupCodes replaces the account's entire backup-code set and
// returns the plaintext codes. This is the only moment plaintexts exist
// outside the caller's hands; the store keeps hashes only.
func (s *MFAService) RegenerateBackupCodes(ctx context.Context, accountID string) ([]string, error) {
	acct, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !acct.MFA.Enabled() {
		return nil, ErrMFANotEnabled
	}

	plain, hashes, err := s.freshCodeSet(accountID)
	if err != nil {
		return nil, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, accountID); err != nil {
			return err
		}
		for _, bc := range hashes {
			if err := tx.BackupCodes().CreateBackupCode(ctx, bc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("replace backup codes: %w", err)
	}
	return plain, nil
}

// Status reports whether MFA is enabled and whether any backup codes remain.
func (s *MFAService) Status(ctx context.Context, accountID string) (domain.MFAStatus, error) {
	acct, err := s.getAccount(ctx, accountID)
	if err != nil {
		return domain.MFAStatus{}, err
	}
	n, err := s.Store.BackupCodes().CountBackupCodes(ctx, accountID)
	if err != nil {
		return domain.MFAStatus{}, fmt.Errorf("count backup codes: %w", err)
	}
	return domain.MFAStatus{Enabled: acct.MFA.Enabled(), HasBackupCodes: n > 0}, nil
}

func (s *MFAService) getAccount(ctx context.Context, accountID string) (domain.Account, error) {
	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}
	return acct, nil
}

// freshCodeSet generates a new backup-code set and its argon2id hashes.
func (s *MFAService) freshCodeSet(accountID string) ([]string, []domain.BackupCode, error) {
	plain, err := cryptox.GenerateBackupCodes(backupCodeCount)
	if err != nil {
		return nil, nil, fmt.Errorf("generate backup codes: %w", err)
	}
	out := make([]domain.BackupCode, 0, len(plain))
	now := time.Now().UTC()
	for _, p := range plain {
		h, err := s.Hasher.Hash(p)
		if err != nil {
			return nil, nil, fmt.Errorf("hash backup code: %w", err)
		}
		out = append(out, domain.BackupCode{
			ID:        idx.New().String(),
			AccountID: accountID,
			CodeHash:  h,
			CreatedAt: now,
		})
	}
	return plain, out, nil
}
