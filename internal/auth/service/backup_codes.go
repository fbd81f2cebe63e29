package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/loftwire/depot/internal/auth/store"
	"github.com/loftwire/depot/pkg/cryptox"
)

// BackupCodeVerifier matches a presented backup code against an account's
// stored set and burns the matched code. Codes are argon2id hashes with
// per-code salts, so there is no hash-equality lookup; each stored hash is
// verified in turn until one matches.
type BackupCodeVerifier struct {
	Store  store.Store
	Hasher *cryptox.Hasher
}

// Consume reports whether code matched one of the account's backup codes.
// On a match the matched row is deleted before returning, so a second
// presentation of the same code fails.
func (v *BackupCodeVerifier) Consume(ctx context.Context, accountID, code string) (bool, error) {
	codes, err := v.Store.BackupCodes().ListBackupCodes(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("list backup codes: %w", err)
	}

	for _, c := range codes {
		err := v.Hasher.Verify(code, c.CodeHash)
		if errors.Is(err, cryptox.ErrMismatch) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("verify backup code: %w", err)
		}
		err = v.Store.BackupCodes().DeleteBackupCode(ctx, accountID, c.ID)
		if errors.Is(err, store.ErrNotFound) {
			// A concurrent presentation of the same code already burned
			// this row. Only the caller whose delete removed the row wins.
			continue
		}
		if err != nil {
			return false, fmt.Errorf("consume backup code: %w", err)
		}
		return true, nil
	}
	return false, nil
}
