package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/loftwire/depot/internal/auth/domain"
	"github.com/loftwire/depot/internal/auth/store"
	"github.com/loftwire/depot/pkg/cryptox"
)

// AccountService serves profile reads and updates for authenticated callers.
type AccountService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
}

// GetAccountByID fetches an account for the userinfo endpoint.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (domain.Account, error) {
	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}
	return acct, nil
}

// UpdateProfile changes the display name fields and returns the fresh row.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID, firstName, lastName string) (domain.Account, error) {
	if err := s.Store.Accounts().UpdateProfile(ctx, accountID, firstName, lastName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("update profile: %w", err)
	}
	return s.GetAccountByID(ctx, accountID)
}

// ChangePassword verifies the current password before swapping in a new hash.
func (s *AccountService) ChangePassword(ctx context.Context, accountID, current, next string) error {
	acct, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := s.Hasher.Verify(current, acct.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("verify password: %w", err)
	}
	hash, err := s.Hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Accounts().UpdatePasswordHash(ctx, accountID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
