package store

import (
	"context"
	"errors"

	"github.com/loftwire/depot/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Accounts() Accounts
	BackupCodes() BackupCodes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back if fn returns an
	// error and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail looks up the account for a login attempt. The
	// comparison is case-sensitive, matching how emails are stored.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by the app via
	// ULID). A duplicate email yields ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdateProfile mutates first/last name and bumps updated_at.
	UpdateProfile(ctx context.Context, accountID, firstName, lastName string) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, accountID, newHash string) error

	// UpdateMFASecret stores a pending MFA secret without enabling MFA.
	// Calling it again overwrites any previous pending secret.
	UpdateMFASecret(ctx context.Context, accountID, secret string) error

	// EnableMFA marks MFA as enabled (sets the mfa_enabled timestamp).
	EnableMFA(ctx context.Context, accountID string) error

	// DisableMFA clears both the enabled flag and the stored secret.
	DisableMFA(ctx context.Context, accountID string) error
}

type BackupCodes interface {
	// CreateBackupCode stores one hashed recovery code.
	CreateBackupCode(ctx context.Context, code domain.BackupCode) error

	// ListBackupCodes returns all stored hashes for an account. Hashes are
	// salted, so consumption verifies each row rather than looking one up.
	ListBackupCodes(ctx context.Context, accountID string) ([]domain.BackupCode, error)

	// DeleteBackupCode removes exactly one code row after successful use.
	// It returns ErrNotFound when the row no longer exists, which lets a
	// caller detect that a concurrent consumer already burned the code.
	DeleteBackupCode(ctx context.Context, accountID, codeID string) error

	// DeleteAllBackupCodes removes every code for an account.
	DeleteAllBackupCodes(ctx context.Context, accountID string) error

	// CountBackupCodes returns the number of unused codes remaining.
	CountBackupCodes(ctx context.Context, accountID string) (int, error)
}
