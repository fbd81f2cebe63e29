package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/loftwire/depot/internal/auth/domain"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, email, first_name, last_name, password_hash, mfa_enabled, mfa_secret, created_at, updated_at`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, first_name, last_name, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.FirstName, a.LastName, a.PasswordHash, now, now,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, accountID, firstName, lastName string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET first_name = ?, last_name = ?, updated_at = ? WHERE id = ?`,
		firstName, lastName, time.Now().UTC(), accountID,
	)
	return err
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, accountID, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), accountID,
	)
	return err
}

func (r *accountsRepo) UpdateMFASecret(ctx context.Context, accountID, secret string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET mfa_secret = ?, updated_at = ? WHERE id = ?`,
		secret, time.Now().UTC(), accountID,
	)
	return err
}

func (r *accountsRepo) EnableMFA(ctx context.Context, accountID string) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET mfa_enabled = ?, updated_at = ? WHERE id = ?`,
		now, now, accountID,
	)
	return err
}

func (r *accountsRepo) DisableMFA(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET mfa_enabled = NULL, mfa_secret = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), accountID,
	)
	return err
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a          domain.Account
		mfaEnabled sql.NullTime
		mfaSecret  sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.PasswordHash,
		&mfaEnabled, &mfaSecret, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.MFA = mapMFAState(mfaEnabled, mfaSecret)
	return a, nil
}

// mapMFAState folds the two nullable columns into the domain variant. A row
// claiming enabled without a secret cannot be produced by this driver, and
// if one ever appears it degrades to the disabled state rather than an
// unverifiable enabled one.
func mapMFAState(enabledAt sql.NullTime, secret sql.NullString) domain.MFAState {
	switch {
	case enabledAt.Valid:
		return domain.MFAOn(secret.String)
	case secret.Valid && secret.String != "":
		return domain.MFAPending(secret.String)
	default:
		return domain.MFAOff()
	}
}
