package sqlite

import (
	"context"
	"time"

	"github.com/loftwire/depot/internal/auth/domain"
	"github.com/loftwire/depot/internal/auth/store"
)

type backupCodesRepo struct {
	db dbtx
}

func (r *backupCodesRepo) CreateBackupCode(ctx context.Context, code domain.BackupCode) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO backup_codes (id, account_id, code_hash, created_at) VALUES (?, ?, ?, ?)`,
		code.ID, code.AccountID, code.CodeHash, time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *backupCodesRepo) ListBackupCodes(ctx context.Context, accountID string) ([]domain.BackupCode, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, code_hash, created_at FROM backup_codes
		 WHERE account_id = ? ORDER BY created_at, id`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []domain.BackupCode
	for rows.Next() {
		var c domain.BackupCode
		if err := rows.Scan(&c.ID, &c.AccountID, &c.CodeHash, &c.CreatedAt); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// DeleteBackupCode removes one code row. A delete that matches no row
// returns store.ErrNotFound so a concurrent consumer of the same code can
// tell it lost the race.
func (r *backupCodesRepo) DeleteBackupCode(ctx context.Context, accountID, codeID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM backup_codes WHERE account_id = ? AND id = ?`,
		accountID, codeID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *backupCodesRepo) DeleteAllBackupCodes(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM backup_codes WHERE account_id = ?`, accountID)
	return err
}

func (r *backupCodesRepo) CountBackupCodes(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM backup_codes WHERE account_id = ?`, accountID,
	).Scan(&count)
	return count, err
}
