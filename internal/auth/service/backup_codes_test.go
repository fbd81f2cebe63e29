package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loftwire/depot/internal/auth/store"
)

func TestConsumeBackupCode(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.registerAccount(t, "nadia@example.com", "password7")
	env.enableMFA(t, id)

	codes, err := env.mfa.RegenerateBackupCodes(ctx, id)
	require.NoError(t, err)

	t.Run("burned row reports not found on a second delete", func(t *testing.T) {
		ok, err := env.auth.Backup.Consume(ctx, id, codes[0])
		require.NoError(t, err)
		require.True(t, ok)

		stored, err := env.store.BackupCodes().ListBackupCodes(ctx, id)
		require.NoError(t, err)
		require.Len(t, stored, backupCodeCount-1)

		// Re-deleting the consumed row must surface ErrNotFound rather
		// than a silent zero-row success.
		for _, c := range stored {
			err := env.store.BackupCodes().DeleteBackupCode(ctx, id, c.ID)
			require.NoError(t, err)
		}
		err = env.store.BackupCodes().DeleteBackupCode(ctx, id, stored[0].ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestConsumeBackupCodeConcurrent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.registerAccount(t, "omar@example.com", "password8")
	env.enableMFA(t, id)

	codes, err := env.mfa.RegenerateBackupCodes(ctx, id)
	require.NoError(t, err)

	// Present the same code from many goroutines at once. Each one
	// verifies the argon2 hash independently, so several can match the
	// same row; only the delete that actually removes it may succeed.
	const attempts = 8
	results := make([]bool, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = env.auth.Backup.Consume(ctx, id, codes[0])
		}(i)
	}
	wg.Wait()

	successes := 0
	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		if results[i] {
			successes++
		}
	}
	require.Equal(t, 1, successes, "a single-use code must be consumable exactly once")

	stored, err := env.store.BackupCodes().ListBackupCodes(ctx, id)
	require.NoError(t, err)
	require.Len(t, stored, backupCodeCount-1)
}
