package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/loftwire/depot/internal/auth/store"
	"github.com/loftwire/depot/internal/auth/store/drivers/sqlite"
	"github.com/loftwire/depot/pkg/cryptox"
	"github.com/loftwire/depot/pkg/jwtx"
	"github.com/loftwire/depot/pkg/totpx"
	"github.com/stretchr/testify/require"
)

// testParams keeps argon2id cheap; cost calibration is covered in cryptox.
var testParams = cryptox.Params{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

const testIssuer = "depot-auth-test"

type testEnv struct {
	store  store.Store
	hasher *cryptox.Hasher
	totp   *totpx.Engine
	tokens *TokenService
	auth   *AuthService
	mfa    *MFAService
	acct   *AccountService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hasher := cryptox.NewHasher(testParams, "test-pepper")
	totp := &totpx.Engine{Issuer: testIssuer}

	codec, err := jwtx.NewHS256("test-secret-please-ignore", testIssuer)
	require.NoError(t, err)

	tokens := &TokenService{
		Signer:   codec,
		Verifier: codec,
		Issuer:   testIssuer,
		TTL:      time.Hour,
	}

	return &testEnv{
		store:  st,
		hasher: hasher,
		totp:   totp,
		tokens: tokens,
		auth: &AuthService{
			Store:  st,
			Hasher: hasher,
			TOTP:   totp,
			Tokens: tokens,
			Backup: &BackupCodeVerifier{Store: st, Hasher: hasher},
		},
		mfa: &MFAService{Store: st, Hasher: hasher, TOTP: totp},
		acct: &AccountService{Store: st, Hasher: hasher},
	}
}

// registerAccount creates an account through the real registration path.
func (e *testEnv) registerAccount(t *testing.T, email, password string) string {
	t.Helper()
	acct, err := e.auth.Register(context.Background(), email, "Test", "Account", password)
	require.NoError(t, err)
	return acct.ID
}

// enableMFA walks an account through setup and enable, returning the TOTP
// secret so tests can mint valid codes.
func (e *testEnv) enableMFA(t *testing.T, accountID string) string {
	t.Helper()
	ctx := context.Background()

	setup, err := e.mfa.Setup(ctx, accountID)
	require.NoError(t, err)

	code, err := e.totp.CurrentCode(setup.Secret)
	require.NoError(t, err)

	count, err := e.mfa.Enable(ctx, accountID, code)
	require.NoError(t, err)
	require.Equal(t, backupCodeCount, count)

	return setup.Secret
}
