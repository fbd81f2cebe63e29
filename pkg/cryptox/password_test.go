package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testHasher() *Hasher {
	return NewHasher(DefaultParams(), "test-pepper")
}

func TestHasherHash(t *testing.T) {
	h := testHasher()

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// PHC layout: ["", "argon2id", "v=19", params, salt, hash]
			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Contains(t, parts[3], "m=")
			require.Contains(t, parts[3], "t=")
			require.Contains(t, parts[3], "p=")
			require.NotEmpty(t, parts[4])
			require.NotEmpty(t, parts[5])
		})
	}
}

func TestHasherHash_UniqueSalts(t *testing.T) {
	h := testHasher()
	password := "samepassword"

	hash1, err := h.Hash(password)
	require.NoError(t, err)
	hash2, err := h.Hash(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")

	require.NoError(t, h.Verify(password, hash1))
	require.NoError(t, h.Verify(password, hash2))
}

func TestHasherVerify_WrongPassword(t *testing.T) {
	h := testHasher()
	hash, err := h.Hash("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name  string
		wrong string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"truncated", "correct-passwor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Verify(tt.wrong, hash)
			require.ErrorIs(t, err, ErrMismatch)
		})
	}
}

func TestHasherVerify_InvalidHashFormat(t *testing.T) {
	h := testHasher()

	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Verify("test-password", tt.invalidHash)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrMismatch, "format errors are not mismatches")
		})
	}
}

func TestHasherVerify_DifferentPepper(t *testing.T) {
	a := NewHasher(DefaultParams(), "pepper-a")
	b := NewHasher(DefaultParams(), "pepper-b")

	hash, err := a.Hash("password")
	require.NoError(t, err)

	require.NoError(t, a.Verify("password", hash))
	require.ErrorIs(t, b.Verify("password", hash), ErrMismatch)
}

func TestHasherVerify_ParamsFromHash(t *testing.T) {
	// A hasher configured with different cost parameters must still verify
	// records hashed under the old parameters.
	old := NewHasher(Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}, "p")
	hash, err := old.Hash("password")
	require.NoError(t, err)

	current := NewHasher(DefaultParams(), "p")
	require.NoError(t, current.Verify("password", hash))
}
