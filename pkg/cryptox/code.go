package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// BackupCodeLength is the number of characters in a recovery code. Eight
// characters over a 62-symbol alphabet gives ~47.6 bits of entropy per code,
// which keeps a batch of ten codes out of online brute-force range.
const BackupCodeLength = 8

const backupCodeCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBackupCode creates a single human-transcribable recovery code.
// The plaintext is returned to the caller exactly once; only a hash of it is
// ever persisted.
func GenerateBackupCode() (string, error) {
	code := make([]byte, BackupCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(backupCodeCharset))))
		if err != nil {
			return "", fmt.Errorf("cryptox: failed to generate backup code: %w", err)
		}
		code[i] = backupCodeCharset[n.Int64()]
	}
	return string(code), nil
}

// GenerateBackupCodes creates a batch of n recovery codes.
func GenerateBackupCodes(n int) ([]string, error) {
	codes := make([]string, n)
	for i := range codes {
		code, err := GenerateBackupCode()
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}
