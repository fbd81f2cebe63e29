package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

const pepperBytes = 32

// LoadOrGeneratePepper reads the pepper from the given file, generating and
// persisting a fresh one on first run. The pepper is combined with every
// secret before hashing so a leaked database alone is not enough to mount an
// offline attack.
func LoadOrGeneratePepper(path string) (string, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("cryptox: failed to create pepper directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		buf := make([]byte, pepperBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("cryptox: failed to generate pepper: %w", err)
		}
		pepper := base64.RawURLEncoding.EncodeToString(buf)

		if err := os.WriteFile(path, []byte(pepper), 0600); err != nil {
			return "", fmt.Errorf("cryptox: failed to write pepper file: %w", err)
		}
		return pepper, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to read pepper file: %w", err)
	}
	return string(data), nil
}
