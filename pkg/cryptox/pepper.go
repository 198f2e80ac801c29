package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadPepper reads the pepper from path, generating and persisting a fresh one
// the first time the service starts.
func LoadPepper(path string) (string, error) {
	path = filepath.Clean(path)

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if pepper := strings.TrimSpace(string(raw)); pepper != "" {
			return pepper, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", err
	}

	buf := make([]byte, keyLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	pepper := base64.RawURLEncoding.EncodeToString(buf)

	if err := os.WriteFile(path, []byte(pepper), 0o600); err != nil {
		return "", err
	}
	return pepper, nil
}
