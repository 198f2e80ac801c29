package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for newly hashed secrets. Verification reads the
// parameters back out of the encoded hash, so these can be raised later.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var ErrSecretMismatch = errors.New("cryptox: secret does not match")

// SecretHasher hashes and verifies client secrets with Argon2id. The pepper is
// appended to every secret before hashing and is never stored with the hash.
type SecretHasher struct {
	pepper string

	// dummy is verified against when there is no real hash to compare with,
	// so a missing client costs the same as a wrong secret.
	dummy string
}

func NewSecretHasher(pepper string) (*SecretHasher, error) {
	h := &SecretHasher{pepper: pepper}

	dummy, err := h.Hash(MustGenerateToken(TokenSize128))
	if err != nil {
		return nil, err
	}
	h.dummy = dummy

	return h, nil
}

// Hash returns a PHC-format Argon2id string: $argon2id$v=19$m=,t=,p=$salt$hash.
func (h *SecretHasher) Hash(secret string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	sum := argon2.IDKey([]byte(secret+h.pepper), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify compares secret against an encoded hash in constant time. A
// malformed hash is reported as its own error, a mismatch as ErrSecretMismatch.
func (h *SecretHasher) Verify(secret, encoded string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return errors.New("invalid hash format: expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return errors.New("invalid hash format: not argon2id")
	}
	if parts[2] != "v=19" {
		return errors.New("invalid hash format: wrong version")
	}

	var (
		mem, iters uint32
		par        uint8
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("invalid hash format: failed to parse parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode hash: %w", err)
	}

	computed := argon2.IDKey(
		[]byte(secret+h.pepper),
		salt,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115 - length of a decoded hash
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrSecretMismatch
}

// VerifyDummy burns one verification against a throwaway hash and always
// reports a mismatch.
func (h *SecretHasher) VerifyDummy(secret string) error {
	_ = h.Verify(secret, h.dummy)
	return ErrSecretMismatch
}
