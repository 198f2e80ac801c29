package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecretHasher(t *testing.T) {
	h, err := NewSecretHasher("pepper")
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
	}{
		{"simple", "s1"},
		{"token shaped", MustGenerateToken(TokenSize256)},
		{"whitespace", "   spaces   "},
		{"unicode", "пароль🔒密码"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.secret)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
			require.Len(t, strings.Split(hash, "$"), 6)

			require.NoError(t, h.Verify(tt.secret, hash))
			require.ErrorIs(t, h.Verify(tt.secret+"x", hash), ErrSecretMismatch)
		})
	}
}

func TestSecretHasher_PepperMatters(t *testing.T) {
	a, err := NewSecretHasher("pepper-a")
	require.NoError(t, err)
	b, err := NewSecretHasher("pepper-b")
	require.NoError(t, err)

	hash, err := a.Hash("s1")
	require.NoError(t, err)
	require.ErrorIs(t, b.Verify("s1", hash), ErrSecretMismatch)
}

func TestSecretHasher_MalformedHash(t *testing.T) {
	h, err := NewSecretHasher("")
	require.NoError(t, err)

	for _, encoded := range []string{
		"",
		"plain",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$aGFzaA",
	} {
		err := h.Verify("s1", encoded)
		require.Error(t, err, encoded)
		require.NotErrorIs(t, err, ErrSecretMismatch, encoded)
	}

	require.ErrorIs(t, h.VerifyDummy("s1"), ErrSecretMismatch)
}

func TestLoadPepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadPepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, string(raw))

	second, err := LoadPepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
