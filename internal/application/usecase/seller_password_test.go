package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemporaryPasswordCharset(t *testing.T) {
	const (
		letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
		digits  = "0123456789"
		symbols = "@#$-_!"
	)
	require.Len(t, temporaryPasswordCharset, len(letters)+len(digits)+len(symbols))

	seen := map[rune]int{}
	for _, r := range temporaryPasswordCharset {
		seen[r]++
	}
	for _, r := range letters + digits + symbols {
		assert.Equal(t, 1, seen[r], "carácter %q", r)
	}
	assert.True(t, strings.HasSuffix(temporaryPasswordCharset, symbols))
}

func TestGenerateTemporaryPassword_UsaSoloElAlfabeto(t *testing.T) {
	for i := 0; i < 50; i++ {
		pwd, err := generateTemporaryPassword()
		require.NoError(t, err)
		require.Len(t, pwd, temporaryPasswordLength)
		for _, r := range pwd {
			assert.True(t, strings.ContainsRune(temporaryPasswordCharset, r), "carácter %q", r)
		}
	}
}
