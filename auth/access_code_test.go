package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateAccessCode(8)
		require.NoError(t, err)
		require.Len(t, code, 8)
		for _, c := range code {
			assert.Contains(t, codeAlphabet, string(c))
		}
	}
}

func TestGenerateAccessCodeExcludesAmbiguousCharacters(t *testing.T) {
	for _, banned := range []string{"0", "O", "1", "I", "L"} {
		assert.False(t, strings.Contains(codeAlphabet, banned), "alphabet must not contain %q", banned)
	}
}

func TestGenerateAccessCodeRejectsNonPositiveLength(t *testing.T) {
	_, err := GenerateAccessCode(0)
	assert.Error(t, err)

	_, err = GenerateAccessCode(-3)
	assert.Error(t, err)
}
