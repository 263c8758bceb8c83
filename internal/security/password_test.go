package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)

	ok, err := VerifyPassword("Sup3rSecret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"not-an-argon2-hash",
		"$argon2id$v=19$t=3,m=65536,p=2$onlyonesection",
		"$bcrypt$v=19$t=3,m=65536,p=2$c2FsdA==$aGFzaA==",
		"$argon2id$v=18$t=3,m=65536,p=2$c2FsdA==$aGFzaA==",
		"$argon2id$v=19$bogus-params$c2FsdA==$aGFzaA==",
	} {
		_, err := VerifyPassword("whatever", []byte(encoded))
		require.Error(t, err, "encoded %q", encoded)
	}
}

func TestVerifyPasswordWithCustomParams(t *testing.T) {
	params := Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

	hash, err := HashPasswordWithParams("Sup3rSecret", params)
	require.NoError(t, err)

	ok, err := VerifyPassword("Sup3rSecret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("Sup3rSecre7", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("Abcdef12"))

	assert.Error(t, ValidatePasswordStrength("Ab1"), "too short")
	assert.Error(t, ValidatePasswordStrength("abcdefg1"), "no uppercase")
	assert.Error(t, ValidatePasswordStrength("ABCDEFG1"), "no lowercase")
	assert.Error(t, ValidatePasswordStrength("Abcdefgh"), "no digit")
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	b, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
